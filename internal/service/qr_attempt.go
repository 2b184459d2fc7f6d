package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/models"
)

// qrAttempt is the state of one QR login attempt, shared by the login
// goroutine and the expiry timer goroutine.
//
// mu guards status and serialises handler calls. expired only ever goes
// from false to true; expiring also cancels the attempt context so an
// in-flight long poll returns.
type qrAttempt struct {
	clock   clockwork.Clock
	onEvent models.EventHandler
	cancel  context.CancelFunc
	logger  *logger.Logger

	// code is written before the timer starts and read-only afterwards.
	code string

	mu     sync.Mutex
	status models.QRStatus

	expired    atomic.Bool
	expireOnce sync.Once
	expiredCh  chan struct{}
	retry      atomic.Bool
}

func newQRAttempt(clock clockwork.Clock, onEvent models.EventHandler, cancel context.CancelFunc, log *logger.Logger) *qrAttempt {
	return &qrAttempt{
		clock:     clock,
		onEvent:   onEvent,
		cancel:    cancel,
		logger:    log,
		status:    models.QRIdle,
		expiredCh: make(chan struct{}),
	}
}

func (a *qrAttempt) isExpired() bool {
	return a.expired.Load()
}

func (a *qrAttempt) retryRequested() bool {
	return a.retry.Load()
}

func (a *qrAttempt) currentStatus() models.QRStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

func (a *qrAttempt) setStatus(status models.QRStatus) {
	a.mu.Lock()
	a.setStatusLocked(status)
	a.mu.Unlock()
}

// setStatusLocked ignores moves out of Aborted, and out of Expired to
// anything but Aborted.
func (a *qrAttempt) setStatusLocked(status models.QRStatus) {
	switch {
	case a.status == status:
		return
	case a.status == models.QRAborted:
		return
	case a.status == models.QRExpired && status != models.QRAborted:
		return
	}
	a.logger.Debug().Stringer("from", a.status).Stringer("to", status).Msg("qr status")
	a.status = status
}

func (a *qrAttempt) expire() {
	a.expireOnce.Do(func() {
		a.expired.Store(true)
		close(a.expiredCh)
		a.cancel()
	})
}

// advance moves the attempt to status, delivers ev to the handler and
// applies the answer. Once the attempt has expired it does neither and
// reports false.
func (a *qrAttempt) advance(status models.QRStatus, ev models.Event) bool {
	a.mu.Lock()
	if a.expired.Load() {
		a.mu.Unlock()
		a.logger.Debug().Stringer("event", ev.Type).Msg("attempt expired, event dropped")
		return false
	}
	a.setStatusLocked(status)
	action := a.onEvent(ev)
	a.mu.Unlock()

	a.apply(ev, action)
	return true
}

func (a *qrAttempt) apply(ev models.Event, action models.Action) {
	if !ev.Allows(action) {
		a.logger.Warn().Stringer("event", ev.Type).Stringer("action", action).Msg("action not offered, ignored")
		return
	}

	switch action {
	case models.ActionRetry:
		a.retry.Store(true)
		a.expire()
	case models.ActionAbort:
		a.setStatus(models.QRAborted)
		a.expire()
	}
}

// onDeadline expires the attempt and tells the handler, unless the attempt
// already ended.
func (a *qrAttempt) onDeadline() {
	a.mu.Lock()
	if a.expired.Load() {
		a.mu.Unlock()
		return
	}
	a.setStatusLocked(models.QRExpired)
	a.expire()

	ev := models.Event{Type: models.QRCodeExpired, Code: a.code, Actions: retryOrAbort}
	action := a.onEvent(ev)
	a.mu.Unlock()

	a.logger.Info().Msg("QR code expired")
	a.apply(ev, action)
}

// startTimer runs the expiry timer in its own goroutine. The returned stop
// function is idempotent and returns once the goroutine has exited.
func (a *qrAttempt) startTimer(deadline time.Duration) (stop func()) {
	timer := a.clock.NewTimer(deadline)
	quit := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer timer.Stop()

		select {
		case <-quit:
		case <-a.expiredCh:
		case <-timer.Chan():
			a.onDeadline()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(quit) })
		<-done
	}
}

// sleep waits for d on the attempt clock. It returns early with the context
// error when ctx is done, which includes expiry.
func (a *qrAttempt) sleep(ctx context.Context, d time.Duration) error {
	t := a.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}
