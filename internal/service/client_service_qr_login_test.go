package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-zca/internal/adapter"
	"github.com/MKhiriev/go-zca/internal/cookie"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/mock"
	"github.com/MKhiriev/go-zca/models"
)

const (
	testUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) test"
	testIMEI    = "imei-1"
	testVersion = "2.44.11"
	testCode    = "qr-code-1"

	loginPageHTML = `<html><script src="https://stc-zlogin.zdn.vn/main-2.44.11.js"></script></html>`
	// "PNG" in base64
	qrImageB64 = "UE5H"
)

var testOpts = models.QRLoginOptions{Deadline: 10 * time.Second, PollInterval: time.Second}

func newTestQRSvc(t *testing.T, ctrl *gomock.Controller) (*qrLoginService, *mock.MockAuthAdapter, *clockwork.FakeClock) {
	t.Helper()
	mockAdapter := mock.NewMockAuthAdapter(ctrl)
	fc := clockwork.NewFakeClock()

	svc := NewQRLoginService(mockAdapter, testIMEI, "vi", fc, logger.Nop()).(*qrLoginService)
	return svc, mockAdapter, fc
}

func apiResp(code int, data string) models.Response {
	r := models.Response{ErrorCode: code}
	if data != "" {
		r.Data = json.RawMessage(data)
	}
	return r
}

// jarRecorder keeps every cookie store handed to the adapter.
type jarRecorder struct {
	mu   sync.Mutex
	jars []*cookie.Jar
}

func (j *jarRecorder) set(jar *cookie.Jar) {
	j.mu.Lock()
	j.jars = append(j.jars, jar)
	j.mu.Unlock()
}

func (j *jarRecorder) last() *cookie.Jar {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jars[len(j.jars)-1]
}

func (j *jarRecorder) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.jars)
}

// eventRecorder collects events and answers with the action configured for
// the event type.
type eventRecorder struct {
	mu      sync.Mutex
	events  []models.Event
	answers map[models.EventType][]models.Action
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{answers: make(map[models.EventType][]models.Action)}
}

func (r *eventRecorder) answer(t models.EventType, actions ...models.Action) *eventRecorder {
	r.answers[t] = actions
	return r
}

func (r *eventRecorder) handle(ev models.Event) models.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)

	queue := r.answers[ev.Type]
	if len(queue) == 0 {
		return models.ActionNone
	}
	r.answers[ev.Type] = queue[1:]
	return queue[0]
}

func (r *eventRecorder) types() []models.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *eventRecorder) count(t models.EventType) int {
	n := 0
	for _, got := range r.types() {
		if got == t {
			n++
		}
	}
	return n
}

func (r *eventRecorder) first(t models.EventType) (models.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Type == t {
			return ev, true
		}
	}
	return models.Event{}, false
}

// expectUntilGenerate sets up the calls every attempt makes before polling.
func expectUntilGenerate(m *mock.MockAuthAdapter, jars *jarRecorder, times int) {
	m.EXPECT().SetCookieJar(gomock.Any()).Do(jars.set).Times(times)
	m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil).Times(times)
	m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, `{}`), nil).Times(times)
	m.EXPECT().VerifyClient(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, `{}`), nil).Times(times)
	m.EXPECT().GenerateQRCode(gomock.Any(), testVersion, testIMEI).
		Return(apiResp(0, `{"code":"`+testCode+`","image":"data:image/png;base64,`+qrImageB64+`"}`), nil).
		Times(times)
}

const (
	scannedData  = `{"display_name":"Alice","avatar":"https://s120.avatar/a.jpg"}`
	userInfoData = `{"logged":true,"info":{"userId":"42","displayName":"Alice","avatar":"https://s120.avatar/a.jpg"}}`
)

type loginResult struct {
	session *models.Session
	err     error
}

func loginAsync(ctx context.Context, svc *qrLoginService, onEvent models.EventHandler) <-chan loginResult {
	out := make(chan loginResult, 1)
	go func() {
		s, err := svc.LoginQR(ctx, testUA, testOpts, onEvent)
		out <- loginResult{s, err}
	}()
	return out
}

func waitResult(t *testing.T, ch <-chan loginResult) loginResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("LoginQR did not return")
		return loginResult{}
	}
}

// ── success ─────────────────────────────────────────────────────────────────

func TestLoginQR_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder()

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil)
	m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, `{}`), nil)
	m.EXPECT().CheckSession(gomock.Any()).DoAndReturn(func(context.Context) (int, error) {
		require.NoError(t, jars.last().AddSetCookie("zpw_sek=sek-1; Domain=.zalo.me; Path=/", "https://id.zalo.me/account/checksession"))
		return http.StatusFound, nil
	})
	m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, userInfoData), nil)

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, events.handle)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, testIMEI, session.IMEI)
	assert.Equal(t, testUA, session.UserAgent)
	assert.Equal(t, "42", session.UserInfo.UserID)
	assert.Equal(t, "Alice", session.UserInfo.DisplayName)
	assert.Same(t, jars.last(), session.Cookies)
	assert.False(t, session.IsAuthenticated())

	v, ok := session.Cookies.Get("zpw_sek")
	assert.True(t, ok)
	assert.Equal(t, "sek-1", v)

	assert.Equal(t, []models.EventType{models.QRCodeGenerated, models.QRCodeScanned, models.GotLoginInfo}, events.types())

	gen, _ := events.first(models.QRCodeGenerated)
	assert.Equal(t, testCode, gen.Code)
	assert.Equal(t, []byte("PNG"), gen.Image)
	assert.True(t, gen.Allows(models.ActionRetry))

	scan, _ := events.first(models.QRCodeScanned)
	require.NotNil(t, scan.Scan)
	assert.Equal(t, "Alice", scan.Scan.DisplayName)

	got, _ := events.first(models.GotLoginInfo)
	require.NotNil(t, got.User)
	assert.Equal(t, "42", got.User.UserID)

	// expiry timer is gone
	assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
}

func TestLoginQR_PollsUntilScanned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	gomock.InOrder(
		m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(8, ""), nil),
		m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil),
	)
	m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, `{}`), nil)
	m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)
	m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, userInfoData), nil)

	ctx := t.Context()
	res := loginAsync(ctx, svc, nil)

	// deadline timer and the first poll wait
	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	fc.Advance(testOpts.PollInterval)

	r := waitResult(t, res)
	require.NoError(t, r.err)
	require.NotNil(t, r.session)
	assert.NoError(t, fc.BlockUntilContext(ctx, 0))
}

// ── expiry ──────────────────────────────────────────────────────────────────

func TestLoginQR_ExpiresOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder()

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil).MinTimes(1)

	ctx := t.Context()
	res := loginAsync(ctx, svc, events.handle)

	require.NoError(t, fc.BlockUntilContext(ctx, 2))
	fc.Advance(testOpts.Deadline)

	r := waitResult(t, res)
	assert.NoError(t, r.err)
	assert.Nil(t, r.session)

	assert.Equal(t, 1, events.count(models.QRCodeExpired))
	assert.Equal(t, 0, events.count(models.QRCodeScanned))
	assert.NoError(t, fc.BlockUntilContext(ctx, 0))

	exp, _ := events.first(models.QRCodeExpired)
	assert.Equal(t, testCode, exp.Code)
}

func TestLoginQR_ExpiryCancelsInFlightPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder()

	polling := make(chan struct{})
	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).
		DoAndReturn(func(ctx context.Context, _, _, _ string) (models.Response, error) {
			close(polling)
			<-ctx.Done()
			return models.Response{}, ctx.Err()
		})

	ctx := t.Context()
	res := loginAsync(ctx, svc, events.handle)

	<-polling
	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(testOpts.Deadline)

	r := waitResult(t, res)
	assert.NoError(t, r.err)
	assert.Nil(t, r.session)
	assert.Equal(t, 1, events.count(models.QRCodeExpired))
}

func TestLoginQR_RetryAfterExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder().answer(models.QRCodeExpired, models.ActionRetry)

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 2)

	expired := make(chan struct{})
	gomock.InOrder(
		m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).
			DoAndReturn(func(ctx context.Context, _, _, _ string) (models.Response, error) {
				<-ctx.Done()
				close(expired)
				return models.Response{}, ctx.Err()
			}),
		m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil),
	)
	m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, `{}`), nil)
	m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)
	m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, userInfoData), nil)

	ctx := t.Context()
	res := loginAsync(ctx, svc, events.handle)

	require.NoError(t, fc.BlockUntilContext(ctx, 1))
	fc.Advance(testOpts.Deadline)
	<-expired

	r := waitResult(t, res)
	require.NoError(t, r.err)
	require.NotNil(t, r.session)

	assert.Equal(t, 2, jars.count())
	assert.NotSame(t, jars.jars[0], jars.jars[1])
	assert.Same(t, jars.jars[1], r.session.Cookies)
	assert.Equal(t, 2, events.count(models.QRCodeGenerated))
	assert.Equal(t, 1, events.count(models.QRCodeExpired))
	assert.Equal(t, 1, events.count(models.GotLoginInfo))
}

// ── abort / decline ─────────────────────────────────────────────────────────

func TestLoginQR_AbortOnGenerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder().answer(models.QRCodeGenerated, models.ActionAbort)

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	// no WaitingScan: expiry is checked before the first poll

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, events.handle)

	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, []models.EventType{models.QRCodeGenerated}, events.types())
	assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
}

func TestLoginQR_AbortOnScanned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder().answer(models.QRCodeScanned, models.ActionAbort)

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil)

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, events.handle)

	assert.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, 0, events.count(models.QRCodeExpired))
}

func TestLoginQR_Declined(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder()

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil)
	m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(-13, ""), nil)
	m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, events.handle)

	assert.NoError(t, err)
	assert.Nil(t, session)

	declined, ok := events.first(models.QRCodeDeclined)
	require.True(t, ok)
	assert.Equal(t, testCode, declined.Code)
	assert.Equal(t, 0, events.count(models.GotLoginInfo))
	assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
}

func TestLoginQR_RetryAfterDecline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder().answer(models.QRCodeDeclined, models.ActionRetry)

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 2)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil).Times(2)
	gomock.InOrder(
		m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(-13, ""), nil),
		m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, `{}`), nil),
	)
	m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil).Times(2)
	m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, userInfoData), nil)

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, events.handle)

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 2, jars.count())
	assert.Equal(t, 1, events.count(models.QRCodeDeclined))
}

func TestLoginQR_ConfirmWithoutAnswer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, _ := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil)
	m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(models.Response{}, adapter.ErrBadGateway)

	session, err := svc.LoginQR(context.Background(), testUA, testOpts, nil)

	assert.NoError(t, err)
	assert.Nil(t, session)
}

// ── context ─────────────────────────────────────────────────────────────────

func TestLoginQR_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m, fc := newTestQRSvc(t, ctrl)
	jars := &jarRecorder{}
	events := newEventRecorder()

	m.EXPECT().SetUserAgent(testUA)
	expectUntilGenerate(m, jars, 1)
	m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil).MinTimes(1)

	ctx, cancel := context.WithCancel(t.Context())
	res := loginAsync(ctx, svc, events.handle)

	require.NoError(t, fc.BlockUntilContext(t.Context(), 2))
	cancel()

	r := waitResult(t, res)
	assert.ErrorIs(t, r.err, context.Canceled)
	assert.Nil(t, r.session)
	assert.Equal(t, 0, events.count(models.QRCodeExpired))
	assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
}

// ── failures ────────────────────────────────────────────────────────────────

func TestLoginQR_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *mock.MockAuthAdapter)
		wantErr error
		code    int
	}{
		{
			name: "version not found",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return("<html></html>", nil)
			},
			wantErr: ErrVersionDetectionFailed,
		},
		{
			name: "login page unreachable",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return("", adapter.ErrNotFound)
			},
			wantErr: ErrVersionDetectionFailed,
		},
		{
			name: "logininfo error code",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil)
				m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, testIMEI).Return(apiResp(-201, ""), nil)
			},
			wantErr: ErrLoginInfoFailed,
			code:    -201,
		},
		{
			name: "verify client error code",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil)
				m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, ""), nil)
				m.EXPECT().VerifyClient(gomock.Any(), testVersion, testIMEI).Return(apiResp(-5, ""), nil)
			},
			wantErr: ErrVerifyClientFailed,
			code:    -5,
		},
		{
			name: "generate without code",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil)
				m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, ""), nil)
				m.EXPECT().VerifyClient(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, ""), nil)
				m.EXPECT().GenerateQRCode(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, `{"image":"data:image/png;base64,UE5H"}`), nil)
			},
			wantErr: ErrQRGenerationFailed,
		},
		{
			name: "generate bad image",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil)
				m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, ""), nil)
				m.EXPECT().VerifyClient(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, ""), nil)
				m.EXPECT().GenerateQRCode(gomock.Any(), testVersion, testIMEI).Return(apiResp(0, `{"code":"c","image":"%%%"}`), nil)
			},
			wantErr: ErrQRGenerationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m, _ := newTestQRSvc(t, ctrl)
			m.EXPECT().SetUserAgent(testUA)
			m.EXPECT().SetCookieJar(gomock.Any())
			tt.setup(m)

			session, err := svc.LoginQR(context.Background(), testUA, testOpts, nil)

			assert.Nil(t, session)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.code != 0 {
				var apiErr *models.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.code, apiErr.Code)
			}
		})
	}
}

func TestLoginQR_FailuresAfterScan(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *mock.MockAuthAdapter)
		wantErr error
	}{
		{
			name: "check session status",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil)
				m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusInternalServerError, nil)
			},
			wantErr: ErrSessionCheckFailed,
		},
		{
			name: "check session transport",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil)
				m.EXPECT().CheckSession(gomock.Any()).Return(0, errors.New("connection reset"))
			},
			wantErr: ErrSessionCheckFailed,
		},
		{
			name: "unexpected confirm code",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(-99, ""), nil)
				m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)
			},
			wantErr: ErrConfirmationFailed,
		},
		{
			name: "not logged in",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil)
				m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)
				m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, `{"logged":false}`), nil)
			},
			wantErr: ErrLoginIncomplete,
		},
		{
			name: "no account info",
			setup: func(m *mock.MockAuthAdapter) {
				m.EXPECT().WaitingConfirm(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, ""), nil)
				m.EXPECT().CheckSession(gomock.Any()).Return(http.StatusOK, nil)
				m.EXPECT().UserInfo(gomock.Any()).Return(apiResp(0, ""), nil)
			},
			wantErr: ErrLoginIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m, fc := newTestQRSvc(t, ctrl)
			m.EXPECT().SetUserAgent(testUA)
			expectUntilGenerate(m, &jarRecorder{}, 1)
			m.EXPECT().WaitingScan(gomock.Any(), testVersion, testIMEI, testCode).Return(apiResp(0, scannedData), nil)
			tt.setup(m)

			session, err := svc.LoginQR(context.Background(), testUA, testOpts, nil)

			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
		})
	}
}

// ── defaults ────────────────────────────────────────────────────────────────

func TestLoginQR_GeneratesIMEIFromUserAgent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mock.NewMockAuthAdapter(ctrl)
	svc := NewQRLoginService(m, "", "vi", clockwork.NewFakeClock(), logger.Nop())

	m.EXPECT().SetUserAgent(testUA)
	m.EXPECT().SetCookieJar(gomock.Any())
	m.EXPECT().LoadLoginPage(gomock.Any()).Return(loginPageHTML, nil)
	m.EXPECT().AccountLoginInfo(gomock.Any(), testVersion, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, imei string) (models.Response, error) {
			assert.Regexp(t, `^[0-9a-f-]{36}-[0-9a-f]{32}$`, imei)
			return apiResp(-1, ""), nil
		})

	_, err := svc.LoginQR(context.Background(), testUA, models.QRLoginOptions{}, nil)
	assert.ErrorIs(t, err, ErrLoginInfoFailed)
}

// ── qrAttempt ───────────────────────────────────────────────────────────────

func TestQRAttempt_DeadlineAfterAbortIsSilent(t *testing.T) {
	fc := clockwork.NewFakeClock()
	events := newEventRecorder()
	_, cancel := context.WithCancel(context.Background())
	a := newQRAttempt(fc, events.handle, cancel, logger.Nop())

	a.apply(models.Event{Type: models.QRCodeGenerated, Actions: retryOrAbort}, models.ActionAbort)
	a.onDeadline()

	assert.True(t, a.isExpired())
	assert.False(t, a.retryRequested())
	assert.Equal(t, models.QRAborted, a.currentStatus())
	assert.Empty(t, events.types())
}

func TestQRAttempt_IgnoresActionNotOffered(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	a := newQRAttempt(clockwork.NewFakeClock(), nil, cancel, logger.Nop())

	a.apply(models.Event{Type: models.GotLoginInfo}, models.ActionRetry)

	assert.False(t, a.isExpired())
	assert.False(t, a.retryRequested())
}

func TestQRAttempt_StopIsIdempotent(t *testing.T) {
	fc := clockwork.NewFakeClock()
	events := newEventRecorder()
	_, cancel := context.WithCancel(context.Background())
	a := newQRAttempt(fc, events.handle, cancel, logger.Nop())

	stop := a.startTimer(time.Minute)
	require.NoError(t, fc.BlockUntilContext(t.Context(), 1))

	stop()
	stop()

	assert.NoError(t, fc.BlockUntilContext(t.Context(), 0))
	fc.Advance(time.Hour)
	assert.Empty(t, events.types())
	assert.False(t, a.isExpired())
}

func TestQRAttempt_DeadlineExpires(t *testing.T) {
	fc := clockwork.NewFakeClock()
	events := newEventRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	a := newQRAttempt(fc, events.handle, cancel, logger.Nop())
	a.code = testCode

	stop := a.startTimer(time.Minute)
	require.NoError(t, fc.BlockUntilContext(t.Context(), 1))
	fc.Advance(time.Minute)
	stop()

	assert.True(t, a.isExpired())
	assert.Equal(t, models.QRExpired, a.currentStatus())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, []models.EventType{models.QRCodeExpired}, events.types())
}

func TestQRAttempt_NoEventsAfterDeadline(t *testing.T) {
	tests := []struct {
		name   string
		status models.QRStatus
		ev     models.Event
	}{
		{name: "scanned", status: models.QRScanned, ev: models.Event{Type: models.QRCodeScanned, Actions: retryOrAbort}},
		{name: "declined", status: models.QRDeclined, ev: models.Event{Type: models.QRCodeDeclined, Actions: retryOrAbort}},
		{name: "logged in", status: models.QRCompleted, ev: models.Event{Type: models.GotLoginInfo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := newEventRecorder()
			_, cancel := context.WithCancel(context.Background())
			a := newQRAttempt(clockwork.NewFakeClock(), events.handle, cancel, logger.Nop())

			a.onDeadline()

			assert.False(t, a.advance(tt.status, tt.ev))
			assert.Equal(t, models.QRExpired, a.currentStatus())
			assert.Equal(t, []models.EventType{models.QRCodeExpired}, events.types())
		})
	}
}

func TestQRAttempt_AbortedStatusIsFinal(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	a := newQRAttempt(clockwork.NewFakeClock(), newEventRecorder().handle, cancel, logger.Nop())

	require.True(t, a.advance(models.QRGenerated, models.Event{Type: models.QRCodeGenerated, Actions: retryOrAbort}))
	a.apply(models.Event{Type: models.QRCodeGenerated, Actions: retryOrAbort}, models.ActionAbort)
	a.setStatus(models.QRScanned)

	assert.Equal(t, models.QRAborted, a.currentStatus())
}
