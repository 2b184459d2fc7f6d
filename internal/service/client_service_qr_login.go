// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-zca/internal/adapter"
	"github.com/MKhiriev/go-zca/internal/cookie"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/utils"
	"github.com/MKhiriev/go-zca/models"
)

const (
	DefaultQRDeadline   = 100 * time.Second
	DefaultPollInterval = 2 * time.Second

	// confirmDeclined is the waiting-confirm error_code for a declined login.
	confirmDeclined = -13

	qrImagePrefix = "data:image/png;base64,"
)

var loginVersionRe = regexp.MustCompile(`https://stc-zlogin\.zdn\.vn/main-([\d.]+)\.js`)

var retryOrAbort = []models.Action{models.ActionRetry, models.ActionAbort}

type qrLoginService struct {
	adapter  adapter.AuthAdapter
	imei     string
	language string
	clock    clockwork.Clock
	logger   *logger.Logger
}

// NewQRLoginService creates a QRLoginService on top of authAdapter. An empty
// imei is generated from the user agent on every LoginQR call; a nil clock
// selects the real one.
func NewQRLoginService(authAdapter adapter.AuthAdapter, imei, language string, clock clockwork.Clock, log *logger.Logger) QRLoginService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &qrLoginService{
		adapter:  authAdapter,
		imei:     imei,
		language: language,
		clock:    clock,
		logger:   log.GetComponentLogger("qr_login"),
	}
}

// LoginQR implements [QRLoginService]. Every attempt gets its own cookie
// store, expiry timer and state; an attempt that ends with a retry request
// is followed by a new one until ctx is done.
func (s *qrLoginService) LoginQR(ctx context.Context, userAgent string, opts models.QRLoginOptions, onEvent models.EventHandler) (*models.Session, error) {
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultQRDeadline
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if onEvent == nil {
		onEvent = func(models.Event) models.Action { return models.ActionNone }
	}

	imei := s.imei
	if imei == "" {
		imei = utils.GenerateIMEI(userAgent)
	}
	s.adapter.SetUserAgent(userAgent)

	for n := 1; ; n++ {
		session, retry, err := s.attempt(ctx, n, userAgent, imei, opts, onEvent)
		if err != nil {
			return nil, err
		}
		if !retry {
			return session, nil
		}
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Info().Int("attempt", n).Msg("retrying QR login")
	}
}

func (s *qrLoginService) attempt(ctx context.Context, n int, userAgent, imei string, opts models.QRLoginOptions, onEvent models.EventHandler) (*models.Session, bool, error) {
	jar := cookie.New(cookie.WithClock(s.clock))
	s.adapter.SetCookieJar(jar)

	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := newQRAttempt(s.clock, onEvent, cancel, &logger.Logger{Logger: s.logger.With().Int("attempt", n).Logger()})

	user, err := s.run(attemptCtx, a, imei, opts)

	switch {
	case ctx.Err() != nil:
		return nil, false, ctx.Err()
	case a.retryRequested():
		return nil, true, nil
	case err != nil:
		a.setStatus(models.QRAborted)
		return nil, false, err
	case user == nil:
		return nil, false, nil
	}

	session := models.NewSession(imei, userAgent, s.language, jar)
	session.UserInfo = *user

	if !a.advance(models.QRCompleted, models.Event{Type: models.GotLoginInfo, User: user}) {
		return nil, false, nil
	}
	a.logger.Info().Str("user_id", user.UserID).Msg("logged in with QR code")

	return session, false, nil
}

// run walks the QR flow once. A nil user with a nil error means the attempt
// ended without a session: expired, aborted, declined or unconfirmed.
func (s *qrLoginService) run(ctx context.Context, a *qrAttempt, imei string, opts models.QRLoginOptions) (*models.UserInfo, error) {
	version, err := s.loginVersion(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info().Str("version", version).Msg("got login version")

	resp, err := s.adapter.AccountLoginInfo(ctx, version, imei)
	if err != nil {
		return nil, mapAdapterError(ErrLoginInfoFailed, err)
	}
	if !resp.OK() {
		return nil, models.NewAPIError(ErrLoginInfoFailed, resp)
	}

	resp, err = s.adapter.VerifyClient(ctx, version, imei)
	if err != nil {
		return nil, mapAdapterError(ErrVerifyClientFailed, err)
	}
	if !resp.OK() {
		return nil, models.NewAPIError(ErrVerifyClientFailed, resp)
	}

	code, image, err := s.generate(ctx, version, imei)
	if err != nil {
		return nil, err
	}
	a.code = code

	if !a.advance(models.QRGenerated, models.Event{Type: models.QRCodeGenerated, Code: code, Image: image, Actions: retryOrAbort}) {
		return nil, nil
	}

	stop := a.startTimer(opts.Deadline)
	defer stop()

	scan, err := s.waitScan(ctx, a, version, imei, opts.PollInterval)
	if err != nil || scan == nil {
		return nil, err
	}

	if !a.advance(models.QRScanned, models.Event{Type: models.QRCodeScanned, Code: code, Scan: scan, Actions: retryOrAbort}) || a.isExpired() {
		return nil, nil
	}

	a.logger.Info().Msg("waiting for confirmation on the phone")
	confirm, err := s.adapter.WaitingConfirm(ctx, version, imei, code)
	if err != nil {
		if !a.isExpired() {
			a.logger.Warn().Err(err).Msg("waiting confirm got no answer")
		}
		return nil, nil
	}
	if a.isExpired() {
		return nil, nil
	}

	status, err := s.adapter.CheckSession(ctx)
	if err != nil {
		if a.isExpired() {
			return nil, nil
		}
		return nil, mapAdapterError(ErrSessionCheckFailed, err)
	}
	if status != http.StatusOK && status != http.StatusFound {
		return nil, fmt.Errorf("%w: http status %d", ErrSessionCheckFailed, status)
	}

	switch confirm.ErrorCode {
	case 0:
		a.setStatus(models.QRConfirmed)
		a.logger.Info().Str("display_name", scan.DisplayName).Msg("login confirmed")
	case confirmDeclined:
		if a.advance(models.QRDeclined, models.Event{Type: models.QRCodeDeclined, Code: code, Actions: retryOrAbort}) {
			a.logger.Info().Msg("QR login declined")
		}
		return nil, nil
	default:
		return nil, models.NewAPIError(ErrConfirmationFailed, confirm)
	}

	user, err := s.userInfo(ctx)
	if err != nil {
		if a.isExpired() {
			return nil, nil
		}
		return nil, err
	}

	stop()
	if a.isExpired() {
		return nil, nil
	}
	return user, nil
}

func (s *qrLoginService) loginVersion(ctx context.Context) (string, error) {
	html, err := s.adapter.LoadLoginPage(ctx)
	if err != nil {
		return "", mapAdapterError(ErrVersionDetectionFailed, err)
	}

	m := loginVersionRe.FindStringSubmatch(html)
	if m == nil {
		return "", ErrVersionDetectionFailed
	}
	return m[1], nil
}

func (s *qrLoginService) generate(ctx context.Context, version, imei string) (string, []byte, error) {
	resp, err := s.adapter.GenerateQRCode(ctx, version, imei)
	if err != nil {
		return "", nil, mapAdapterError(ErrQRGenerationFailed, err)
	}
	if !resp.OK() {
		return "", nil, models.NewAPIError(ErrQRGenerationFailed, resp)
	}

	code := resp.Get("code").String()
	encoded := strings.TrimPrefix(resp.Get("image").String(), qrImagePrefix)
	if code == "" || encoded == "" {
		return "", nil, fmt.Errorf("%w: response has no code or image", ErrQRGenerationFailed)
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decode image: %v", ErrQRGenerationFailed, err)
	}
	return code, image, nil
}

// waitScan polls waiting-scan until the answer carries data. Expiry is
// checked before every poll and after every answer.
func (s *qrLoginService) waitScan(ctx context.Context, a *qrAttempt, version, imei string, interval time.Duration) (*models.ScanInfo, error) {
	for {
		if a.isExpired() {
			return nil, nil
		}

		resp, err := s.adapter.WaitingScan(ctx, version, imei, a.code)
		if err != nil {
			if a.isExpired() {
				return nil, nil
			}
			return nil, mapAdapterError(ErrWaitingScanFailed, err)
		}
		if a.isExpired() {
			return nil, nil
		}

		if resp.HasData() {
			var scan models.ScanInfo
			if err = json.Unmarshal(resp.Data, &scan); err != nil {
				return nil, fmt.Errorf("%w: decode scan data: %v", ErrWaitingScanFailed, err)
			}
			return &scan, nil
		}

		if err = a.sleep(ctx, interval); err != nil {
			if a.isExpired() {
				return nil, nil
			}
			return nil, err
		}
	}
}

func (s *qrLoginService) userInfo(ctx context.Context) (*models.UserInfo, error) {
	resp, err := s.adapter.UserInfo(ctx)
	if err != nil {
		return nil, mapAdapterError(ErrLoginIncomplete, err)
	}
	return decodeUserInfo(resp)
}

func decodeUserInfo(resp models.Response) (*models.UserInfo, error) {
	if !resp.HasData() {
		return nil, fmt.Errorf("%w: can't get account info", ErrLoginIncomplete)
	}
	if !resp.Get("logged").Bool() {
		return nil, fmt.Errorf("%w: account is not logged in", ErrLoginIncomplete)
	}

	var user models.UserInfo
	if info := resp.Get("info"); info.IsObject() {
		if err := json.Unmarshal([]byte(info.Raw), &user); err != nil {
			return nil, fmt.Errorf("%w: decode account info: %v", ErrLoginIncomplete, err)
		}
	}
	return &user, nil
}
