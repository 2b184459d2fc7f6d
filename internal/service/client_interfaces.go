package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-zca/models"
)

// QRLoginService logs an account in by having the user scan a QR code with
// the mobile app.
type QRLoginService interface {
	// LoginQR runs the QR flow until the account is logged in, the code is
	// declined, the attempt expires or is aborted. onEvent receives the
	// progress events and may answer with ActionRetry or ActionAbort. A
	// retry starts a new attempt with a fresh cookie store.
	//
	// Decline, expiry and abort return a nil session and a nil error. A
	// cancelled ctx returns its error.
	LoginQR(ctx context.Context, userAgent string, opts models.QRLoginOptions, onEvent models.EventHandler) (*models.Session, error)
}

// AuthService performs the cookie login that turns a cookie store into
// session credentials.
type AuthService interface {
	// Login calls getLoginInfo with parameters encrypted under a freshly
	// derived device key, decrypts the answer and stores the secret key and
	// service map on session.
	Login(ctx context.Context, session *models.Session) (models.LoginInfo, error)

	// ServerInfo fetches the client settings for session's device.
	ServerInfo(ctx context.Context, session *models.Session) (models.ServerInfo, error)

	// ValidateCookies checks that session's cookies still belong to a
	// logged-in account and refreshes session.UserInfo.
	ValidateCookies(ctx context.Context, session *models.Session) (models.UserInfo, error)
}

// SessionService persists sessions between runs.
type SessionService interface {
	// Save stores session, replacing any record with the same IMEI.
	Save(ctx context.Context, session *models.Session) error

	// Restore loads the most recently saved session. Returns
	// ErrNoStoredSession when nothing was saved yet.
	Restore(ctx context.Context) (*models.Session, error)

	// Forget deletes the stored session of imei.
	Forget(ctx context.Context, imei string) error
}
