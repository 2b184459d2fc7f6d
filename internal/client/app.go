package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/service"
	"github.com/MKhiriev/go-zca/models"
)

// UI is the part of the terminal front-end the App drives.
type UI interface {
	LoginFlow(ctx context.Context) (*models.Session, error)
	ShowSession(ctx context.Context, session *models.Session) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	storage  config.ClientStorage
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(services *service.ClientServices, ui UI, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app needs services and ui")
	}
	return &App{
		services: services,
		ui:       ui,
		storage:  cfg.Storage,
		logger:   log.GetComponentLogger("app"),
	}, nil
}

// Run restores the latest saved session when its cookies are still accepted,
// otherwise runs the QR login. The session is then completed with the cookie
// login, saved and shown.
func (a *App) Run(ctx context.Context) error {
	session, err := a.restore(ctx)
	if err != nil {
		return err
	}

	if session == nil {
		session, err = a.ui.LoginFlow(ctx)
		if err != nil {
			return err
		}
	}

	if _, err = a.services.AuthService.Login(ctx, session); err != nil {
		return fmt.Errorf("cookie login: %w", err)
	}

	if info, err := a.services.AuthService.ServerInfo(ctx, session); err != nil {
		a.logger.Warn().Err(err).Msg("server info unavailable")
	} else {
		a.logger.Debug().Int("settings_bytes", len(info.Settings)).Msg("server info loaded")
	}

	if err = a.services.SessionService.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if a.storage.CookiesFile != "" {
		if err = session.Cookies.SaveFile(a.storage.CookiesFile); err != nil {
			return fmt.Errorf("export cookies: %w", err)
		}
		a.logger.Info().Str("path", a.storage.CookiesFile).Msg("cookies exported")
	}

	return a.ui.ShowSession(ctx, session)
}

// restore returns nil without an error when there is nothing usable to
// restore. A session whose cookies the server rejects is forgotten.
func (a *App) restore(ctx context.Context) (*models.Session, error) {
	session, err := a.services.SessionService.Restore(ctx)
	if errors.Is(err, service.ErrNoStoredSession) {
		return nil, nil
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("stored session is unreadable")
		return nil, nil
	}

	user, err := a.services.AuthService.ValidateCookies(ctx, session)
	switch {
	case err == nil:
		a.logger.Info().Str("user_id", user.UserID).Msg("restored saved session")
		return session, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case errors.Is(err, service.ErrSessionRejected), errors.Is(err, service.ErrLoginIncomplete):
		a.logger.Info().Err(err).Msg("saved session expired")
		if err = a.services.SessionService.Forget(ctx, session.IMEI); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("validate saved session: %w", err)
	}
}
