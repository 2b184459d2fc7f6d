package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-zca/internal/cookie"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/store"
	"github.com/MKhiriev/go-zca/models"
)

type sessionService struct {
	repo   store.SessionRepository
	clock  clockwork.Clock
	logger *logger.Logger
}

// NewSessionService creates a SessionService backed by repo. A nil clock
// selects the real one.
func NewSessionService(repo store.SessionRepository, clock clockwork.Clock, log *logger.Logger) SessionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &sessionService{repo: repo, clock: clock, logger: log.GetComponentLogger("session")}
}

// Save implements [SessionService]. Credentials are stored only when the
// session carries them.
func (s *sessionService) Save(ctx context.Context, session *models.Session) error {
	cookies, err := session.Cookies.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	stored := models.StoredSession{
		IMEI:        session.IMEI,
		UserAgent:   session.UserAgent,
		Language:    session.Language,
		Cookies:     cookies,
		UserID:      session.UserInfo.UserID,
		DisplayName: session.UserInfo.DisplayName,
		UpdatedAt:   s.clock.Now(),
	}

	if creds, ok := session.Credentials(); ok {
		serviceMap, err := json.Marshal(creds.ServiceMap)
		if err != nil {
			return fmt.Errorf("encode service map: %w", err)
		}
		stored.SecretKey = creds.SecretKey
		stored.ServiceMap = serviceMap
	}

	if err = s.repo.Save(ctx, stored); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.logger.Debug().Int("cookies", session.Cookies.Len()).Msg("session saved")
	return nil
}

// Restore implements [SessionService].
func (s *sessionService) Restore(ctx context.Context) (*models.Session, error) {
	stored, err := s.repo.Latest(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, ErrNoStoredSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	jar := cookie.New(cookie.WithClock(s.clock))
	if len(stored.Cookies) > 0 {
		if err = jar.UnmarshalJSON(stored.Cookies); err != nil {
			return nil, fmt.Errorf("decode cookies: %w", err)
		}
	}

	session := models.NewSession(stored.IMEI, stored.UserAgent, stored.Language, jar)
	session.UserInfo = models.UserInfo{UserID: stored.UserID, DisplayName: stored.DisplayName}

	if stored.SecretKey != "" {
		var serviceMap map[string][]string
		if err = json.Unmarshal(stored.ServiceMap, &serviceMap); err != nil {
			return nil, fmt.Errorf("decode service map: %w", err)
		}
		if err = session.SetCredentials(stored.SecretKey, serviceMap); err != nil {
			return nil, fmt.Errorf("restore credentials: %w", err)
		}
	}

	return session, nil
}

// Forget implements [SessionService]. A missing session is not an error.
func (s *sessionService) Forget(ctx context.Context, imei string) error {
	if err := s.repo.Delete(ctx, imei); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
