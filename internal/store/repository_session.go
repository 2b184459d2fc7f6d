package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/models"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session models.StoredSession) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertSessionQuery(session)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Save").
			Str("imei", session.IMEI).
			Msg("failed to execute upsert for session")
		return fmt.Errorf("%w: save session: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) Latest(ctx context.Context) (models.StoredSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLatestSessionQuery()
	if err != nil {
		return models.StoredSession{}, err
	}

	var (
		s                   models.StoredSession
		cookies, serviceMap string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&s.IMEI,
		&s.UserAgent,
		&s.Language,
		&cookies,
		&s.SecretKey,
		&serviceMap,
		&s.UserID,
		&s.DisplayName,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredSession{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Latest").
			Msg("failed to scan session row")
		return models.StoredSession{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	s.Cookies = json.RawMessage(cookies)
	s.ServiceMap = json.RawMessage(serviceMap)
	return s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, imei string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSessionQuery(imei)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.Delete").
			Str("imei", imei).
			Msg("failed to delete session")
		return fmt.Errorf("%w: delete session: %v", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
