// Package store persists client sessions in a local SQLite database.
package store

import (
	"context"

	"github.com/MKhiriev/go-zca/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_repository_mock.go -package=mock

// SessionRepository stores one session per device IMEI.
type SessionRepository interface {
	// Save inserts session or replaces the record with the same IMEI.
	Save(ctx context.Context, session models.StoredSession) error

	// Latest returns the most recently updated session, or ErrSessionNotFound.
	Latest(ctx context.Context) (models.StoredSession, error)

	// Delete removes the session of imei. Deleting a missing session returns
	// ErrSessionNotFound.
	Delete(ctx context.Context, imei string) error
}
