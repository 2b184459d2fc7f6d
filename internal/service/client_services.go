package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-zca/internal/adapter"
	"github.com/MKhiriev/go-zca/internal/callbacks"
	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/crypto"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/store"
	"github.com/MKhiriev/go-zca/models"
)

// ClientServices is everything one client instance needs. The callback
// registry is owned here so two clients never share pending handlers.
type ClientServices struct {
	QRLoginService  QRLoginService
	AuthService     AuthService
	SessionService  SessionService
	UploadCallbacks *callbacks.Registry[models.UploadEvent]
}

// NewClientServices wires the client services to one adapter and one local
// storage. A nil clock selects the real one.
func NewClientServices(localStore *store.ClientStorages, authAdapter adapter.AuthAdapter, appCfg config.ClientApp, clock clockwork.Clock, log *logger.Logger) *ClientServices {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &ClientServices{
		QRLoginService:  NewQRLoginService(authAdapter, appCfg.IMEI, appCfg.Language, clock, log),
		AuthService:     NewAuthService(authAdapter, crypto.NewKeyDeriver(), appCfg.APIType, appCfg.APIVersion, clock, log),
		SessionService:  NewSessionService(localStore.SessionRepository, clock, log),
		UploadCallbacks: callbacks.New[models.UploadEvent](callbacks.WithClock(clock)),
	}
}
