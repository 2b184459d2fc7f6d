package config

import (
	"fmt"
	"os"
	"time"
)

// ClientApp holds the identity and QR flow settings of the client.
type ClientApp struct {
	APIType      int
	APIVersion   int
	Language     string
	UserAgent    string
	IMEI         string
	QRDeadline   time.Duration
	PollInterval time.Duration
	QRImagePath  string
}

// ClientAdapter holds the web API hosts and the outbound request timeout.
type ClientAdapter struct {
	IDBaseURL      string
	ChatBaseURL    string
	JRBaseURL      string
	WPABaseURL     string
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path.
	DSN string
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	DB          ClientDB
	CookiesFile string
}

// ClientLog holds the client log settings.
type ClientLog struct {
	File  string
	Level string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Log     ClientLog
}

// GetClientConfig builds and validates the client config from the process
// environment, the command line and the optional JSON file.
func GetClientConfig() (*ClientConfig, error) {
	return LoadClientConfig(os.Args[1:])
}

// LoadClientConfig is GetClientConfig with explicit command-line arguments.
func LoadClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := loadStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// DefaultClientConfig returns the client config built from defaults only.
func DefaultClientConfig() *ClientConfig {
	return newClientConfig(defaultConfig())
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			APIType:      cfg.App.APIType,
			APIVersion:   cfg.App.APIVersion,
			Language:     cfg.App.Language,
			UserAgent:    cfg.App.UserAgent,
			IMEI:         cfg.App.IMEI,
			QRDeadline:   cfg.App.QRDeadline,
			PollInterval: cfg.App.PollInterval,
			QRImagePath:  cfg.App.QRImagePath,
		},
		Adapter: ClientAdapter{
			IDBaseURL:      cfg.Adapter.IDBaseURL,
			ChatBaseURL:    cfg.Adapter.ChatBaseURL,
			JRBaseURL:      cfg.Adapter.JRBaseURL,
			WPABaseURL:     cfg.Adapter.WPABaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB:          ClientDB{DSN: cfg.Storage.DB.DSN},
			CookiesFile: cfg.Storage.CookiesFile,
		},
		Log: ClientLog{
			File:  cfg.Log.File,
			Level: cfg.Log.Level,
		},
	}
}
