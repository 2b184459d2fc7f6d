// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Protocol and flow defaults of the chat web client.
const (
	DefaultAPIType        = 30
	DefaultAPIVersion     = 663
	DefaultLanguage       = "vi"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
	DefaultQRDeadline     = 100 * time.Second
	DefaultPollInterval   = 2 * time.Second
	DefaultRequestTimeout = 30 * time.Second

	DefaultIDBaseURL   = "https://id.zalo.me"
	DefaultChatBaseURL = "https://chat.zalo.me"
	DefaultJRBaseURL   = "https://jr.chat.zalo.me"
	DefaultWPABaseURL  = "https://wpa.chat.zalo.me"

	DefaultDSN         = "zca.db"
	DefaultQRImagePath = "qr.png"
)

// StructuredConfig is the top-level configuration container of the client.
// It is populated by merging defaults, environment variables, command-line
// flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds protocol identity and login flow settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the base URLs and timeouts of the web API hosts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the session database and cookie export settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the ZCA_CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the values the web API identifies the client by, and the QR
// login timings.
type App struct {
	// APIType is sent as zpw_type and "type". Env: ZCA_APP_API_TYPE
	APIType int `env:"API_TYPE"`

	// APIVersion is sent as zpw_ver and "client_version". Env: ZCA_APP_API_VERSION
	APIVersion int `env:"API_VERSION"`

	// Language of the session. Env: ZCA_APP_LANGUAGE
	Language string `env:"LANGUAGE"`

	// UserAgent is sent with every request and hashed into the IMEI.
	// Env: ZCA_APP_USER_AGENT
	UserAgent string `env:"USER_AGENT"`

	// IMEI pins the device identifier. Empty means generate one per login.
	// Env: ZCA_APP_IMEI
	IMEI string `env:"IMEI"`

	// QRDeadline bounds a single QR attempt. Env: ZCA_APP_QR_DEADLINE
	QRDeadline time.Duration `env:"QR_DEADLINE"`

	// PollInterval is the pause between waiting-scan polls.
	// Env: ZCA_APP_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// QRImagePath is where the terminal UI writes the QR code PNG.
	// Env: ZCA_APP_QR_IMAGE_PATH
	QRImagePath string `env:"QR_IMAGE_PATH"`
}

// Adapter holds the outbound HTTP settings.
type Adapter struct {
	// IDBaseURL is the account host serving the QR flow. Env: ZCA_ADAPTER_ID_URL
	IDBaseURL string `env:"ID_URL"`

	// ChatBaseURL is the web client origin used as referer.
	// Env: ZCA_ADAPTER_CHAT_URL
	ChatBaseURL string `env:"CHAT_URL"`

	// JRBaseURL serves the user-info endpoint. Env: ZCA_ADAPTER_JR_URL
	JRBaseURL string `env:"JR_URL"`

	// WPABaseURL serves getLoginInfo and getServerInfo. Env: ZCA_ADAPTER_WPA_URL
	WPABaseURL string `env:"WPA_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ZCA_ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the SQLite session database settings.
	DB DB `envPrefix:"DB_"`

	// CookiesFile, when set, receives a JSON export of the session cookies.
	// Env: ZCA_STORAGE_COOKIES_FILE
	CookiesFile string `env:"COOKIES_FILE"`
}

// DB holds connection settings for the SQLite session database.
type DB struct {
	// DSN is the SQLite database file path. Env: ZCA_STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Log holds the client log settings.
type Log struct {
	// File is the rotating log file path. Env: ZCA_LOG_FILE
	File string `env:"FILE"`

	// Level is the minimum level name (debug, info, warn, error).
	// Env: ZCA_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// defaultConfig returns the values used when no source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			APIType:      DefaultAPIType,
			APIVersion:   DefaultAPIVersion,
			Language:     DefaultLanguage,
			UserAgent:    DefaultUserAgent,
			QRDeadline:   DefaultQRDeadline,
			PollInterval: DefaultPollInterval,
			QRImagePath:  DefaultQRImagePath,
		},
		Adapter: Adapter{
			IDBaseURL:      DefaultIDBaseURL,
			ChatBaseURL:    DefaultChatBaseURL,
			JRBaseURL:      DefaultJRBaseURL,
			WPABaseURL:     DefaultWPABaseURL,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Log: Log{Level: "info"},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(os.Args[1:])
}

func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
