package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned with a nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that later non-zero fields override
// earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{APIType: 30, Language: "vi"}},
		&StructuredConfig{App: App{Language: "en"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.App.APIType)
	assert.Equal(t, "en", cfg.App.Language)
}

// TestBuild_RejectsNegativeDurations verifies structured validation.
func TestBuild_RejectsNegativeDurations(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{PollInterval: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidLoginConfigs)
}

// ── sources ───────────────────────────────────────────────────────────────────

// TestLoadStructuredConfig_Defaults verifies the built-in protocol defaults.
func TestLoadStructuredConfig_Defaults(t *testing.T) {
	cfg, err := loadStructuredConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.App.APIType)
	assert.Equal(t, 663, cfg.App.APIVersion)
	assert.Equal(t, "vi", cfg.App.Language)
	assert.Equal(t, 100*time.Second, cfg.App.QRDeadline)
	assert.Equal(t, 2*time.Second, cfg.App.PollInterval)
	assert.Equal(t, "https://id.zalo.me", cfg.Adapter.IDBaseURL)
	assert.Equal(t, "https://wpa.chat.zalo.me", cfg.Adapter.WPABaseURL)
}

// TestWithEnv_ReadsEnvVars verifies that prefixed environment variables are
// picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ZCA_APP_API_VERSION", "670")
	t.Setenv("ZCA_APP_QR_DEADLINE", "90s")
	t.Setenv("ZCA_STORAGE_DB_DATABASE_URI", "/tmp/env.db")
	t.Setenv("ZCA_ADAPTER_ID_URL", "http://127.0.0.1:9000")

	b := newConfigBuilder().withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, 670, b.configs[0].App.APIVersion)
	assert.Equal(t, 90*time.Second, b.configs[0].App.QRDeadline)
	assert.Equal(t, "/tmp/env.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, "http://127.0.0.1:9000", b.configs[0].Adapter.IDBaseURL)
}

// TestWithEnv_BadValue verifies that a malformed variable becomes a builder
// error.
func TestWithEnv_BadValue(t *testing.T) {
	t.Setenv("ZCA_APP_API_TYPE", "thirty")

	b := newConfigBuilder().withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// TestParseFlags verifies every client flag.
func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-d", "/tmp/flags.db",
		"-cookies", "cookies.json",
		"-user-agent", "ua/1.0",
		"-imei", "fixed-imei",
		"-language", "en",
		"-api-type", "24",
		"-api-version", "650",
		"-qr-deadline", "60s",
		"-poll-interval", "1s",
		"-qr-image", "out.png",
		"-request-timeout", "5s",
		"-log-file", "client.log",
		"-log-level", "warn",
		"-config", "cfg.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/flags.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cookies.json", cfg.Storage.CookiesFile)
	assert.Equal(t, "ua/1.0", cfg.App.UserAgent)
	assert.Equal(t, "fixed-imei", cfg.App.IMEI)
	assert.Equal(t, "en", cfg.App.Language)
	assert.Equal(t, 24, cfg.App.APIType)
	assert.Equal(t, 650, cfg.App.APIVersion)
	assert.Equal(t, 60*time.Second, cfg.App.QRDeadline)
	assert.Equal(t, time.Second, cfg.App.PollInterval)
	assert.Equal(t, "out.png", cfg.App.QRImagePath)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "client.log", cfg.Log.File)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

// TestParseFlags_Unknown verifies that unknown flags are reported.
func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags([]string{"-token-sign-key", "x"})
	assert.Error(t, err)
}

// TestParseJSON_Success verifies the JSON file layout.
func TestParseJSON_Success(t *testing.T) {
	p := writeTempJSONConfig(t, `{
		"app": {"api_version": 671, "qr_deadline": "45s", "poll_interval": 500000000, "imei": "json-imei"},
		"adapter": {"wpa_url": "http://127.0.0.1:8081", "request_timeout": "10s"},
		"storage": {"db": {"dsn": "/tmp/json.db"}, "cookies_file": "c.json"},
		"log": {"level": "debug"}
	}`)

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, 671, cfg.App.APIVersion)
	assert.Equal(t, 45*time.Second, cfg.App.QRDeadline)
	assert.Equal(t, 500*time.Millisecond, cfg.App.PollInterval)
	assert.Equal(t, "json-imei", cfg.App.IMEI)
	assert.Equal(t, "http://127.0.0.1:8081", cfg.Adapter.WPABaseURL)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "c.json", cfg.Storage.CookiesFile)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestParseJSON_Errors verifies missing files and malformed payloads.
func TestParseJSON_Errors(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = parseJSON(writeTempJSONConfig(t, `{"app": {"qr_deadline": "soon"}}`))
	assert.Error(t, err)

	_, err = parseJSON(writeTempJSONConfig(t, `{"app": {"qr_deadline": true}}`))
	assert.Error(t, err)
}

// TestLoadStructuredConfig_Priority verifies defaults < env < flags < JSON.
func TestLoadStructuredConfig_Priority(t *testing.T) {
	p := writeTempJSONConfig(t, `{"app": {"language": "json"}}`)
	t.Setenv("ZCA_APP_LANGUAGE", "env")
	t.Setenv("ZCA_APP_API_VERSION", "700")
	t.Setenv("ZCA_APP_IMEI", "env-imei")

	cfg, err := loadStructuredConfig([]string{"-c", p, "-language", "flag", "-imei", "flag-imei"})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.App.Language)
	assert.Equal(t, "flag-imei", cfg.App.IMEI)
	assert.Equal(t, 700, cfg.App.APIVersion)
	assert.Equal(t, DefaultAPIType, cfg.App.APIType)
}

// ── ClientConfig ──────────────────────────────────────────────────────────────

// TestLoadClientConfig verifies the client view of the merged config.
func TestLoadClientConfig(t *testing.T) {
	cfg, err := LoadClientConfig([]string{"-d", "/tmp/client.db", "-cookies", "cookies.json"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "cookies.json", cfg.Storage.CookiesFile)
	assert.Equal(t, DefaultAPIType, cfg.App.APIType)
	assert.Equal(t, DefaultChatBaseURL, cfg.Adapter.ChatBaseURL)
}

// TestClientConfig_Validate verifies each validation group.
func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*ClientConfig) {}},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "zero timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "bad url", mutate: func(c *ClientConfig) { c.Adapter.JRBaseURL = "jr.chat.zalo.me" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "zero api type", mutate: func(c *ClientConfig) { c.App.APIType = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "empty user agent", mutate: func(c *ClientConfig) { c.App.UserAgent = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "zero deadline", mutate: func(c *ClientConfig) { c.App.QRDeadline = 0 }, wantErr: ErrInvalidLoginConfigs},
		{name: "zero poll interval", mutate: func(c *ClientConfig) { c.App.PollInterval = 0 }, wantErr: ErrInvalidLoginConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestDuration_MarshalJSON verifies the string form.
func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
