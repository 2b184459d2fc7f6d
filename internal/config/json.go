package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations are written as strings like "100s".
type StructuredJSONConfig struct {
	App struct {
		APIType      int      `json:"api_type"`
		APIVersion   int      `json:"api_version"`
		Language     string   `json:"language"`
		UserAgent    string   `json:"user_agent"`
		IMEI         string   `json:"imei"`
		QRDeadline   Duration `json:"qr_deadline"`
		PollInterval Duration `json:"poll_interval"`
		QRImagePath  string   `json:"qr_image_path"`
	} `json:"app,omitempty"`

	Adapter struct {
		IDBaseURL      string   `json:"id_url"`
		ChatBaseURL    string   `json:"chat_url"`
		JRBaseURL      string   `json:"jr_url"`
		WPABaseURL     string   `json:"wpa_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		CookiesFile string `json:"cookies_file"`
	} `json:"storage,omitempty"`

	Log struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			APIType:      jsonCfg.App.APIType,
			APIVersion:   jsonCfg.App.APIVersion,
			Language:     jsonCfg.App.Language,
			UserAgent:    jsonCfg.App.UserAgent,
			IMEI:         jsonCfg.App.IMEI,
			QRDeadline:   time.Duration(jsonCfg.App.QRDeadline),
			PollInterval: time.Duration(jsonCfg.App.PollInterval),
			QRImagePath:  jsonCfg.App.QRImagePath,
		},
		Adapter: Adapter{
			IDBaseURL:      jsonCfg.Adapter.IDBaseURL,
			ChatBaseURL:    jsonCfg.Adapter.ChatBaseURL,
			JRBaseURL:      jsonCfg.Adapter.JRBaseURL,
			WPABaseURL:     jsonCfg.Adapter.WPABaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			DB:          DB{DSN: jsonCfg.Storage.DB.DSN},
			CookiesFile: jsonCfg.Storage.CookiesFile,
		},
		Log: Log{
			File:  jsonCfg.Log.File,
			Level: jsonCfg.Log.Level,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
