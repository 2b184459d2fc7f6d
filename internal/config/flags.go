package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses the client command line.
//
// Flags:
//
//	-c/-config        json file path with configs
//	-d                session database path
//	-cookies          cookie export file path
//	-user-agent       user agent sent with every request
//	-imei             fixed device identifier
//	-language         session language
//	-api-type         zpw_type value
//	-api-version      zpw_ver value
//	-qr-deadline      QR attempt deadline (e.g. "100s")
//	-poll-interval    waiting-scan poll interval (e.g. "2s")
//	-qr-image         QR code PNG output path
//	-request-timeout  outbound request timeout (e.g. "30s")
//	-log-file         log file path
//	-log-level        minimum log level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-zca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var cfg StructuredConfig
	var qrDeadline, pollInterval, requestTimeout time.Duration

	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Session database path")
	fs.StringVar(&cfg.Storage.CookiesFile, "cookies", "", "Cookie export file path")
	fs.StringVar(&cfg.App.UserAgent, "user-agent", "", "User agent")
	fs.StringVar(&cfg.App.IMEI, "imei", "", "Fixed device identifier")
	fs.StringVar(&cfg.App.Language, "language", "", "Session language")
	fs.IntVar(&cfg.App.APIType, "api-type", 0, "API type")
	fs.IntVar(&cfg.App.APIVersion, "api-version", 0, "API version")
	fs.DurationVar(&qrDeadline, "qr-deadline", 0, "QR attempt deadline (e.g., 100s)")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Waiting-scan poll interval (e.g., 2s)")
	fs.StringVar(&cfg.App.QRImagePath, "qr-image", "", "QR code PNG output path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Log file path")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.App.QRDeadline = qrDeadline
	cfg.App.PollInterval = pollInterval
	cfg.Adapter.RequestTimeout = requestTimeout
	return &cfg, nil
}
