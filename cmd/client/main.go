package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-zca/internal/adapter"
	"github.com/MKhiriev/go-zca/internal/client"
	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/service"
	"github.com/MKhiriev/go-zca/internal/store"
	"github.com/MKhiriev/go-zca/internal/tui"
	"github.com/MKhiriev/go-zca/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("go-zca-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("go-zca-client", cfg.Log.File).WithMinLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, buildInfo, log); err != nil {
		stop()
		log.Fatal().Err(err).Msg("client run error")
	}
}

func run(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	authAdapter, err := adapter.NewHTTPAuthAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return fmt.Errorf("create auth adapter: %w", err)
	}

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer localStorage.Close()

	services := service.NewClientServices(localStorage, authAdapter, cfg.App, nil, log)

	ui, err := tui.New(services, cfg, buildInfo, log)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}

	app, err := client.NewApp(services, ui, cfg, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	err = app.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrUserQuit):
		log.Info().Msg("login cancelled by user")
		return nil
	case errors.Is(err, context.Canceled):
		log.Info().Msg("interrupted")
		return nil
	default:
		return err
	}
}
