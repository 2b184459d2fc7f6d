package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/logger"
	"github.com/MKhiriev/go-zca/internal/service"
	"github.com/MKhiriev/go-zca/models"
)

type TUI struct {
	services  *service.ClientServices
	appCfg    config.ClientApp
	storage   config.ClientStorage
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	return &TUI{
		services:  services,
		appCfg:    cfg.App,
		storage:   cfg.Storage,
		buildInfo: buildInfo,
		logger:    log.GetComponentLogger("tui"),
	}, nil
}

// LoginFlow runs the menu and the QR login until a session is established
// or the user quits.
func (t *TUI) LoginFlow(ctx context.Context) (*models.Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := &eventBridge{}
	pages := map[string]tea.Model{
		pageMenu: NewMenuModel(),
		pageQR:   NewQRLoginModel(ctx, t.services.QRLoginService, bridge, t.appCfg),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.attach(program.Send)

	finalModel, runErr := program.Run()
	if runErr != nil {
		return nil, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return nil, tea.ErrProgramKilled
	}
	if result.quitByUser || result.session == nil {
		return nil, ErrUserQuit
	}

	t.logger.Info().Str("user_id", result.session.UserInfo.UserID).Msg("login flow finished")
	return result.session, nil
}

// ShowSession displays session until the user closes the page.
func (t *TUI) ShowSession(ctx context.Context, session *models.Session) error {
	pages := map[string]tea.Model{
		pageSession: NewSessionModel(session, t.storage.CookiesFile),
	}

	root := NewRootModel(pages, pageSession, t.buildInfo)
	_, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
