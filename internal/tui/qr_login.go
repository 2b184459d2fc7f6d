// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zca/internal/config"
	"github.com/MKhiriev/go-zca/internal/service"
	"github.com/MKhiriev/go-zca/models"
)

// QRLoginModel drives one QR login run. Login events arrive as
// [qrEventMsg]; expiry and decline wait for the user to choose between a new
// code and cancelling, every other event is answered at once.
type QRLoginModel struct {
	ctx    context.Context
	qr     service.QRLoginService
	bridge *eventBridge
	cfg    config.ClientApp

	spinner spinner.Model
	cancel  context.CancelFunc
	running bool

	status    models.QRStatus
	code      string
	imagePath string
	scan      *models.ScanInfo
	pending   chan<- models.Action
	aborted   bool
	errMsg    string
}

// NewQRLoginModel creates the QR login page. The QR image is written to
// cfg.QRImagePath every time a new code is generated.
func NewQRLoginModel(ctx context.Context, qr service.QRLoginService, bridge *eventBridge, cfg config.ClientApp) *QRLoginModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return &QRLoginModel{
		ctx:     ctx,
		qr:      qr,
		bridge:  bridge,
		cfg:     cfg,
		spinner: s,
	}
}

// Init implements [tea.Model]. Every call starts a fresh login run.
func (m *QRLoginModel) Init() tea.Cmd {
	m.reset()
	return tea.Batch(m.spinner.Tick, m.cmdLogin())
}

func (m *QRLoginModel) reset() {
	m.status = models.QRIdle
	m.code = ""
	m.imagePath = ""
	m.scan = nil
	m.pending = nil
	m.aborted = false
	m.errMsg = ""
}

// Update implements [tea.Model].
func (m *QRLoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case qrEventMsg:
		return m, m.handleEvent(msg)
	case qrImageSavedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось сохранить QR-код: " + msg.err.Error()
			return m, nil
		}
		m.imagePath = msg.path
		return m, nil
	case qrDoneMsg:
		return m, m.finish(msg)
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *QRLoginModel) handleEvent(msg qrEventMsg) tea.Cmd {
	switch msg.ev.Type {
	case models.QRCodeGenerated:
		m.status = models.QRGenerated
		m.code = msg.ev.Code
		m.scan = nil
		msg.reply <- models.ActionNone
		return m.cmdSaveImage(msg.ev.Image)
	case models.QRCodeScanned:
		m.status = models.QRScanned
		m.scan = msg.ev.Scan
		msg.reply <- models.ActionNone
	case models.QRCodeExpired:
		m.status = models.QRExpired
		m.pending = msg.reply
	case models.QRCodeDeclined:
		m.status = models.QRDeclined
		m.pending = msg.reply
	default:
		msg.reply <- models.ActionNone
	}
	return nil
}

func (m *QRLoginModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.pending != nil {
		switch {
		case key.Matches(msg, keys.retry), key.Matches(msg, keys.enter):
			m.answer(models.ActionRetry)
			m.status = models.QRIdle
		case key.Matches(msg, keys.esc):
			m.aborted = true
			m.answer(models.ActionAbort)
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.esc):
		if m.running {
			m.cancel()
			return nil
		}
		return backToMenu("")
	case key.Matches(msg, keys.retry), key.Matches(msg, keys.enter):
		if !m.running {
			return m.Init()
		}
	}
	return nil
}

func (m *QRLoginModel) answer(action models.Action) {
	m.pending <- action
	m.pending = nil
}

func (m *QRLoginModel) finish(msg qrDoneMsg) tea.Cmd {
	m.running = false
	if m.pending != nil {
		m.answer(models.ActionAbort)
	}

	switch {
	case msg.session != nil:
		session := msg.session
		return func() tea.Msg { return LoginResult{Session: session} }
	case errors.Is(msg.err, context.Canceled):
		return backToMenu("Вход отменён")
	case msg.err != nil:
		m.errMsg = humanizeLoginError(msg.err)
		return nil
	case m.aborted:
		return backToMenu("Вход отменён")
	case m.status == models.QRDeclined:
		return backToMenu("Вход отклонён на телефоне")
	case m.status == models.QRExpired:
		return backToMenu("Срок действия QR-кода истёк")
	default:
		return backToMenu("Вход отменён")
	}
}

// View implements [tea.Model].
func (m *QRLoginModel) View() string {
	var b strings.Builder

	b.WriteString("Статус   │ ")
	b.WriteString(m.statusText())
	if m.running && m.pending == nil {
		b.WriteString(" ")
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	b.WriteString("Код      │ ")
	b.WriteString(valueOrDash(fitText(m.code, 40)))
	b.WriteString("\n")
	b.WriteString("QR-файл  │ ")
	b.WriteString(valueOrDash(m.imagePath))
	b.WriteString("\n")
	if m.scan != nil {
		b.WriteString("Аккаунт  │ ")
		b.WriteString(valueOrDash(m.scan.DisplayName))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ВХОД ПО QR-КОДУ", strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m *QRLoginModel) statusText() string {
	switch m.status {
	case models.QRIdle:
		if m.running {
			return "Получение QR-кода..."
		}
		return "-"
	case models.QRGenerated:
		return "Отсканируйте QR-код в мобильном приложении"
	case models.QRScanned:
		return "Подтвердите вход на телефоне"
	case models.QRExpired:
		return "Срок действия QR-кода истёк"
	case models.QRDeclined:
		return "Вход отклонён на телефоне"
	default:
		return m.status.String()
	}
}

func (m *QRLoginModel) hotKeys() string {
	switch {
	case m.pending != nil:
		return "r: новый QR-код │ esc: отмена"
	case m.running:
		return "esc: отмена"
	default:
		return "r: повторить │ esc: назад"
	}
}

func (m *QRLoginModel) cmdLogin() tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.running = true

	qr := m.qr
	userAgent := m.cfg.UserAgent
	opts := models.QRLoginOptions{Deadline: m.cfg.QRDeadline, PollInterval: m.cfg.PollInterval}
	onEvent := m.bridge.handler(ctx)

	return func() tea.Msg {
		defer cancel()
		session, err := qr.LoginQR(ctx, userAgent, opts, onEvent)
		return qrDoneMsg{session: session, err: err}
	}
}

func (m *QRLoginModel) cmdSaveImage(image []byte) tea.Cmd {
	path := m.cfg.QRImagePath
	if path == "" || len(image) == 0 {
		return nil
	}

	return func() tea.Msg {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return qrImageSavedMsg{err: err}
			}
		}
		if err := os.WriteFile(path, image, 0o600); err != nil {
			return qrImageSavedMsg{err: err}
		}
		return qrImageSavedMsg{path: path}
	}
}

func backToMenu(notice string) tea.Cmd {
	return func() tea.Msg {
		nav := NavigateTo{Page: pageMenu}
		if notice != "" {
			nav.Payload = MenuNotice{Text: notice}
		}
		return nav
	}
}
