package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zca/models"
)

// SessionModel shows an established session and lets the user copy or export
// its cookies.
type SessionModel struct {
	session     *models.Session
	cookiesFile string
	status      string
	errMsg      string
}

func NewSessionModel(session *models.Session, cookiesFile string) *SessionModel {
	return &SessionModel{session: session, cookiesFile: cookiesFile}
}

func (m *SessionModel) Init() tea.Cmd {
	return nil
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "Скопировано!"
		return m, cmdClearStatus()
	case exportedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = "Cookies сохранены в " + msg.path
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.copy):
			return m, cmdCopyCookies(m.session)
		case key.Matches(msg, keys.export):
			if m.cookiesFile == "" {
				m.errMsg = "Путь для cookies не задан"
				return m, nil
			}
			return m, cmdExportCookies(m.session, m.cookiesFile)
		case key.Matches(msg, keys.quit), key.Matches(msg, keys.enter):
			return m, func() tea.Msg { return quitMsg{} }
		}
	}
	return m, nil
}

func (m *SessionModel) View() string {
	var b strings.Builder
	s := m.session

	row := func(name, value string) {
		b.WriteString(fmt.Sprintf("%-10s │ %s\n", name, valueOrDash(value)))
	}

	row("Аккаунт", s.UserInfo.DisplayName)
	row("ID", s.UserInfo.UserID)
	row("IMEI", fitText(s.IMEI, 48))
	row("Cookies", fmt.Sprintf("%d", s.Cookies.Len()))

	if creds, ok := s.Credentials(); ok {
		names := make([]string, 0, len(creds.ServiceMap))
		for name := range creds.ServiceMap {
			names = append(names, name)
		}
		slices.Sort(names)
		row("Сервисы", fitText(strings.Join(names, ", "), 48))
		row("Ключ", "получен")
	} else {
		row("Ключ", "")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("СЕССИЯ", strings.TrimRight(b.String(), "\n"), "c: копировать cookies │ s: сохранить cookies │ enter: готово")
}

type exportedMsg struct {
	path string
	err  error
}

func cmdCopyCookies(session *models.Session) tea.Cmd {
	return func() tea.Msg {
		data, err := session.Cookies.MarshalJSON()
		if err != nil {
			return copiedMsg{err: fmt.Errorf("encode cookies: %w", err)}
		}
		if err = clipboard.WriteAll(string(data)); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdExportCookies(session *models.Session, path string) tea.Cmd {
	return func() tea.Msg {
		if err := session.Cookies.SaveFile(path); err != nil {
			return exportedMsg{err: fmt.Errorf("save cookies: %w", err)}
		}
		return exportedMsg{path: path}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
