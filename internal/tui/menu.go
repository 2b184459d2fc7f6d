package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label  string
	action func() tea.Msg
}

// MenuModel is the start page. It shows the outcome of the previous login
// run when there was one.
type MenuModel struct {
	items  []menuItem
	idx    int
	notice string
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		items: []menuItem{
			{label: "Войти по QR-коду", action: func() tea.Msg { return NavigateTo{Page: pageQR} }},
			{label: "Выйти", action: func() tea.Msg { return quitMsg{} }},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNotice:
		m.notice = msg.Text
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.up):
			m.idx = max(m.idx-1, 0)
		case key.Matches(msg, keys.down):
			m.idx = min(m.idx+1, len(m.items)-1)
		case key.Matches(msg, keys.enter):
			m.notice = ""
			return m, m.items[m.idx].action
		}
	}
	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(okStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		marker := "  "
		if i == m.idx {
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(item.label)
		b.WriteString("\n")
	}

	return renderPage("ГЛАВНОЕ МЕНЮ", strings.TrimRight(b.String(), "\n"), "enter: выбрать │ ↑/↓: навигация │ v: версия")
}
