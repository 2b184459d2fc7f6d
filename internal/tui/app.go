package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zca/models"
)

const (
	pageMenu    = "menu"
	pageQR      = "qr"
	pageSession = "session"
)

// RootModel routes messages between pages. It owns the global keys, page
// switching and the final session of a program run.
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	session    *models.Session
	quitByUser bool
}

// NewRootModel opens startPage out of pages.
func NewRootModel(pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[startPage],
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := r.globalKey(msg); handled {
			return r, cmd
		}
	case NavigateTo:
		return r.navigate(msg)
	case quitMsg:
		r.quitByUser = r.session == nil
		return r, tea.Quit
	case LoginResult:
		if msg.Session != nil {
			r.session = msg.Session
			return r, tea.Quit
		}
	}

	if r.current == nil {
		return r, nil
	}
	var cmd tea.Cmd
	r.current, cmd = r.current.Update(msg)
	return r, cmd
}

// globalKey reports whether msg was consumed before reaching the page.
func (r *RootModel) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		r.quitByUser = r.session == nil
		return tea.Quit, true
	case "v":
		if _, onMenu := r.current.(*MenuModel); onMenu {
			r.showBuildInfo = !r.showBuildInfo
			return nil, true
		}
	case "esc":
		if r.showBuildInfo {
			r.showBuildInfo = false
			return nil, true
		}
	}
	// The build info window swallows every other key.
	return nil, r.showBuildInfo
}

func (r RootModel) navigate(nav NavigateTo) (tea.Model, tea.Cmd) {
	next, ok := r.pages[nav.Page]
	if !ok {
		return r, nil
	}
	r.current = next
	r.showBuildInfo = false

	if payload := nav.Payload; payload != nil {
		return r, func() tea.Msg { return payload }
	}
	return r, next.Init()
}

func (r RootModel) View() string {
	switch {
	case r.showBuildInfo:
		return renderBuildInfoWindow(r.buildInfo)
	case r.current == nil:
		return renderPage("GO-ZCA", "", "")
	default:
		return r.current.View()
	}
}
