package tui

import (
	"github.com/MKhiriev/go-zca/models"
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateTo asks [RootModel] to switch the active page. Payload, when set,
// is delivered to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// MenuNotice is shown on the menu after a flow ended without a session.
type MenuNotice struct {
	Text string
}

// LoginResult finishes the login flow.
type LoginResult struct {
	Session *models.Session
}

// qrEventMsg carries a login event into the program. Exactly one action must
// be sent on reply.
type qrEventMsg struct {
	ev    models.Event
	reply chan<- models.Action
}

type qrDoneMsg struct {
	session *models.Session
	err     error
}

type qrImageSavedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

// quitMsg ends the program as if the user pressed ctrl+c.
type quitMsg struct{}
