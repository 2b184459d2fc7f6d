package models

import "time"

// QRStatus is the state of a single QR login attempt.
type QRStatus int

const (
	QRIdle QRStatus = iota
	QRGenerated
	QRScanned
	QRConfirmed
	QRDeclined
	QRExpired
	QRAborted
	QRCompleted
)

var qrStatusNames = map[QRStatus]string{
	QRIdle:      "idle",
	QRGenerated: "generated",
	QRScanned:   "scanned",
	QRConfirmed: "confirmed",
	QRDeclined:  "declined",
	QRExpired:   "expired",
	QRAborted:   "aborted",
	QRCompleted: "completed",
}

func (s QRStatus) String() string {
	if name, ok := qrStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// EventType identifies a QR login event delivered to the caller's handler.
type EventType int

const (
	// QRCodeGenerated carries the QR image and code to display.
	QRCodeGenerated EventType = iota
	// QRCodeExpired is emitted once when the attempt deadline passes.
	QRCodeExpired
	// QRCodeScanned carries the display name and avatar of the scanning account.
	QRCodeScanned
	// QRCodeDeclined is emitted when the user rejects the login on the phone.
	QRCodeDeclined
	// GotLoginInfo is emitted once the session has been assembled.
	GotLoginInfo
)

var eventTypeNames = map[EventType]string{
	QRCodeGenerated: "qr_code_generated",
	QRCodeExpired:   "qr_code_expired",
	QRCodeScanned:   "qr_code_scanned",
	QRCodeDeclined:  "qr_code_declined",
	GotLoginInfo:    "got_login_info",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Action is the handler's answer to an event.
type Action int

const (
	// ActionNone lets the flow continue.
	ActionNone Action = iota
	// ActionRetry discards the current attempt and starts a fresh one.
	ActionRetry
	// ActionAbort ends the attempt without a session.
	ActionAbort
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionRetry:
		return "retry"
	case ActionAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// ScanInfo describes the account that scanned the QR code.
type ScanInfo struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

// Event is delivered to an [EventHandler] during a QR login attempt.
// Actions lists the answers the handler may return for this event.
type Event struct {
	Type    EventType
	Code    string
	Image   []byte
	Scan    *ScanInfo
	User    *UserInfo
	Actions []Action
}

// Allows reports whether action is one of the event's offered actions.
// ActionNone is always allowed.
func (e Event) Allows(action Action) bool {
	if action == ActionNone {
		return true
	}
	for _, a := range e.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// EventHandler receives QR login events. It may be called from the timer
// goroutine as well as the login goroutine, but never concurrently.
type EventHandler func(Event) Action

// QRLoginOptions tunes a QR login attempt. Zero values select the defaults.
type QRLoginOptions struct {
	Deadline     time.Duration
	PollInterval time.Duration
}
