package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-zca/models"
)

// eventBridge turns login events into program messages and waits for the
// page to answer. It is attached to the program after the program is built.
type eventBridge struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

func (b *eventBridge) attach(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

// handler returns an event handler bound to ctx. When ctx is done or no
// program is attached the flow continues with ActionNone.
func (b *eventBridge) handler(ctx context.Context) models.EventHandler {
	return func(ev models.Event) models.Action {
		b.mu.RLock()
		send := b.send
		b.mu.RUnlock()
		if send == nil {
			return models.ActionNone
		}

		reply := make(chan models.Action, 1)
		send(qrEventMsg{ev: ev, reply: reply})

		select {
		case action := <-reply:
			return action
		case <-ctx.Done():
			return models.ActionNone
		}
	}
}
