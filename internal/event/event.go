// Package event carries editor notifications to the toolbar and front ends.
package event

import (
	"sync"

	"github.com/example/imagetweaks/internal/canvas"
)

// Type identifies an event.
type Type int

const (
	// TypeStateChanged fires after any history mutation or interactive
	// open/close so affordances can refresh their enabled state.
	TypeStateChanged Type = iota
	// TypeSave fires when the user saves; the data is SaveData.
	TypeSave
)

func (t Type) String() string {
	switch t {
	case TypeStateChanged:
		return "state-changed"
	case TypeSave:
		return "save"
	}
	return "unknown"
}

// Event is a dispatched notification.
type Event struct {
	Type Type
	Data any
}

// StateData describes the editor after a state change.
type StateData struct {
	Undoable    bool
	Redoable    bool
	Interactive bool
	Cursor      int
	Len         int
}

// SaveData carries the pixel buffer being saved.
type SaveData struct {
	Pixels canvas.PixelData
}

// Handler receives dispatched events.
type Handler func(e Event)

// Manager holds subscriptions and dispatches events synchronously.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe registers h for events of type t.
func (m *Manager) Subscribe(t Type, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[t] = append(m.handlers[t], h)
}

// Dispatch calls every handler registered for t in subscription order.
// Handlers may subscribe further handlers; those only see later events.
func (m *Manager) Dispatch(t Type, data any) {
	m.mu.RLock()
	handlers := make([]Handler, len(m.handlers[t]))
	copy(handlers, m.handlers[t])
	m.mu.RUnlock()

	e := Event{Type: t, Data: data}
	for _, h := range handlers {
		h(e)
	}
}
