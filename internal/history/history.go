// Package history keeps the linear undo/redo log of applied actions.
package history

import (
	"go.uber.org/zap"
)

// Action is one reversible edit: the tool that made it and the opaque
// payload that tool needs to reverse it.
type Action struct {
	Name    string
	Payload any
}

// History is an ordered log of actions with a cursor on the last applied
// one. A cursor of -1 means nothing is applied. It is not safe for
// concurrent use; the editor serialises access.
type History struct {
	actions []Action
	cursor  int
	limit   int
	log     *zap.Logger
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the number of retained actions. Zero means unlimited.
func WithLimit(n int) Option { return func(h *History) { h.limit = n } }

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *zap.Logger) Option { return func(h *History) { h.log = l } }

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{cursor: -1}
	for _, o := range opts {
		o(h)
	}
	if h.limit < 0 {
		h.limit = 0
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	return h
}

// Push records a newly applied action. Any redoable actions after the
// cursor are discarded first.
func (h *History) Push(a Action) {
	if h.cursor < len(h.actions)-1 {
		h.log.Debug("truncating redo branch",
			zap.Int("cursor", h.cursor), zap.Int("dropped", len(h.actions)-1-h.cursor))
		h.actions = h.actions[:h.cursor+1]
	}
	h.actions = append(h.actions, a)
	if h.limit > 0 && len(h.actions) > h.limit {
		evict := len(h.actions) - h.limit
		h.actions = append([]Action(nil), h.actions[evict:]...)
	}
	h.cursor = len(h.actions) - 1
	h.log.Debug("recorded action", zap.String("name", a.Name),
		zap.Int("cursor", h.cursor), zap.Int("count", len(h.actions)))
}

// Current returns the last applied action.
func (h *History) Current() (Action, bool) {
	if !h.IsUndoable() {
		return Action{}, false
	}
	return h.actions[h.cursor], true
}

// Next returns the action a redo would re-apply.
func (h *History) Next() (Action, bool) {
	if !h.IsRedoable() {
		return Action{}, false
	}
	return h.actions[h.cursor+1], true
}

// StepBack moves the cursor off the current action after it has been undone.
func (h *History) StepBack() bool {
	if !h.IsUndoable() {
		return false
	}
	h.cursor--
	h.log.Debug("stepped back", zap.Int("cursor", h.cursor))
	return true
}

// StepForward moves the cursor onto the next action after it has been redone.
func (h *History) StepForward() bool {
	if !h.IsRedoable() {
		return false
	}
	h.cursor++
	h.log.Debug("stepped forward", zap.Int("cursor", h.cursor))
	return true
}

// IsUndoable reports whether an applied action exists.
func (h *History) IsUndoable() bool { return h.cursor >= 0 }

// IsRedoable reports whether the cursor is short of the last action.
func (h *History) IsRedoable() bool { return h.cursor != len(h.actions)-1 }

// Cursor returns the index of the last applied action, or -1.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of recorded actions, applied or not.
func (h *History) Len() int { return len(h.actions) }

// Actions returns a copy of the log.
func (h *History) Actions() []Action {
	out := make([]Action, len(h.actions))
	copy(out, h.actions)
	return out
}

// Clear empties the log, e.g. when a new image is loaded.
func (h *History) Clear() {
	h.actions = nil
	h.cursor = -1
	h.log.Debug("cleared")
}
