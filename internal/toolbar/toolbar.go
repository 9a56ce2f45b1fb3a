// Package toolbar models the editor's toolbar: one affordance per tool,
// arranged into groups, each deciding its own enabled state when the
// toolbar broadcasts an update.
package toolbar

import (
	"errors"
	"fmt"
	"sync"

	"github.com/example/imagetweaks/internal/tool"
)

var (
	// ErrUnknown is returned when activating a name with no affordance.
	ErrUnknown = errors.New("no such toolbar entry")
	// ErrDisabled is returned when activating a disabled affordance.
	ErrDisabled = errors.New("toolbar entry is disabled")
)

// Affordance is a toolbar entry built from a descriptor and two callbacks.
type Affordance struct {
	desc       tool.Descriptor
	onActivate func() error
	onUpdate   func(*Affordance)

	mu      sync.Mutex
	enabled bool
}

// NewAffordance creates an enabled entry. onUpdate may be nil, in which case
// the entry stays enabled.
func NewAffordance(desc tool.Descriptor, onActivate func() error, onUpdate func(*Affordance)) *Affordance {
	return &Affordance{desc: desc, onActivate: onActivate, onUpdate: onUpdate, enabled: true}
}

func (a *Affordance) Descriptor() tool.Descriptor { return a.desc }

// Enabled reports whether the entry can currently be activated.
func (a *Affordance) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetEnabled is called from the update callback.
func (a *Affordance) SetEnabled(v bool) {
	a.mu.Lock()
	a.enabled = v
	a.mu.Unlock()
}

// Toolbar holds the affordances and their group layout.
type Toolbar struct {
	mu     sync.RWMutex
	items  map[string]*Affordance
	order  []string
	groups []Group
}

// New creates an empty toolbar laid out by groups. A nil groups slice uses
// DefaultGroups.
func New(groups []Group) *Toolbar {
	if groups == nil {
		groups = DefaultGroups()
	}
	return &Toolbar{items: make(map[string]*Affordance), groups: groups}
}

// Add registers an affordance, replacing any entry with the same name.
func (t *Toolbar) Add(a *Affordance) {
	name := a.desc.Name
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[name]; !ok {
		t.order = append(t.order, name)
	}
	t.items[name] = a
}

// Get returns the affordance for name.
func (t *Toolbar) Get(name string) (*Affordance, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	a, ok := t.items[name]
	return a, ok
}

// Activate triggers the named affordance if it is enabled.
func (t *Toolbar) Activate(name string) error {
	a, ok := t.Get(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknown)
	}
	if !a.Enabled() {
		return fmt.Errorf("%s: %w", name, ErrDisabled)
	}
	if a.onActivate == nil {
		return nil
	}
	return a.onActivate()
}

// UpdateState asks every affordance to refresh its enabled state.
func (t *Toolbar) UpdateState() {
	t.mu.RLock()
	items := make([]*Affordance, 0, len(t.order))
	for _, name := range t.order {
		items = append(items, t.items[name])
	}
	t.mu.RUnlock()
	for _, a := range items {
		if a.onUpdate != nil {
			a.onUpdate(a)
		}
	}
}

// Groups returns the configured layout.
func (t *Toolbar) Groups() []Group {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// SetGroups replaces the layout.
func (t *Toolbar) SetGroups(groups []Group) {
	t.mu.Lock()
	t.groups = groups
	t.mu.Unlock()
}

// Layout resolves the groups into affordances. Names without an affordance
// are skipped; affordances no group mentions are collected into a final
// group in registration order.
func (t *Toolbar) Layout() [][]*Affordance {
	t.mu.RLock()
	defer t.mu.RUnlock()
	placed := make(map[string]bool)
	var out [][]*Affordance
	for _, g := range t.groups {
		var row []*Affordance
		for _, name := range g.Include {
			a, ok := t.items[name]
			if !ok || placed[name] {
				continue
			}
			placed[name] = true
			row = append(row, a)
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	var rest []*Affordance
	for _, name := range t.order {
		if !placed[name] {
			rest = append(rest, t.items[name])
		}
	}
	if len(rest) > 0 {
		out = append(out, rest)
	}
	return out
}
