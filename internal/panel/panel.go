// Package panel provides the mount point handed to interactive tools so they
// can render extra controls while they are open.
package panel

import (
	"fmt"
	"sync"
)

// Panel is the surface an interactive tool builds its sub-interface on.
type Panel interface {
	// Clear removes every field and button.
	Clear()
	// SetVisible shows or hides the panel.
	SetVisible(bool)
	// AddField adds a named integer input with an initial value.
	AddField(name string, value int)
	// Field returns the current value of a field.
	Field(name string) (int, bool)
	// AddButton adds a button that calls onClick when pressed.
	AddButton(label string, onClick func())
}

// Field is a named integer input.
type Field struct {
	Name  string
	Value int
}

type button struct {
	label   string
	onClick func()
}

// Form is the in-memory Panel rendered by the front ends. It is safe for
// concurrent use; button callbacks run without the lock held.
type Form struct {
	mu       sync.Mutex
	visible  bool
	fields   []Field
	buttons  []button
	onChange func()
}

var _ Panel = (*Form)(nil)

// NewForm creates an empty, hidden form.
func NewForm() *Form { return &Form{} }

// OnChange registers fn to be called after any change to the form.
func (f *Form) OnChange(fn func()) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

func (f *Form) changed() {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (f *Form) Clear() {
	f.mu.Lock()
	f.fields = nil
	f.buttons = nil
	f.mu.Unlock()
	f.changed()
}

func (f *Form) SetVisible(v bool) {
	f.mu.Lock()
	f.visible = v
	f.mu.Unlock()
	f.changed()
}

// Visible reports whether the form is shown.
func (f *Form) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *Form) AddField(name string, value int) {
	f.mu.Lock()
	f.fields = append(f.fields, Field{Name: name, Value: value})
	f.mu.Unlock()
	f.changed()
}

func (f *Form) Field(name string) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd.Value, true
		}
	}
	return 0, false
}

// SetField updates a field value as the user edits it.
func (f *Form) SetField(name string, value int) error {
	f.mu.Lock()
	found := false
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			found = true
			break
		}
	}
	f.mu.Unlock()
	if !found {
		return fmt.Errorf("no field %q", name)
	}
	f.changed()
	return nil
}

// Fields returns a copy of the fields in insertion order.
func (f *Form) Fields() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

func (f *Form) AddButton(label string, onClick func()) {
	f.mu.Lock()
	f.buttons = append(f.buttons, button{label: label, onClick: onClick})
	f.mu.Unlock()
	f.changed()
}

// Buttons returns the button labels in insertion order.
func (f *Form) Buttons() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.buttons))
	for i, b := range f.buttons {
		out[i] = b.label
	}
	return out
}

// Click presses the button with the given label.
func (f *Form) Click(label string) error {
	f.mu.Lock()
	var fn func()
	found := false
	for _, b := range f.buttons {
		if b.label == label {
			fn = b.onClick
			found = true
			break
		}
	}
	visible := f.visible
	f.mu.Unlock()
	if !found {
		return fmt.Errorf("no button %q", label)
	}
	if !visible {
		return fmt.Errorf("panel is hidden")
	}
	if fn != nil {
		fn()
	}
	return nil
}
