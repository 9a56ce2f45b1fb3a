// Package tool defines the contract between the editor and the image tools
// plugged into its toolbar.
package tool

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/panel"
)

// ErrCancelled is the rejection an interactive tool reports when the user
// backs out of its sub-interface.
var ErrCancelled = errors.New("cancelled")

// Payload is the opaque, tool-defined record needed to reverse an action.
type Payload any

// Image is the handle tools operate on.
type Image interface {
	Rotate(degrees int)
	Flip(axis canvas.Axis)
	Crop(width, height, x, y int)
	Render() error
	Snapshot() canvas.PixelData
	Restore(canvas.PixelData) error
	Bounds() image.Rectangle
}

var _ Image = (*canvas.Canvas)(nil)

// ConfigError reports a missing required setting on a component.
type ConfigError struct {
	Component string
	Field     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: missing required %s", e.Component, e.Field)
}

// Descriptor names a tool and how it is presented.
type Descriptor struct {
	Name        string
	Icon        string
	Title       string
	Interactive bool
}

// Validate checks that name, icon and title are set.
func (d Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return &ConfigError{Component: "tool", Field: "name"}
	case d.Icon == "":
		return &ConfigError{Component: "tool " + d.Name, Field: "icon"}
	case d.Title == "":
		return &ConfigError{Component: "tool " + d.Name, Field: "title"}
	}
	return nil
}

// Tool is a reversible image operation.
type Tool interface {
	Descriptor() Descriptor
	// Do applies the operation. p is nil on first use and the recorded
	// payload on redo; both must produce the same result.
	Do(img Image, p Payload) (Payload, error)
	// Undo reverses an earlier Do using the payload it returned.
	Undo(img Image, p Payload) error
}

// Interactive is a tool that needs extra input before it can complete. It
// mounts controls on the panel, applies the operation itself and then
// resolves the deferred with the payload, or rejects it on cancel.
type Interactive interface {
	Tool
	GetAction(img Image, mount panel.Panel) *Deferred
}

// DoFunc and UndoFunc are the callbacks behind a Func tool.
type (
	DoFunc   func(img Image, p Payload) (Payload, error)
	UndoFunc func(img Image, p Payload) error
)

// Func is a simple tool built from a descriptor and two callbacks.
type Func struct {
	desc Descriptor
	do   DoFunc
	undo UndoFunc
}

var _ Tool = (*Func)(nil)

// New builds a simple tool. It fails if the descriptor is incomplete or a
// callback is missing.
func New(desc Descriptor, do DoFunc, undo UndoFunc) (*Func, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if do == nil {
		return nil, &ConfigError{Component: "tool " + desc.Name, Field: "do callback"}
	}
	if undo == nil {
		return nil, &ConfigError{Component: "tool " + desc.Name, Field: "undo callback"}
	}
	desc.Interactive = false
	return &Func{desc: desc, do: do, undo: undo}, nil
}

// MustNew is New for tool tables built at init time.
func MustNew(desc Descriptor, do DoFunc, undo UndoFunc) *Func {
	t, err := New(desc, do, undo)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *Func) Descriptor() Descriptor { return f.desc }

func (f *Func) Do(img Image, p Payload) (Payload, error) { return f.do(img, p) }

func (f *Func) Undo(img Image, p Payload) error { return f.undo(img, p) }
