// Package editor ties the tool registry, the action history and the toolbar
// together. It dispatches toolbar selections to simple or interactive tools
// and keeps the undo/redo state the toolbar renders.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/event"
	"github.com/example/imagetweaks/internal/history"
	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/registry"
	"github.com/example/imagetweaks/internal/tool"
	"github.com/example/imagetweaks/internal/toolbar"
)

// Names of the built-in history entries on the toolbar.
const (
	UndoName = "undo"
	RedoName = "redo"
)

var (
	// ErrUnknownTool is returned when a name has no registered tool.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInteractiveOpen is returned while an interactive tool owns the session.
	ErrInteractiveOpen = errors.New("an interactive tool is open")
	// ErrNotUndoable is returned by Undo when no action is applied.
	ErrNotUndoable = errors.New("nothing to undo")
	// ErrNotRedoable is returned by Redo when no undone action remains.
	ErrNotRedoable = errors.New("nothing to redo")
)

// Editor is an image editing session.
type Editor struct {
	img      tool.Image
	registry *registry.Registry
	history  *history.History
	events   *event.Manager
	panel    panel.Panel
	toolbar  *toolbar.Toolbar
	log      *zap.Logger

	groups       []toolbar.Group
	historyLimit int

	mu          sync.Mutex
	initialized bool
	interactive bool
	pending     *tool.Deferred
	// cancelled records a Cancel that arrived before GetAction returned.
	cancelled bool
	undoable    bool
	redoable    bool
	lastErr     error
}

// Option configures an Editor.
type Option func(*Editor)

// WithImage sets the image being edited. It is required.
func WithImage(img tool.Image) Option { return func(e *Editor) { e.img = img } }

// WithRegistry supplies a pre-populated tool registry.
func WithRegistry(r *registry.Registry) Option { return func(e *Editor) { e.registry = r } }

// WithHistory supplies the action history.
func WithHistory(h *history.History) Option { return func(e *Editor) { e.history = h } }

// WithHistoryLimit caps the default history. Ignored when WithHistory is used.
func WithHistoryLimit(n int) Option { return func(e *Editor) { e.historyLimit = n } }

// WithPanel sets the mount point handed to interactive tools.
func WithPanel(p panel.Panel) Option { return func(e *Editor) { e.panel = p } }

// WithEvents shares an event manager with the caller.
func WithEvents(m *event.Manager) Option { return func(e *Editor) { e.events = m } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(e *Editor) { e.log = l } }

// WithToolbarGroups sets the toolbar layout.
func WithToolbarGroups(g []toolbar.Group) Option { return func(e *Editor) { e.groups = g } }

// New creates an editor. It fails with a *tool.ConfigError when no image is given.
func New(opts ...Option) (*Editor, error) {
	e := &Editor{}
	for _, o := range opts {
		o(e)
	}
	if e.img == nil {
		return nil, &tool.ConfigError{Component: "editor", Field: "image"}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.registry == nil {
		e.registry = registry.New()
	}
	if e.history == nil {
		e.history = history.New(history.WithLimit(e.historyLimit), history.WithLogger(e.log.Named("history")))
	}
	if e.events == nil {
		e.events = event.NewManager()
	}
	if e.panel == nil {
		e.panel = panel.NewForm()
	}
	e.toolbar = toolbar.New(e.groups)
	e.events.Subscribe(event.TypeStateChanged, func(event.Event) { e.toolbar.UpdateState() })
	return e, nil
}

// Register adds a tool. Tools registered after Initialize get a toolbar
// entry straight away.
func (e *Editor) Register(t tool.Tool) error {
	if err := e.registry.Register(t); err != nil {
		return err
	}
	e.mu.Lock()
	ready := e.initialized
	e.mu.Unlock()
	if ready {
		e.addToolAffordance(t.Descriptor())
		e.broadcast()
	}
	return nil
}

// Initialize builds the toolbar from the registered tools and publishes the
// initial state.
func (e *Editor) Initialize() {
	e.toolbar.Add(toolbar.NewAffordance(
		tool.Descriptor{Name: UndoName, Icon: "undo", Title: "Undo"},
		e.Undo,
		func(a *toolbar.Affordance) { a.SetEnabled(e.IsUndoable() && !e.InteractiveTool()) },
	))
	e.toolbar.Add(toolbar.NewAffordance(
		tool.Descriptor{Name: RedoName, Icon: "redo", Title: "Redo"},
		e.Redo,
		func(a *toolbar.Affordance) { a.SetEnabled(e.IsRedoable() && !e.InteractiveTool()) },
	))
	for _, name := range e.registry.Names() {
		if t, ok := e.registry.Get(name); ok {
			e.addToolAffordance(t.Descriptor())
		}
	}
	e.mu.Lock()
	e.initialized = true
	e.refresh()
	e.mu.Unlock()
	e.broadcast()
}

func (e *Editor) addToolAffordance(desc tool.Descriptor) {
	name := desc.Name
	e.toolbar.Add(toolbar.NewAffordance(desc,
		func() error {
			_, err := e.Select(context.Background(), name)
			return err
		},
		func(a *toolbar.Affordance) { a.SetEnabled(!e.InteractiveTool()) },
	))
}

// Select runs the named tool. The returned channel is closed once the
// resulting action has been recorded or discarded: immediately for simple
// tools, and when the sub-interface settles for interactive ones. Cancelling
// ctx rejects an open interactive tool.
func (e *Editor) Select(ctx context.Context, name string) (<-chan struct{}, error) {
	switch name {
	case UndoName:
		return closed(), e.Undo()
	case RedoName:
		return closed(), e.Redo()
	}
	t, ok := e.registry.Get(name)
	if !ok {
		e.log.Warn("select of unregistered tool", zap.String("tool", name))
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownTool)
	}

	e.mu.Lock()
	if e.interactive {
		e.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", name, ErrInteractiveOpen)
	}
	e.lastErr = nil
	if it, ok := t.(tool.Interactive); ok && t.Descriptor().Interactive {
		e.interactive = true
		e.cancelled = false
		e.refresh()
		e.mu.Unlock()
		return e.openInteractive(ctx, name, it), nil
	}
	defer e.broadcast()
	defer e.mu.Unlock()

	p, err := t.Do(e.img, nil)
	if err != nil {
		e.lastErr = err
		e.log.Warn("tool failed", zap.String("tool", name), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	e.history.Push(history.Action{Name: name, Payload: p})
	e.refresh()
	e.log.Debug("applied tool", zap.String("tool", name))
	return closed(), nil
}

func (e *Editor) openInteractive(ctx context.Context, name string, it tool.Interactive) <-chan struct{} {
	e.panel.Clear()
	e.panel.SetVisible(true)
	e.broadcast()
	e.log.Debug("interactive tool opened", zap.String("tool", name))

	d := it.GetAction(e.img, e.panel)
	e.mu.Lock()
	e.pending = d
	cancelled := e.cancelled
	e.mu.Unlock()
	if cancelled {
		d.Reject(tool.ErrCancelled)
	}

	done := make(chan struct{})
	go e.await(ctx, name, d, done)
	return done
}

func (e *Editor) await(ctx context.Context, name string, d *tool.Deferred, done chan struct{}) {
	defer close(done)
	select {
	case <-d.Done():
	case <-ctx.Done():
		d.Reject(ctx.Err())
	}
	p, err := d.Result()

	e.mu.Lock()
	switch {
	case err == nil:
		e.history.Push(history.Action{Name: name, Payload: p})
		e.log.Debug("interactive tool applied", zap.String("tool", name))
	case isCancel(err):
		e.log.Debug("interactive tool cancelled", zap.String("tool", name), zap.Error(err))
	default:
		e.lastErr = err
		e.log.Warn("interactive tool failed", zap.String("tool", name), zap.Error(err))
	}
	e.interactive = false
	e.pending = nil
	e.refresh()
	e.mu.Unlock()

	e.panel.Clear()
	e.panel.SetVisible(false)
	e.broadcast()
}

// Cancel rejects the open interactive tool. It reports whether one was open.
func (e *Editor) Cancel() bool {
	e.mu.Lock()
	d := e.pending
	if d == nil {
		// Still inside GetAction: the rejection happens once it returns.
		opening := e.interactive && !e.cancelled
		e.cancelled = e.cancelled || opening
		e.mu.Unlock()
		return opening
	}
	e.mu.Unlock()
	return d.Reject(tool.ErrCancelled)
}

// AwaitingInput reports whether an interactive tool is open and has not yet
// resolved or rejected.
func (e *Editor) AwaitingInput() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil && !e.pending.Settled()
}

// Undo reverses the action at the cursor.
func (e *Editor) Undo() error {
	e.mu.Lock()
	if e.interactive {
		e.mu.Unlock()
		return fmt.Errorf("undo: %w", ErrInteractiveOpen)
	}
	a, ok := e.history.Current()
	if !ok {
		e.mu.Unlock()
		return ErrNotUndoable
	}
	defer e.broadcast()
	defer e.mu.Unlock()

	t, ok := e.registry.Get(a.Name)
	if !ok {
		return fmt.Errorf("undo %s: %w", a.Name, ErrUnknownTool)
	}
	if err := t.Undo(e.img, a.Payload); err != nil {
		e.lastErr = err
		e.log.Warn("undo failed", zap.String("tool", a.Name), zap.Error(err))
		return fmt.Errorf("undo %s: %w", a.Name, err)
	}
	e.history.StepBack()
	e.refresh()
	return nil
}

// Redo re-applies the action after the cursor.
func (e *Editor) Redo() error {
	e.mu.Lock()
	if e.interactive {
		e.mu.Unlock()
		return fmt.Errorf("redo: %w", ErrInteractiveOpen)
	}
	a, ok := e.history.Next()
	if !ok {
		e.mu.Unlock()
		return ErrNotRedoable
	}
	defer e.broadcast()
	defer e.mu.Unlock()

	t, ok := e.registry.Get(a.Name)
	if !ok {
		return fmt.Errorf("redo %s: %w", a.Name, ErrUnknownTool)
	}
	if _, err := t.Do(e.img, a.Payload); err != nil {
		e.lastErr = err
		e.log.Warn("redo failed", zap.String("tool", a.Name), zap.Error(err))
		return fmt.Errorf("redo %s: %w", a.Name, err)
	}
	e.history.StepForward()
	e.refresh()
	return nil
}

// Save publishes the current pixels to save subscribers and returns them.
func (e *Editor) Save() canvas.PixelData {
	px := e.img.Snapshot()
	e.log.Debug("save", zap.Int("width", px.Width), zap.Int("height", px.Height))
	e.events.Dispatch(event.TypeSave, event.SaveData{Pixels: px})
	return px
}

// refresh recomputes the cached flags. Callers hold e.mu.
func (e *Editor) refresh() {
	e.undoable = e.history.IsUndoable()
	e.redoable = e.history.IsRedoable()
}

func (e *Editor) broadcast() {
	e.events.Dispatch(event.TypeStateChanged, e.State())
}

// State returns a snapshot of the session flags.
func (e *Editor) State() event.StateData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return event.StateData{
		Undoable:    e.undoable,
		Redoable:    e.redoable,
		Interactive: e.interactive,
		Cursor:      e.history.Cursor(),
		Len:         e.history.Len(),
	}
}

// IsUndoable reports whether an applied action exists.
func (e *Editor) IsUndoable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undoable
}

// IsRedoable reports whether an undone action can be re-applied.
func (e *Editor) IsRedoable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redoable
}

// InteractiveTool reports whether an interactive tool's sub-interface is open.
func (e *Editor) InteractiveTool() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.interactive
}

// History returns a copy of the action log.
func (e *Editor) History() []history.Action {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Actions()
}

// Cursor returns the index of the last applied action, or -1.
func (e *Editor) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Cursor()
}

// LastError returns the failure of the most recently selected tool, if any.
// Selecting another tool clears it.
func (e *Editor) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Subscribe registers a handler on the editor's event manager.
func (e *Editor) Subscribe(t event.Type, h event.Handler) { e.events.Subscribe(t, h) }

func (e *Editor) Toolbar() *toolbar.Toolbar    { return e.toolbar }
func (e *Editor) Panel() panel.Panel           { return e.panel }
func (e *Editor) Image() tool.Image            { return e.img }
func (e *Editor) Registry() *registry.Registry { return e.registry }

func isCancel(err error) bool {
	return errors.Is(err, tool.ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
