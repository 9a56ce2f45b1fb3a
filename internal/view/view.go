// Package view is the desktop front end: a shiny window showing the toolbar,
// the image and the mount panel of an open interactive tool.
package view

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/imagetweaks/internal/clipboard"
	"github.com/example/imagetweaks/internal/coretools"
	"github.com/example/imagetweaks/internal/editor"
	"github.com/example/imagetweaks/internal/event"
	"github.com/example/imagetweaks/internal/notify"
	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/platform"
	"github.com/example/imagetweaks/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Window holds the state of the editor window.
type Window struct {
	editor   *editor.Editor
	form     *panel.Form
	theme    *theme.Theme
	notifier *notify.Notifier
	log      *zap.Logger
	onClose  func()
}

// Option configures a Window.
type Option func(*Window)

// WithTheme sets the colour palette.
func WithTheme(t *theme.Theme) Option { return func(v *Window) { v.theme = t } }

// WithNotifier sets the notifier used for clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(v *Window) { v.notifier = n } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(v *Window) { v.log = l } }

// WithOnClose registers fn to run when the window is closed.
func WithOnClose(fn func()) Option { return func(v *Window) { v.onClose = fn } }

// New creates a window for ed. form must be the panel the editor mounts
// interactive tools on.
func New(ed *editor.Editor, form *panel.Form, opts ...Option) *Window {
	v := &Window{editor: ed, form: form}
	for _, o := range opts {
		o(v)
	}
	if v.theme == nil {
		v.theme = theme.Default()
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	return v
}

// Run opens the window and blocks until it is closed.
func (v *Window) Run() { driver.Main(v.Main) }

// cropFields reports the crop rectangle mounted on the panel, if any.
func cropFields(fields []panel.Field) (image.Rectangle, bool) {
	vals := map[string]int{}
	for _, f := range fields {
		vals[f.Name] = f.Value
	}
	for _, n := range []string{coretools.FieldX, coretools.FieldY, coretools.FieldWidth, coretools.FieldHeight} {
		if _, ok := vals[n]; !ok {
			return image.Rectangle{}, false
		}
	}
	x, y := vals[coretools.FieldX], vals[coretools.FieldY]
	return image.Rect(x, y, x+vals[coretools.FieldWidth], y+vals[coretools.FieldHeight]), true
}

// shortcutFor normalises a key press: named keys match by code, printable
// keys by lower-cased rune.
func shortcutFor(e key.Event) KeyShortcut {
	switch e.Code {
	case key.CodeEscape, key.CodeReturnEnter, key.CodeTab, key.CodeDeleteBackspace:
		return KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
	}
	if e.Rune > 0 {
		return KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
	}
	return KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
}

// editValue applies a key press to a numeric field value.
func editValue(v int, e key.Event) (int, bool) {
	switch {
	case e.Code == key.CodeDeleteBackspace:
		return v / 10, true
	case e.Rune >= '0' && e.Rune <= '9':
		if v > 99999 {
			return v, false
		}
		return v*10 + int(e.Rune-'0'), true
	}
	return v, false
}

func (v *Window) Main(s screen.Screen) {
	b := v.editor.Image().Bounds()
	width := b.Dx()
	if width < minWidth {
		width = minWidth
	}
	height := b.Dy() + toolbarHeight + panelHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: platform.AppName})
	if err != nil {
		v.log.Error("new window", zap.Error(err))
		return
	}
	defer w.Release()
	defer func() {
		v.editor.Cancel()
		if v.onClose != nil {
			v.onClose()
		}
	}()

	updateCh := make(chan struct{}, 1)
	poke := func() {
		select {
		case updateCh <- struct{}{}:
		default:
		}
	}
	v.editor.Subscribe(event.TypeStateChanged, func(event.Event) { poke() })
	v.form.OnChange(poke)
	defer v.form.OnChange(nil)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st, v.log)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	var (
		tools        []*ToolButton
		fields       []*FieldBox
		buttons      []*PanelButton
		hover        Button
		focus        int
		dragging     bool
		dragStart    image.Point
		dragRectImg  image.Rectangle
		message      string
		messageUntil time.Time
	)

	say := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(2 * time.Second)
		v.log.Info(msg)
	}
	report := func(what string, err error) {
		if err != nil {
			say(fmt.Sprintf("%s: %v", what, err))
		}
	}
	relayout := func() {
		tools = layoutToolbar(v.editor.Toolbar())
		fields, buttons = layoutPanel(v.form, height-panelHeight)
		if focus >= len(fields) {
			focus = 0
		}
	}
	viewport := func() (image.Rectangle, float64, image.Rectangle) {
		ib := v.editor.Image().Bounds()
		zoom := fitZoom(ib, width, height)
		return ib, zoom, imageRect(ib, width, height, zoom)
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys []KeyShortcut, fn func()) {
		actions[name] = fn
		for _, sc := range keys {
			keyboardAction[sc] = name
		}
	}
	activate := func(name string) func() {
		return func() { report(name, v.editor.Toolbar().Activate(name)) }
	}

	register(editor.UndoName, []KeyShortcut{{Rune: 'z', Modifiers: key.ModControl}}, activate(editor.UndoName))
	register(editor.RedoName, []KeyShortcut{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, activate(editor.RedoName))
	register(coretools.RotateCounterClockwise, []KeyShortcut{{Rune: '['}}, activate(coretools.RotateCounterClockwise))
	register(coretools.RotateClockwise, []KeyShortcut{{Rune: ']'}}, activate(coretools.RotateClockwise))
	register(coretools.FlipHorizontal, []KeyShortcut{{Rune: 'h'}}, activate(coretools.FlipHorizontal))
	register(coretools.FlipVertical, []KeyShortcut{{Rune: 'v'}}, activate(coretools.FlipVertical))
	register(coretools.CropName, []KeyShortcut{{Rune: 'c'}}, activate(coretools.CropName))
	register("save", []KeyShortcut{{Rune: 's', Modifiers: key.ModControl}}, func() {
		px := v.editor.Save()
		say(fmt.Sprintf("saved %dx%d", px.Width, px.Height))
	})
	register("copy", []KeyShortcut{{Rune: 'c', Modifiers: key.ModControl}}, func() {
		if err := clipboard.WriteImage(v.editor.Image().Snapshot().Image()); err != nil {
			report("copy", err)
			return
		}
		v.notifier.Copy("image")
		say("image copied to clipboard")
	})
	register("cancel", []KeyShortcut{{Code: key.CodeEscape}}, func() {
		dragging = false
		v.editor.Cancel()
	})
	register("apply", []KeyShortcut{{Code: key.CodeReturnEnter}}, func() {
		if len(buttons) > 0 {
			report(buttons[0].label, buttons[0].Activate())
		}
	})
	register("next-field", []KeyShortcut{{Code: key.CodeTab}}, func() {
		if len(fields) > 0 {
			focus = (focus + 1) % len(fields)
		}
	})

	relayout()
	if tw := toolbarWidth(tools); tw > width {
		width = tw
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			relayout()
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				width:        width,
				height:       height,
				theme:        v.theme,
				img:          v.editor.Image().Snapshot().Image(),
				tools:        tools,
				hover:        hover,
				panelVisible: v.form.Visible(),
				fields:       fields,
				buttons:      buttons,
				focus:        focus,
				message:      message,
				messageUntil: messageUntil,
			}
			if dragging {
				st.crop = dragRectImg
			} else if r, ok := cropFields(v.form.Fields()); ok && st.panelVisible {
				st.crop = r
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if v.form.Visible() && focus < len(fields) && e.Modifiers == 0 {
				if nv, ok := editValue(fields[focus].Value, e); ok {
					report("field", v.form.SetField(fields[focus].Name, nv))
					continue
				}
			}
			if name, ok := keyboardAction[shortcutFor(e)]; ok {
				actions[name]()
				w.Send(paint.Event{})
			}
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
			if message != "" && time.Now().Before(messageUntil) && press {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			prevHover := hover
			hover = nil
			for _, tb := range tools {
				if p.In(tb.rect) {
					hover = tb
				}
			}
			if v.form.Visible() {
				for _, pb := range buttons {
					if p.In(pb.rect) {
						hover = pb
					}
				}
				for i, fb := range fields {
					if press && p.In(fb.rect) {
						focus = i
					}
				}
			}
			if press && hover != nil {
				report("activate", hover.Activate())
				w.Send(paint.Event{})
				continue
			}
			if prevHover != hover {
				w.Send(paint.Event{})
			}

			ib, zoom, ir := viewport()
			_, cropping := cropFields(v.form.Fields())
			cropping = cropping && v.form.Visible()
			switch {
			case press && cropping && p.In(ir):
				dragging = true
				dragStart = toImage(p, ir, zoom)
				dragRectImg = image.Rectangle{}
			case dragging && e.Direction == mouse.DirNone:
				dragRectImg = dragRect(dragStart, toImage(p, ir, zoom), ib)
				w.Send(paint.Event{})
			case dragging && e.Direction == mouse.DirRelease:
				dragging = false
				r := dragRect(dragStart, toImage(p, ir, zoom), ib)
				if !r.Empty() {
					report("crop", v.form.SetField(coretools.FieldX, r.Min.X))
					report("crop", v.form.SetField(coretools.FieldY, r.Min.Y))
					report("crop", v.form.SetField(coretools.FieldWidth, r.Dx()))
					report("crop", v.form.SetField(coretools.FieldHeight, r.Dy()))
				}
				w.Send(paint.Event{})
			}
		case error:
			v.log.Warn("window event", zap.Error(e))
		}
	}
}
