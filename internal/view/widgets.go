package view

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/theme"
	"github.com/example/imagetweaks/internal/toolbar"
)

const (
	toolbarHeight = 28
	panelHeight   = 30
	buttonHeight  = 22
	buttonPad     = 8
	groupGap      = 12
	fieldWidth    = 56
	minWidth      = 360
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents a clickable element of the window chrome.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	Activate() error
}

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func drawLabel(dst *image.RGBA, r image.Rectangle, s string, col color.Color) {
	x := r.Min.X + (r.Dx()-labelWidth(s))/2
	y := r.Min.Y + (r.Dy()+basicfont.Face7x13.Ascent)/2 - 1
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func drawButtonFrame(dst *image.RGBA, r image.Rectangle, th *theme.Theme, state ButtonState) {
	bg := th.ButtonBackground
	if state == StatePressed || state == StateHover {
		bg = th.ButtonBackgroundPress
	}
	draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, r, th.ButtonBorder, 1)
}

// ToolButton draws a toolbar affordance and greys it out while disabled.
type ToolButton struct {
	aff  *toolbar.Affordance
	bar  *toolbar.Toolbar
	rect image.Rectangle
}

var _ Button = (*ToolButton)(nil)

func (tb *ToolButton) Name() string { return tb.aff.Descriptor().Name }

func (tb *ToolButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	col := th.ButtonText
	if !tb.aff.Enabled() {
		state = StateDefault
		col = th.ButtonTextDisabled
	}
	drawButtonFrame(dst, tb.rect, th, state)
	drawLabel(dst, tb.rect, tb.aff.Descriptor().Title, col)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) Activate() error { return tb.bar.Activate(tb.Name()) }

// PanelButton is a button mounted by an interactive tool.
type PanelButton struct {
	label string
	form  *panel.Form
	rect  image.Rectangle
}

var _ Button = (*PanelButton)(nil)

func (pb *PanelButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	drawButtonFrame(dst, pb.rect, th, state)
	drawLabel(dst, pb.rect, pb.label, th.ButtonText)
}

func (pb *PanelButton) Rect() image.Rectangle { return pb.rect }

func (pb *PanelButton) Activate() error { return pb.form.Click(pb.label) }

// FieldBox is an integer input on the mount panel.
type FieldBox struct {
	panel.Field
	rect image.Rectangle
}

func (fb *FieldBox) Draw(dst *image.RGBA, th *theme.Theme, focused bool) {
	lw := labelWidth(fb.Name) + 4
	label := image.Rect(fb.rect.Min.X, fb.rect.Min.Y, fb.rect.Min.X+lw, fb.rect.Max.Y)
	drawLabel(dst, label, fb.Name, th.Foreground)
	box := image.Rect(label.Max.X, fb.rect.Min.Y, fb.rect.Max.X, fb.rect.Max.Y)
	draw.Draw(dst, box, &image.Uniform{th.FieldBackground}, image.Point{}, draw.Src)
	border := th.ButtonBorder
	if focused {
		border = th.FieldFocus
	}
	drawRect(dst, box, border, 1)
	drawLabel(dst, box, strconv.Itoa(fb.Value), th.Foreground)
}

// layoutToolbar places the toolbar rows left to right along the top edge,
// separating groups with a gap.
func layoutToolbar(bar *toolbar.Toolbar) []*ToolButton {
	var out []*ToolButton
	x := buttonPad / 2
	y := (toolbarHeight - buttonHeight) / 2
	for gi, row := range bar.Layout() {
		if gi > 0 {
			x += groupGap
		}
		for _, a := range row {
			w := labelWidth(a.Descriptor().Title) + buttonPad*2
			out = append(out, &ToolButton{aff: a, bar: bar, rect: image.Rect(x, y, x+w, y+buttonHeight)})
			x += w + 2
		}
	}
	return out
}

// layoutPanel places the form's fields followed by its buttons along a strip
// whose top edge is at top.
func layoutPanel(form *panel.Form, top int) ([]*FieldBox, []*PanelButton) {
	x := buttonPad / 2
	y := top + (panelHeight-buttonHeight)/2
	var fields []*FieldBox
	for _, f := range form.Fields() {
		w := labelWidth(f.Name) + 4 + fieldWidth
		fields = append(fields, &FieldBox{Field: f, rect: image.Rect(x, y, x+w, y+buttonHeight)})
		x += w + buttonPad
	}
	var buttons []*PanelButton
	for _, label := range form.Buttons() {
		w := labelWidth(label) + buttonPad*2
		buttons = append(buttons, &PanelButton{label: label, form: form, rect: image.Rect(x, y, x+w, y+buttonHeight)})
		x += w + 2
	}
	return fields, buttons
}

func toolbarWidth(buttons []*ToolButton) int {
	if len(buttons) == 0 {
		return 0
	}
	return buttons[len(buttons)-1].rect.Max.X + buttonPad/2
}
