package view

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/imagetweaks/internal/theme"
)

const handleSize = 8

var (
	messageFaceOnce sync.Once
	messageFace     font.Face = basicfont.Face7x13
)

func loadMessageFace() font.Face {
	messageFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return
		}
		messageFace = face
	})
	return messageFace
}

// canvasArea is the part of the window between the toolbar and the panel.
func canvasArea(winW, winH int) image.Rectangle {
	return image.Rect(0, toolbarHeight, winW, winH-panelHeight)
}

// fitZoom returns the largest scale at which an image of size b fits the
// canvas area, never enlarging past 1:1.
func fitZoom(b image.Rectangle, winW, winH int) float64 {
	area := canvasArea(winW, winH)
	if b.Dx() <= 0 || b.Dy() <= 0 || area.Dx() <= 0 || area.Dy() <= 0 {
		return 1
	}
	zx := float64(area.Dx()) / float64(b.Dx())
	zy := float64(area.Dy()) / float64(b.Dy())
	z := zx
	if zy < z {
		z = zy
	}
	if z > 1 {
		z = 1
	}
	return z
}

// imageRect centres the scaled image in the canvas area.
func imageRect(b image.Rectangle, winW, winH int, zoom float64) image.Rectangle {
	area := canvasArea(winW, winH)
	w := int(float64(b.Dx()) * zoom)
	h := int(float64(b.Dy()) * zoom)
	x0 := area.Min.X + (area.Dx()-w)/2
	y0 := area.Min.Y + (area.Dy()-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// toImage maps a window point into image coordinates.
func toImage(p image.Point, dst image.Rectangle, zoom float64) image.Point {
	return image.Pt(int(float64(p.X-dst.Min.X)/zoom), int(float64(p.Y-dst.Min.Y)/zoom))
}

// toWindow maps an image rectangle into window coordinates.
func toWindow(r image.Rectangle, dst image.Rectangle, zoom float64) image.Rectangle {
	return image.Rect(
		dst.Min.X+int(float64(r.Min.X)*zoom),
		dst.Min.Y+int(float64(r.Min.Y)*zoom),
		dst.Min.X+int(float64(r.Max.X)*zoom),
		dst.Min.Y+int(float64(r.Max.Y)*zoom),
	)
}

// dragRect normalises a drag between two image points and clips it to bounds.
func dragRect(a, b image.Point, bounds image.Rectangle) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon().Intersect(bounds)
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	for i := 0; i < thick; i++ {
		r := rect.Inset(i)
		if r.Empty() {
			return
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, r.Min.Y, col)
			img.Set(x, r.Max.Y-1, col)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.Set(r.Min.X, y, col)
			img.Set(r.Max.X-1, y, col)
		}
	}
}

// drawDashedRect outlines rect alternating c1 and c2 every dash pixels.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	pick := func(i int) color.Color {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, pick(x))
		img.Set(x, rect.Max.Y-1, pick(x))
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, pick(y))
		img.Set(rect.Max.X-1, y, pick(y))
	}
}

func cropHandleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	var out []image.Rectangle
	for _, p := range []image.Point{rect.Min, {rect.Max.X, rect.Min.Y}, rect.Max, {rect.Min.X, rect.Max.Y}} {
		out = append(out, image.Rect(p.X-hs, p.Y-hs, p.X+hs, p.Y+hs))
	}
	return out
}

type paintState struct {
	width, height int
	theme         *theme.Theme
	img           *image.NRGBA
	tools         []*ToolButton
	hover         Button
	panelVisible  bool
	fields        []*FieldBox
	buttons       []*PanelButton
	focus         int
	crop          image.Rectangle
	message       string
	messageUntil  time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, log *zap.Logger) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Warn("new buffer", zap.Error(err))
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)

	zoom := fitZoom(st.img.Bounds(), st.width, st.height)
	ir := imageRect(st.img.Bounds(), st.width, st.height, zoom)
	drawCheckerboard(dst, ir, 8, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, ir, st.img, st.img.Bounds(), draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	if !st.crop.Empty() {
		r := toWindow(st.crop, ir, zoom)
		drawDashedRect(dst, r, 4, th.CropOverlay, color.White)
		for _, hr := range cropHandleRects(r) {
			draw.Draw(dst, hr, &image.Uniform{color.White}, image.Point{}, draw.Src)
			drawRect(dst, hr, th.CropOverlay, 1)
		}
	}

	bar := image.Rect(0, 0, st.width, toolbarHeight)
	draw.Draw(dst, bar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for _, tb := range st.tools {
		state := StateDefault
		if st.hover == Button(tb) {
			state = StateHover
		}
		tb.Draw(dst, th, state)
	}

	if st.panelVisible {
		pr := image.Rect(0, st.height-panelHeight, st.width, st.height)
		draw.Draw(dst, pr, &image.Uniform{th.PanelBackground}, image.Point{}, draw.Src)
		for i, fb := range st.fields {
			fb.Draw(dst, th, i == st.focus)
		}
		for _, pb := range st.buttons {
			state := StateDefault
			if st.hover == Button(pb) {
				state = StateHover
			}
			pb.Draw(dst, th, state)
		}
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		face := loadMessageFace()
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := face.Metrics().Ascent.Ceil()
		descent := face.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(dst, rect, &image.Uniform{th.PanelBackground}, image.Point{}, draw.Over)
		drawRect(dst, rect, th.ButtonBorder, 2)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
