package coretools

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/registry"
	"github.com/example/imagetweaks/internal/tool"
)

func testCanvas(w, h int) *canvas.Canvas {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: uint8(x ^ y), A: 255})
		}
	}
	return canvas.New(img)
}

func TestRegisterAddsAllTools(t *testing.T) {
	r := registry.New()
	require.NoError(t, Register(r))
	assert.Equal(t, []string{RotateCounterClockwise, RotateClockwise, FlipVertical, FlipHorizontal, CropName}, r.Names())

	c, ok := r.Get(CropName)
	require.True(t, ok)
	assert.True(t, c.Descriptor().Interactive)
}

func TestSimpleToolsUndoAndRedo(t *testing.T) {
	for _, tl := range Simple() {
		tl := tl
		t.Run(tl.Descriptor().Name, func(t *testing.T) {
			img := testCanvas(6, 4)
			before := img.Snapshot()

			p, err := tl.Do(img, nil)
			require.NoError(t, err)
			after := img.Snapshot()
			assert.NotEqual(t, before, after)

			require.NoError(t, tl.Undo(img, p))
			assert.Equal(t, before, img.Snapshot())

			_, err = tl.Do(img, p)
			require.NoError(t, err)
			assert.Equal(t, after, img.Snapshot())
		})
	}
}

func TestRotateTwiceOnSquareThenUndo(t *testing.T) {
	tools := map[string]tool.Tool{}
	for _, tl := range Simple() {
		tools[tl.Descriptor().Name] = tl
	}
	img := testCanvas(5, 5)
	before := img.Snapshot()
	cw := tools[RotateClockwise]
	p1, err := cw.Do(img, nil)
	require.NoError(t, err)
	p2, err := cw.Do(img, nil)
	require.NoError(t, err)
	require.NoError(t, cw.Undo(img, p2))
	require.NoError(t, cw.Undo(img, p1))
	assert.Equal(t, before, img.Snapshot())
}

func TestCropResolvesWithBeforeImage(t *testing.T) {
	img := testCanvas(20, 20)
	before := img.Snapshot()
	form := panel.NewForm()
	form.SetVisible(true)

	c := NewCrop()
	d := c.GetAction(img, form)
	assert.Equal(t, []string{ButtonCrop, ButtonCancel}, form.Buttons())
	w, _ := form.Field(FieldWidth)
	assert.Equal(t, 20, w)

	require.NoError(t, form.SetField(FieldWidth, 10))
	require.NoError(t, form.SetField(FieldHeight, 10))
	require.NoError(t, form.Click(ButtonCrop))

	p, err := d.Result()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())

	cp := p.(CropPayload)
	assert.Equal(t, 10, cp.Width)
	assert.Equal(t, before, cp.Before)

	require.NoError(t, c.Undo(img, p))
	assert.Equal(t, before, img.Snapshot())

	_, err = c.Do(img, p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
}

func TestCropCancelRejects(t *testing.T) {
	img := testCanvas(8, 8)
	form := panel.NewForm()
	form.SetVisible(true)
	d := NewCrop().GetAction(img, form)
	require.NoError(t, form.Click(ButtonCancel))
	_, err := d.Result()
	assert.ErrorIs(t, err, tool.ErrCancelled)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestCropInvalidGeometryRejects(t *testing.T) {
	img := testCanvas(8, 8)
	form := panel.NewForm()
	form.SetVisible(true)
	d := NewCrop().GetAction(img, form)
	require.NoError(t, form.SetField(FieldX, 50))
	require.NoError(t, form.Click(ButtonCrop))
	_, err := d.Result()
	assert.ErrorIs(t, err, canvas.ErrEmptyCrop)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestCropDoRejectsForeignPayload(t *testing.T) {
	img := testCanvas(4, 4)
	_, err := NewCrop().Do(img, struct{}{})
	assert.Error(t, err)
	assert.Error(t, NewCrop().Undo(img, nil))
}
