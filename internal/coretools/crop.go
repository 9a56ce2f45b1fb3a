package coretools

import (
	"fmt"

	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/panel"
	"github.com/example/imagetweaks/internal/tool"
)

// Crop panel controls.
const (
	FieldWidth   = "width"
	FieldHeight  = "height"
	FieldX       = "x"
	FieldY       = "y"
	ButtonCrop   = "Crop"
	ButtonCancel = "Cancel"
)

// CropPayload records the crop geometry and the image before it. Cropping
// throws pixels away, so undo restores Before verbatim.
type CropPayload struct {
	Width  int
	Height int
	X      int
	Y      int
	Before canvas.PixelData
}

// Crop is the interactive crop tool.
type Crop struct{}

var _ tool.Interactive = (*Crop)(nil)

// NewCrop returns the crop tool.
func NewCrop() *Crop { return &Crop{} }

func (*Crop) Descriptor() tool.Descriptor {
	return tool.Descriptor{Name: CropName, Icon: "crop", Title: "Crop", Interactive: true}
}

// Do crops to the payload's rectangle. It is used on redo and by the Crop
// button once the before-image is captured.
func (*Crop) Do(img tool.Image, p tool.Payload) (tool.Payload, error) {
	cp, ok := p.(CropPayload)
	if !ok {
		return nil, fmt.Errorf("crop: payload %T is not a CropPayload", p)
	}
	img.Crop(cp.Width, cp.Height, cp.X, cp.Y)
	if err := img.Render(); err != nil {
		return nil, err
	}
	return cp, nil
}

// Undo puts the pre-crop pixels back.
func (*Crop) Undo(img tool.Image, p tool.Payload) error {
	cp, ok := p.(CropPayload)
	if !ok {
		return fmt.Errorf("crop: payload %T is not a CropPayload", p)
	}
	return img.Restore(cp.Before)
}

// GetAction mounts the geometry inputs, prefilled with the whole image, and
// the Crop and Cancel buttons.
func (c *Crop) GetAction(img tool.Image, mount panel.Panel) *tool.Deferred {
	d := tool.NewDeferred()
	b := img.Bounds()
	mount.AddField(FieldWidth, b.Dx())
	mount.AddField(FieldHeight, b.Dy())
	mount.AddField(FieldX, 0)
	mount.AddField(FieldY, 0)
	mount.AddButton(ButtonCrop, func() {
		// Apply holds off a concurrent cancel until the crop is rendered, so
		// the image only changes when the deferred resolves.
		d.Apply(func() (tool.Payload, error) {
			cp := CropPayload{Before: img.Snapshot()}
			cp.Width, _ = mount.Field(FieldWidth)
			cp.Height, _ = mount.Field(FieldHeight)
			cp.X, _ = mount.Field(FieldX)
			cp.Y, _ = mount.Field(FieldY)
			return c.Do(img, cp)
		})
	})
	mount.AddButton(ButtonCancel, func() {
		d.Reject(tool.ErrCancelled)
	})
	return d
}
