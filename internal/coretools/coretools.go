// Package coretools provides the built-in rotate, flip and crop tools.
package coretools

import (
	"github.com/example/imagetweaks/internal/canvas"
	"github.com/example/imagetweaks/internal/tool"
)

// Tool names used by the default toolbar layout.
const (
	RotateCounterClockwise = "rotateCounterClockwise"
	RotateClockwise        = "rotateClockwise"
	FlipVertical           = "flipVertical"
	FlipHorizontal         = "flipHorizontal"
	CropName               = "crop"
)

// Registrar is satisfied by the tool registry and the editor.
type Registrar interface {
	Register(t tool.Tool) error
}

func rotate(degrees int) tool.DoFunc {
	return func(img tool.Image, _ tool.Payload) (tool.Payload, error) {
		img.Rotate(degrees)
		if err := img.Render(); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	}
}

func flip(axis canvas.Axis) tool.DoFunc {
	return func(img tool.Image, _ tool.Payload) (tool.Payload, error) {
		img.Flip(axis)
		if err := img.Render(); err != nil {
			return nil, err
		}
		return struct{}{}, nil
	}
}

func undoWith(do tool.DoFunc) tool.UndoFunc {
	return func(img tool.Image, p tool.Payload) error {
		_, err := do(img, p)
		return err
	}
}

// Simple returns the four instant tools.
func Simple() []tool.Tool {
	return []tool.Tool{
		tool.MustNew(tool.Descriptor{
			Name:  RotateCounterClockwise,
			Icon:  "rotate-counter-clockwise",
			Title: "Rotate counter clockwise",
		}, rotate(-90), undoWith(rotate(90))),
		tool.MustNew(tool.Descriptor{
			Name:  RotateClockwise,
			Icon:  "rotate-clockwise",
			Title: "Rotate clockwise",
		}, rotate(90), undoWith(rotate(-90))),
		tool.MustNew(tool.Descriptor{
			Name:  FlipVertical,
			Icon:  "flip-vertical",
			Title: "Flip vertical",
		}, flip(canvas.AxisY), undoWith(flip(canvas.AxisY))),
		tool.MustNew(tool.Descriptor{
			Name:  FlipHorizontal,
			Icon:  "flip-horizontal",
			Title: "Flip horizontal",
		}, flip(canvas.AxisX), undoWith(flip(canvas.AxisX))),
	}
}

// Register adds every built-in tool to r.
func Register(r Registrar) error {
	for _, t := range append(Simple(), NewCrop()) {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
