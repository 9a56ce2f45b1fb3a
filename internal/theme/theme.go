// Package theme holds the colour palette used by the editor window.
package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the canvas
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Mount panel shown while an interactive tool is open
	PanelBackground color.RGBA
	FieldBackground color.RGBA
	FieldFocus      color.RGBA

	// Canvas
	CropOverlay  color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:    color.RGBA{140, 140, 140, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		PanelBackground:       color.RGBA{235, 235, 235, 255},
		FieldBackground:       color.RGBA{255, 255, 255, 255},
		FieldFocus:            color.RGBA{70, 130, 200, 255},
		CropOverlay:           color.RGBA{255, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
