//go:build !(linux || freebsd || openbsd || netbsd || dragonfly) || !cgo

package clipboard

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("clipboard image operations need cgo on a unix desktop")

// WriteImage reports that the clipboard is unavailable in this build.
func WriteImage(img image.Image) error {
	if _, err := encode(img); err != nil {
		return err
	}
	return errUnsupported
}

// ReadImage reports that the clipboard is unavailable in this build.
func ReadImage() (image.Image, error) {
	return nil, errUnsupported
}
