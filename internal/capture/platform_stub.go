//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"errors"
	"image"
)

var errUnsupported = errors.New("screen capture needs an X11 desktop")

type unsupportedBackend struct{}

func newBackend() platformBackend { return unsupportedBackend{} }

func (unsupportedBackend) ListMonitors() ([]MonitorInfo, error) { return nil, errUnsupported }

func (unsupportedBackend) Capture(image.Rectangle) (*image.RGBA, error) { return nil, errUnsupported }
