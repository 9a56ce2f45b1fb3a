// Package capture grabs the X11 desktop so it can be opened in the editor.
package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// platformBackend talks to the display server. Capture returns the pixels of
// region in root window coordinates; an empty region means the whole screen.
type platformBackend interface {
	ListMonitors() ([]MonitorInfo, error)
	Capture(region image.Rectangle) (*image.RGBA, error)
}

var backend platformBackend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]MonitorInfo, error) {
	return backend.ListMonitors()
}

// Screen captures the desktop. A non-empty display selector limits the
// capture to the matching monitor, so only that region is read from the
// server.
func Screen(display string) (*image.RGBA, error) {
	var region image.Rectangle
	if display != "" {
		monitors, err := backend.ListMonitors()
		if err != nil {
			return nil, err
		}
		monitor, err := FindMonitor(monitors, display)
		if err != nil {
			return nil, err
		}
		region = monitor.Rect
	}
	img, err := backend.Capture(region)
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// FindMonitor resolves a monitor selector: empty, "primary", an index
// (optionally prefixed by #) or a substring of the output name.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	switch lower {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}

// clampRegion limits region to the screen. An empty region selects the whole
// screen.
func clampRegion(region, screen image.Rectangle) (image.Rectangle, error) {
	if region.Empty() {
		return screen, nil
	}
	clipped := region.Intersect(screen)
	if clipped.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %v lies outside the screen %v", region, screen)
	}
	return clipped, nil
}
