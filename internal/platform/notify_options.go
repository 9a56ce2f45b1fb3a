// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// AppName identifies the application to the host notification service.
const AppName = "ImageTweaks"

// DefaultTimeout is used when a Notification leaves Timeout unset.
const DefaultTimeout = 5 * time.Second

// Notification is one desktop notification.
type Notification struct {
	Title string
	Body  string
	// Preview is an image file shown alongside the text where the host
	// supports it. Saved edits pass the written file.
	Preview string
	Timeout time.Duration
}

func (n Notification) timeout() time.Duration {
	if n.Timeout <= 0 {
		return DefaultTimeout
	}
	return n.Timeout
}
