//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification service is known.
func Notify(Notification) error { return nil }
