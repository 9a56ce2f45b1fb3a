//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts n to Notification Center. The preview is not supported by
// AppleScript notifications and is ignored.
func Notify(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", n.Body, AppName, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}
