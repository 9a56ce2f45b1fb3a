//go:build linux

package platform

import (
	"net/url"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

// hints maps a notification onto Freedesktop hints. The preview is passed as
// image-path so servers render a thumbnail of the edited file.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"category":      dbus.MakeVariant("transfer.complete"),
		"desktop-entry": dbus.MakeVariant("imagetweaks"),
	}
	if n.Preview != "" {
		u := url.URL{Scheme: "file", Path: n.Preview}
		h["image-path"] = dbus.MakeVariant(u.String())
	}
	return h
}

// Notify sends n over the session bus.
func Notify(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object(notifyDest, notifyPath)
	call := obj.Call(notifyDest+".Notify", 0,
		AppName, uint32(0), "", n.Title, n.Body, []string{}, hints(n),
		int32(n.timeout().Milliseconds()))
	return call.Err
}
