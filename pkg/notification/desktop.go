package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// notifyFunc shows a popup; it has the signature of beeep.Notify
type notifyFunc func(title, message, appIcon string) error

// DesktopNotifier displays notifications on the local machine using its GUI.
// beeep talks to D-Bus (falling back to notify-send) on Linux, to the
// notification center on macOS and to toast notifications on Windows.
type DesktopNotifier struct {
	notify notifyFunc
}

// NewDesktopNotifier creates a desktop notifier
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{notify: beeep.Notify}
}

// Send shows the notification as a desktop popup
func (d *DesktopNotifier) Send(notification Notification) error {
	if err := d.notify(notification.Title(), notification.Message(), ""); err != nil {
		return fmt.Errorf("could not send notification via desktop: %w", err)
	}
	return nil
}
