// Package platform shows desktop notifications with the host's native
// mechanism.
package platform

import "time"

// AppName identifies photocanvas to the notification service.
const AppName = "photocanvas"

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures a single notification.
type Options struct {
	// IconPath points to an image shown with the notification when the
	// platform supports it.
	IconPath string
	// Urgent marks failures so the notification service can highlight them.
	Urgent  bool
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
