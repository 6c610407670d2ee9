// Package desktop forwards messages to the operating system's notification center.
package desktop

import (
	"github.com/cockroachdb/errors"
	"github.com/gen2brain/beeep"

	"github.com/osa030/dirplayer/internal/app/notification"
)

// Notifier presents messages as desktop notifications.
// Errors use an alert, which also plays the system sound where supported.
type Notifier struct {
	appName string
	notify  func(title, message string, icon any) error
	alert   func(title, message string, icon any) error
}

// NewNotifier creates a notifier that labels notifications with appName.
func NewNotifier(appName string) *Notifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Notifier{
		appName: appName,
		notify:  beeep.Notify,
		alert:   beeep.Alert,
	}
}

// Present implements notification.Surface.
func (n *Notifier) Present(msg notification.Message) error {
	title := msg.Title
	if n.appName != "" {
		title = n.appName + ": " + msg.Title
	}

	send := n.notify
	if msg.IsError() {
		send = n.alert
	}
	if err := send(title, msg.Body, ""); err != nil {
		return errors.Wrap(err, "failed to send desktop notification")
	}
	return nil
}
