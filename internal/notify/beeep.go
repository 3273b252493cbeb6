package notify

import (
	"context"

	"github.com/gen2brain/beeep"

	"github.com/smykla-skalski/notify-complete/pkg/config"
)

// BeeepNotifier delivers notifications through gen2brain/beeep. Critical
// notifications use beeep.Alert, which also plays a sound.
type BeeepNotifier struct {
	notify func(title, message, icon string) error
	alert  func(title, message, icon string) error
}

// NewBeeepNotifier creates a BeeepNotifier.
func NewBeeepNotifier() *BeeepNotifier {
	return &BeeepNotifier{
		notify: func(title, message, icon string) error { return beeep.Notify(title, message, icon) },
		alert:  func(title, message, icon string) error { return beeep.Alert(title, message, icon) },
	}
}

// NewBeeepNotifierWithSenders creates a BeeepNotifier with custom send
// functions (for testing).
func NewBeeepNotifierWithSenders(notify, alert func(title, message, icon string) error) *BeeepNotifier {
	return &BeeepNotifier{notify: notify, alert: alert}
}

// Name implements Notifier.
func (*BeeepNotifier) Name() string {
	return string(config.BackendBeeep)
}

// Notify implements Notifier. Timeouts are not supported by beeep.
func (b *BeeepNotifier) Notify(_ context.Context, n config.Notification) error {
	send := b.notify
	if n.Urgency == config.UrgencyCritical {
		send = b.alert
	}

	if err := send(n.Title, n.Message, n.Icon); err != nil {
		return wrapFailure(err, b.Name())
	}

	return nil
}
