package notify

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"

	"github.com/smykla-skalski/notify-complete/pkg/config"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	// expireServerDefault lets the server choose how long to show the notification.
	expireServerDefault int32 = -1

	// expireNever keeps the notification until dismissed.
	expireNever int32 = 0
)

// BusObject is the part of dbus.BusObject used to call the notification server.
type BusObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// BusDialer connects to the session bus and returns the notification
// server object and a function that closes the connection.
type BusDialer func(ctx context.Context) (BusObject, func() error, error)

// DialSessionBus opens a private session bus connection.
func DialSessionBus(ctx context.Context) (BusObject, func() error, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, nil, err
	}

	return conn.Object(dbusNotifyDest, dbusNotifyPath), conn.Close, nil
}

// DBusNotifier talks to org.freedesktop.Notifications directly.
type DBusNotifier struct {
	appName string
	dial    BusDialer
}

// NewDBusNotifier creates a DBusNotifier.
func NewDBusNotifier(appName string, dial BusDialer) *DBusNotifier {
	if dial == nil {
		dial = DialSessionBus
	}

	return &DBusNotifier{appName: appName, dial: dial}
}

// Name implements Notifier.
func (*DBusNotifier) Name() string {
	return string(config.BackendDBus)
}

// Notify implements Notifier.
func (d *DBusNotifier) Notify(ctx context.Context, n config.Notification) error {
	obj, closeConn, err := d.dial(ctx)
	if err != nil {
		return wrapFailure(err, d.Name())
	}

	defer func() { _ = closeConn() }()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.Urgency)),
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := obj.CallWithContext(
		ctx,
		dbusNotifyInterface+".Notify",
		0,
		d.appName,
		uint32(0),
		n.Icon,
		n.Title,
		n.Message,
		[]string{},
		hints,
		ExpireTimeout(n.Timeout),
	)
	if call.Err != nil {
		return wrapFailure(call.Err, d.Name())
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return wrapFailure(err, d.Name())
	}

	return nil
}

// ExpireTimeout maps a Timeout to the expire_timeout argument of Notify.
// Durations beyond the int32 range are clamped.
func ExpireTimeout(t config.Timeout) int32 {
	switch t.Kind() {
	case config.TimeoutNever:
		return expireNever
	case config.TimeoutMilliseconds:
		if t.Milliseconds() > math.MaxInt32 {
			return math.MaxInt32
		}

		return int32(t.Milliseconds())
	default:
		return expireServerDefault
	}
}

// ServerInfo describes the notification server on the session bus.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// QueryServer asks the notification server to identify itself.
func QueryServer(ctx context.Context, dial BusDialer) (ServerInfo, error) {
	if dial == nil {
		dial = DialSessionBus
	}

	var info ServerInfo

	obj, closeConn, err := dial(ctx)
	if err != nil {
		return info, errors.Wrap(err, "connecting to the session bus")
	}

	defer func() { _ = closeConn() }()

	call := obj.CallWithContext(ctx, dbusNotifyInterface+".GetServerInformation", 0)
	if call.Err != nil {
		return info, errors.Wrap(call.Err, "querying the notification server")
	}

	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return info, errors.Wrap(err, "decoding server information")
	}

	return info, nil
}
