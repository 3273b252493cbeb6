package notify_test

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

var errBusDown = errors.New("no session bus")

type fakeBus struct {
	method string
	args   []any
	err    error
	closed bool
}

func (f *fakeBus) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...any) *dbus.Call {
	f.method = method
	f.args = args

	return &dbus.Call{Err: f.err, Body: []any{uint32(42)}}
}

func (f *fakeBus) dial(context.Context) (notify.BusObject, func() error, error) {
	return f, func() error { f.closed = true; return nil }, nil
}

var _ = Describe("DBusNotifier", func() {
	var (
		bus   *fakeBus
		notif config.Notification
	)

	BeforeEach(func() {
		bus = &fakeBus{}
		notif = config.Notification{
			Title:   "Done",
			Message: "Build finished",
			Timeout: config.TimeoutAfter(5000),
			Urgency: config.UrgencyCritical,
			Icon:    "dialog-information",
		}
	})

	It("calls Notify with the freedesktop argument layout", func() {
		n := notify.NewDBusNotifier("notify-complete", bus.dial)

		Expect(n.Notify(context.Background(), notif)).To(Succeed())
		Expect(bus.method).To(Equal("org.freedesktop.Notifications.Notify"))
		Expect(bus.args).To(HaveLen(8))
		Expect(bus.args[0]).To(Equal("notify-complete"))
		Expect(bus.args[1]).To(Equal(uint32(0)))
		Expect(bus.args[2]).To(Equal("dialog-information"))
		Expect(bus.args[3]).To(Equal("Done"))
		Expect(bus.args[4]).To(Equal("Build finished"))
		Expect(bus.args[5]).To(Equal([]string{}))
		Expect(bus.args[6]).To(HaveKeyWithValue("urgency", dbus.MakeVariant(byte(2))))
		Expect(bus.args[7]).To(Equal(int32(5000)))
		Expect(bus.closed).To(BeTrue())
	})

	It("wraps call failures", func() {
		bus.err = errors.New("org.freedesktop.DBus.Error.ServiceUnknown")
		n := notify.NewDBusNotifier("notify-complete", bus.dial)

		err := n.Notify(context.Background(), notif)

		Expect(errors.Is(err, notify.ErrNotification)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("dbus backend"))
	})

	It("wraps connection failures", func() {
		n := notify.NewDBusNotifier("notify-complete", func(context.Context) (notify.BusObject, func() error, error) {
			return nil, nil, errBusDown
		})

		err := n.Notify(context.Background(), notif)

		Expect(errors.Is(err, notify.ErrNotification)).To(BeTrue())
		Expect(errors.Is(err, errBusDown)).To(BeTrue())
	})
})

type serverInfoBus struct {
	method string
	body   []any
}

func (f *serverInfoBus) CallWithContext(_ context.Context, method string, _ dbus.Flags, _ ...any) *dbus.Call {
	f.method = method

	return &dbus.Call{Body: f.body}
}

var _ = Describe("QueryServer", func() {
	It("decodes GetServerInformation", func() {
		bus := &serverInfoBus{body: []any{"dunst", "knopwob", "1.11.0", "1.2"}}
		dial := func(context.Context) (notify.BusObject, func() error, error) {
			return bus, func() error { return nil }, nil
		}

		info, err := notify.QueryServer(context.Background(), dial)

		Expect(err).NotTo(HaveOccurred())
		Expect(bus.method).To(Equal("org.freedesktop.Notifications.GetServerInformation"))
		Expect(info).To(Equal(notify.ServerInfo{
			Name:        "dunst",
			Vendor:      "knopwob",
			Version:     "1.11.0",
			SpecVersion: "1.2",
		}))
	})

	It("reports an unreachable bus", func() {
		_, err := notify.QueryServer(context.Background(), func(context.Context) (notify.BusObject, func() error, error) {
			return nil, nil, errBusDown
		})

		Expect(errors.Is(err, errBusDown)).To(BeTrue())
	})

	It("reports a malformed reply", func() {
		bus := &serverInfoBus{body: []any{"dunst"}}

		_, err := notify.QueryServer(context.Background(), func(context.Context) (notify.BusObject, func() error, error) {
			return bus, func() error { return nil }, nil
		})

		Expect(err).To(MatchError(ContainSubstring("decoding server information")))
	})
})

var _ = DescribeTable("ExpireTimeout",
	func(t config.Timeout, want int32) {
		Expect(notify.ExpireTimeout(t)).To(Equal(want))
	},
	Entry("server default", config.TimeoutDefault(), int32(-1)),
	Entry("never", config.TimeoutNeverExpire(), int32(0)),
	Entry("milliseconds", config.TimeoutAfter(1500), int32(1500)),
	Entry("largest int32", config.TimeoutAfter(math.MaxInt32), int32(math.MaxInt32)),
	Entry("clamped", config.TimeoutAfter(math.MaxUint64), int32(math.MaxInt32)),
)
