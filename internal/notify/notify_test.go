package notify_test

import (
	"context"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/pkg/config"
	"github.com/smykla-skalski/notify-complete/pkg/logger"
)

var errBackendDown = errors.New("backend down")

var _ = Describe("New", func() {
	log := logger.NewNoOpLogger()

	DescribeTable("selects the configured backend",
		func(backend config.Backend, name string) {
			n, err := notify.NewWithDeps(config.NotifierConfig{Backend: backend}, log, notify.Deps{GOOS: "linux"})

			Expect(err).NotTo(HaveOccurred())
			Expect(n.Name()).To(Equal(name))
		},
		Entry("empty means auto", config.Backend(""), "auto"),
		Entry("auto", config.BackendAuto, "auto"),
		Entry("dbus", config.BackendDBus, "dbus"),
		Entry("exec", config.BackendExec, "exec"),
		Entry("beeep", config.BackendBeeep, "beeep"),
		Entry("none", config.BackendNone, "none"),
		Entry("mixed case", config.Backend("NONE"), "none"),
	)

	It("rejects unknown backends", func() {
		_, err := notify.New(config.NotifierConfig{Backend: "carrier-pigeon"}, log)

		Expect(errors.Is(err, config.ErrInvalidBackend)).To(BeTrue())
	})
})

var _ = Describe("FallbackNotifier", func() {
	var (
		ctrl   *gomock.Controller
		first  *notify.MockNotifier
		second *notify.MockNotifier
		ctx    context.Context
		notif  config.Notification
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		first = notify.NewMockNotifier(ctrl)
		second = notify.NewMockNotifier(ctrl)
		ctx = context.Background()
		notif = config.Notification{Title: "T", Message: "M"}

		first.EXPECT().Name().Return("dbus").AnyTimes()
		second.EXPECT().Name().Return("exec").AnyTimes()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("stops at the first backend that succeeds", func() {
		first.EXPECT().Notify(ctx, notif).Return(nil)

		f := notify.NewFallbackNotifier(logger.NewNoOpLogger(), first, second)

		Expect(f.Notify(ctx, notif)).To(Succeed())
	})

	It("moves on after a failure", func() {
		gomock.InOrder(
			first.EXPECT().Notify(ctx, notif).Return(errBackendDown),
			second.EXPECT().Notify(ctx, notif).Return(nil),
		)

		f := notify.NewFallbackNotifier(logger.NewNoOpLogger(), first, second)

		Expect(f.Notify(ctx, notif)).To(Succeed())
	})

	It("reports every failure when all backends fail", func() {
		first.EXPECT().Notify(ctx, notif).Return(errBackendDown)
		second.EXPECT().Notify(ctx, notif).Return(errors.New("notify-send missing"))

		err := notify.NewFallbackNotifier(logger.NewNoOpLogger(), first, second).Notify(ctx, notif)

		Expect(errors.Is(err, notify.ErrNotification)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("backend down"))
		Expect(err.Error()).To(ContainSubstring("notify-send missing"))
	})

	It("fails with no backends", func() {
		err := notify.NewFallbackNotifier(logger.NewNoOpLogger()).Notify(ctx, notif)

		Expect(errors.Is(err, notify.ErrNotification)).To(BeTrue())
	})
})

var _ = Describe("NoopNotifier", func() {
	It("never fails", func() {
		n := notify.NewNoopNotifier(logger.NewNoOpLogger())

		Expect(n.Notify(context.Background(), config.Notification{})).To(Succeed())
	})
})

var _ = Describe("BeeepNotifier", func() {
	type sent struct{ title, message, icon string }

	var (
		notified, alerted []sent
		n                 *notify.BeeepNotifier
	)

	BeforeEach(func() {
		notified, alerted = nil, nil
		n = notify.NewBeeepNotifierWithSenders(
			func(title, message, icon string) error {
				notified = append(notified, sent{title, message, icon})
				return nil
			},
			func(title, message, icon string) error {
				alerted = append(alerted, sent{title, message, icon})
				return nil
			},
		)
	})

	It("uses Notify for normal urgency", func() {
		Expect(n.Notify(context.Background(), config.Notification{
			Title: "T", Message: "M", Icon: "i", Urgency: config.UrgencyNormal,
		})).To(Succeed())

		Expect(notified).To(Equal([]sent{{"T", "M", "i"}}))
		Expect(alerted).To(BeEmpty())
	})

	It("uses Alert for critical urgency", func() {
		Expect(n.Notify(context.Background(), config.Notification{
			Title: "T", Message: "M", Urgency: config.UrgencyCritical,
		})).To(Succeed())

		Expect(alerted).To(HaveLen(1))
		Expect(notified).To(BeEmpty())
	})

	It("wraps failures", func() {
		failing := notify.NewBeeepNotifierWithSenders(
			func(string, string, string) error { return errBackendDown },
			nil,
		)

		err := failing.Notify(context.Background(), config.Notification{})

		Expect(errors.Is(err, notify.ErrNotification)).To(BeTrue())
	})
})
