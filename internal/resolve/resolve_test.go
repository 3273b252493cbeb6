package resolve_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/notify-complete/internal/resolve"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("Resolver", func() {
	var (
		resolver *resolve.Resolver
		cfg      *config.Config
		argv     []string
	)

	BeforeEach(func() {
		resolver = resolve.NewResolver()
		argv = []string{"make", "build"}
		cfg = &config.Config{
			Profiles: []config.Profile{
				{
					Name:    "alert",
					Title:   ptr("Done"),
					Timeout: ptr(config.TimeoutNeverExpire()),
					Urgency: ptr(config.UrgencyCritical),
				},
				{
					Name:    "default",
					Message: ptr("Finished"),
					Timeout: ptr(config.TimeoutAfter(3000)),
					Icon:    ptr("terminal"),
				},
			},
		}
	})

	It("uses the fallbacks when nothing is configured", func() {
		plan, err := resolver.Resolve(resolve.Overrides{Command: argv}, &config.Config{})

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification).To(Equal(config.Notification{
			Title:   "notify-complete",
			Message: "Command has finished",
			Timeout: config.TimeoutDefault(),
			Urgency: config.UrgencyNormal,
			Icon:    "",
		}))
		Expect(plan.Command).To(Equal(argv))
		Expect(plan.Profile).To(BeEmpty())
	})

	It("accepts a nil config", func() {
		plan, err := resolver.Resolve(resolve.Overrides{Command: argv}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification.Title).To(Equal(resolve.FallbackTitle))
	})

	It("merges a selected profile with the default profile", func() {
		plan, err := resolver.Resolve(resolve.Overrides{Profile: ptr("alert"), Command: argv}, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Profile).To(Equal("alert"))
		Expect(plan.Notification).To(Equal(config.Notification{
			Title:   "Done",
			Message: "Finished",
			Timeout: config.TimeoutNeverExpire(),
			Urgency: config.UrgencyCritical,
			Icon:    "terminal",
		}))
	})

	It("falls through to the default profile when no profile is selected", func() {
		plan, err := resolver.Resolve(resolve.Overrides{
			Urgency: ptr(config.UrgencyLow),
			Command: argv,
		}, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification).To(Equal(config.Notification{
			Title:   "notify-complete",
			Message: "Finished",
			Timeout: config.TimeoutAfter(3000),
			Urgency: config.UrgencyLow,
			Icon:    "terminal",
		}))
	})

	DescribeTable("documented scenarios",
		func(profiles []config.Profile, ov resolve.Overrides, want config.Notification) {
			ov.Command = argv

			plan, err := resolver.Resolve(ov, &config.Config{Profiles: profiles})

			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Notification).To(Equal(want))
		},
		Entry("alert profile without title or message",
			[]config.Profile{{
				Name:    "alert",
				Urgency: ptr(config.UrgencyCritical),
				Timeout: ptr(config.TimeoutNeverExpire()),
			}},
			resolve.Overrides{Profile: ptr("alert")},
			config.Notification{
				Title:   "notify-complete",
				Message: "Command has finished",
				Timeout: config.TimeoutNeverExpire(),
				Urgency: config.UrgencyCritical,
			},
		),
		Entry("default profile with an urgency override",
			[]config.Profile{{
				Name:    "default",
				Title:   ptr("notify-complete"),
				Message: ptr("Time to work"),
			}},
			resolve.Overrides{Urgency: ptr(config.UrgencyLow)},
			config.Notification{
				Title:   "notify-complete",
				Message: "Time to work",
				Timeout: config.TimeoutDefault(),
				Urgency: config.UrgencyLow,
			},
		),
	)

	It("prefers every command-line value over every profile", func() {
		ov := resolve.Overrides{
			Title:   ptr("T"),
			Message: ptr("M"),
			Timeout: ptr(config.TimeoutAfter(10)),
			Urgency: ptr(config.UrgencyLow),
			Icon:    ptr("I"),
			Profile: ptr("alert"),
			Command: argv,
		}

		plan, err := resolver.Resolve(ov, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification).To(Equal(config.Notification{
			Title:   "T",
			Message: "M",
			Timeout: config.TimeoutAfter(10),
			Urgency: config.UrgencyLow,
			Icon:    "I",
		}))
	})

	It("treats an empty string override as set", func() {
		plan, err := resolver.Resolve(resolve.Overrides{Message: ptr(""), Command: argv}, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification.Message).To(BeEmpty())
	})

	It("fails for an unknown profile and lists the known ones", func() {
		_, err := resolver.Resolve(resolve.Overrides{Profile: ptr("nope"), Command: argv}, cfg)

		Expect(errors.Is(err, resolve.ErrProfileNotFound)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`"nope"`))
		Expect(errors.FlattenHints(err)).To(ContainSubstring("alert, default"))
	})

	It("fails for an explicit default profile that does not exist", func() {
		_, err := resolver.Resolve(
			resolve.Overrides{Profile: ptr("default"), Command: argv},
			&config.Config{},
		)

		Expect(errors.Is(err, resolve.ErrProfileNotFound)).To(BeTrue())
		Expect(errors.FlattenHints(err)).To(ContainSubstring("notify-complete init"))
	})

	It("is deterministic", func() {
		ov := resolve.Overrides{Profile: ptr("alert"), Command: argv}

		first, err := resolver.Resolve(ov, cfg)
		Expect(err).NotTo(HaveOccurred())

		second, err := resolver.Resolve(ov, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	It("uses custom fallbacks", func() {
		r := resolve.NewResolverWithFallbacks(resolve.Fallbacks{
			Title:   "build",
			Message: "done",
			Urgency: config.UrgencyCritical,
		})

		plan, err := r.Resolve(resolve.Overrides{Command: argv}, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Notification.Title).To(Equal("build"))
		Expect(plan.Notification.Urgency).To(Equal(config.UrgencyCritical))
	})

	Describe("command", func() {
		BeforeEach(func() {
			cfg.Profiles[0].Command = []string{"cargo", "test"}
			cfg.Profiles[1].Command = []string{"make"}
		})

		It("prefers the command line", func() {
			plan, err := resolver.Resolve(resolve.Overrides{Profile: ptr("alert"), Command: argv}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Command).To(Equal(argv))
		})

		It("uses the selected profile's command", func() {
			plan, err := resolver.Resolve(resolve.Overrides{Profile: ptr("alert")}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Command).To(Equal([]string{"cargo", "test"}))
		})

		It("falls back to the default profile's command", func() {
			plan, err := resolver.Resolve(resolve.Overrides{}, cfg)

			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Command).To(Equal([]string{"make"}))
		})

		It("does not alias the profile's argv", func() {
			plan, err := resolver.Resolve(resolve.Overrides{}, cfg)
			Expect(err).NotTo(HaveOccurred())

			plan.Command[0] = "changed"
			Expect(cfg.Profiles[1].Command[0]).To(Equal("make"))
		})

		It("fails when nothing names a command", func() {
			_, err := resolver.Resolve(resolve.Overrides{}, &config.Config{})

			Expect(errors.Is(err, resolve.ErrNoCommand)).To(BeTrue())
		})
	})
})
