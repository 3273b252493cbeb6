package config_test

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/notify-complete/internal/config"
	pkgConfig "github.com/smykla-skalski/notify-complete/pkg/config"
)

var _ = Describe("KoanfLoader", func() {
	var (
		dir     string
		path    string
		environ []string
	)

	writeConfig := func(content string) {
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	}

	load := func(flags map[string]any) (*pkgConfig.Config, error) {
		return config.NewKoanfLoaderWithPath(path).
			WithEnviron(func() []string { return environ }).
			Load(flags)
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "config.toml")
		environ = nil
	})

	It("loads profiles in file order", func() {
		writeConfig(`
[[profile]]
name = "alert"
title = "Done"
timeout = "never"
urgency = "CRITICAL"
command = "make build"

[[profile]]
name = "default"
message = "Finished"
timeout = 5000
icon = "terminal"
`)

		cfg, err := load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Path).To(Equal(path))
		Expect(cfg.ProfileNames()).To(Equal([]string{"alert", "default"}))

		alert, ok := cfg.Profile("alert")
		Expect(ok).To(BeTrue())
		Expect(*alert.Title).To(Equal("Done"))
		Expect(alert.Message).To(BeNil())
		Expect(*alert.Timeout).To(Equal(pkgConfig.TimeoutNeverExpire()))
		Expect(*alert.Urgency).To(Equal(pkgConfig.UrgencyCritical))
		Expect(alert.Command).To(Equal([]string{"make", "build"}))

		def := cfg.DefaultProfile()
		Expect(def).NotTo(BeNil())
		Expect(*def.Timeout).To(Equal(pkgConfig.TimeoutAfter(5000)))
		Expect(*def.Icon).To(Equal("terminal"))
	})

	It("applies notifier defaults", func() {
		writeConfig(``)

		cfg, err := load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Notifier.Backend).To(Equal(pkgConfig.BackendAuto))
		Expect(cfg.Notifier.AppName).To(Equal("notify-complete"))
		Expect(cfg.Profiles).To(BeEmpty())
	})

	It("lets the environment override the file and flags override both", func() {
		writeConfig(`
[notifier]
backend = "dbus"
app_name = "builder"
`)
		environ = []string{
			"NOTIFY_COMPLETE_NOTIFIER_BACKEND=exec",
			"NOTIFY_COMPLETE_CONFIG=/ignored",
			"NOTIFY_COMPLETE_LOG_FILE=/ignored.log",
		}

		cfg, err := load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Notifier.Backend).To(Equal(pkgConfig.BackendExec))
		Expect(cfg.Notifier.AppName).To(Equal("builder"))

		cfg, err = load(map[string]any{"notifier.backend": "none"})
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Notifier.Backend).To(Equal(pkgConfig.BackendNone))
	})

	It("rejects malformed TOML", func() {
		writeConfig("[[profile]\nname = ")

		_, err := load(nil)
		Expect(errors.Is(err, config.ErrConfigParse)).To(BeTrue())
		Expect(err.Error()).To(HavePrefix("failed to parse configuration: " + path + ": "))
	})

	It("rejects unknown keys in a profile", func() {
		writeConfig(`
[[profile]]
name = "typo"
titel = "Done"
`)

		_, err := load(nil)
		Expect(errors.Is(err, config.ErrConfigParse)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("titel"))
	})

	It("rejects unknown keys in the notifier table", func() {
		writeConfig(`
[notifier]
backnd = "none"
`)

		_, err := load(nil)
		Expect(errors.Is(err, config.ErrConfigParse)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("backnd"))
	})

	It("rejects world-writable files", func() {
		writeConfig(`[[profile]]
name = "x"
`)
		Expect(os.Chmod(path, 0o666)).To(Succeed())

		_, err := load(nil)
		Expect(errors.Is(err, config.ErrInvalidPermissions)).To(BeTrue())
		Expect(errors.FlattenHints(err)).To(ContainSubstring("chmod o-w"))
	})

	It("reports every invalid profile at once", func() {
		writeConfig(`
[[profile]]
name = "a"
timeout = "-5"

[[profile]]
name = "a"
urgency = "urgent"
`)

		_, err := load(nil)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
		Expect(errors.Is(err, pkgConfig.ErrInvalidTimeout)).To(BeTrue())
		Expect(errors.Is(err, pkgConfig.ErrInvalidUrgency)).To(BeTrue())
		Expect(errors.Is(err, config.ErrDuplicateProfile)).To(BeTrue())
	})

	It("fails when an explicit file is missing", func() {
		_, err := load(nil)

		Expect(errors.Is(err, config.ErrConfigNotFound)).To(BeTrue())
		Expect(errors.FlattenHints(err)).To(ContainSubstring("notify-complete init"))
	})

	It("treats a missing default file as an empty config", func() {
		GinkgoT().Setenv("NOTIFY_COMPLETE_CONFIG", path)

		loader := config.NewKoanfLoader().WithEnviron(func() []string { return nil })
		Expect(loader.Path()).To(Equal(path))

		cfg, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Path).To(BeEmpty())
		Expect(cfg.Profiles).To(BeEmpty())
	})
})
