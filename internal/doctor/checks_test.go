package doctor_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	internalconfig "github.com/smykla-skalski/notify-complete/internal/config"
	"github.com/smykla-skalski/notify-complete/internal/doctor"
	execpkg "github.com/smykla-skalski/notify-complete/internal/exec"
	"github.com/smykla-skalski/notify-complete/internal/notify"
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

type stubLoader struct {
	path string
	cfg  *config.Config
	err  error
}

func (s stubLoader) Path() string { return s.path }

func (s stubLoader) Load(map[string]any) (*config.Config, error) { return s.cfg, s.err }

type infoBus struct{}

func (infoBus) CallWithContext(context.Context, string, dbus.Flags, ...any) *dbus.Call {
	return &dbus.Call{Body: []any{"mako", "emersion", "1.9.0", "1.2"}}
}

func dialInfo(context.Context) (notify.BusObject, func() error, error) {
	return infoBus{}, func() error { return nil }, nil
}

func dialDown(context.Context) (notify.BusObject, func() error, error) {
	return nil, nil, errors.New("no session bus")
}

var _ = Describe("ConfigFileChecker", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	load := func(path string) doctor.CheckResult {
		loader := internalconfig.NewKoanfLoaderWithPath(path).WithEnviron(func() []string { return nil })

		return doctor.NewConfigFileChecker(loader).Check(context.Background())
	}

	It("passes for a valid file and counts profiles", func() {
		path := filepath.Join(dir, "config.toml")
		Expect(os.WriteFile(path, []byte("[[profile]]\nname = \"a\"\n\n[[profile]]\nname = \"b\"\n"), 0o600)).To(Succeed())

		res := load(path)

		Expect(res.IsPassed()).To(BeTrue())
		Expect(res.Message).To(Equal("2 profile(s)"))
		Expect(res.Details).To(ContainElement(path))
	})

	It("offers a fix for a world-writable file", func() {
		path := filepath.Join(dir, "config.toml")
		Expect(os.WriteFile(path, []byte(""), 0o600)).To(Succeed())
		Expect(os.Chmod(path, 0o666)).To(Succeed())

		res := load(path)

		Expect(res.IsError()).To(BeTrue())
		Expect(res.FixID).To(Equal(doctor.FixConfigPermissions))
	})

	It("reports validation errors with their first line", func() {
		path := filepath.Join(dir, "config.toml")
		Expect(os.WriteFile(path, []byte("[[profile]]\nname = \"x\"\nurgency = \"loud\"\n"), 0o600)).To(Succeed())

		res := load(path)

		Expect(res.IsError()).To(BeTrue())
		Expect(res.Message).NotTo(ContainSubstring("\n"))
		Expect(res.FixID).To(BeEmpty())
	})

	It("passes when no file exists at the default location", func() {
		res := doctor.NewConfigFileChecker(stubLoader{path: "/nowhere/config.toml", cfg: &config.Config{}}).
			Check(context.Background())

		Expect(res.IsPassed()).To(BeTrue())
		Expect(res.Message).To(ContainSubstring("built-in fallbacks"))
	})
})

var _ = Describe("ProfileCommandChecker", func() {
	var (
		ctrl  *gomock.Controller
		tools *execpkg.MockToolChecker
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		tools = execpkg.NewMockToolChecker(ctrl)
	})

	It("skips without a config", func() {
		res := doctor.NewProfileCommandChecker(nil, tools).Check(context.Background())
		Expect(res.IsSkipped()).To(BeTrue())
	})

	It("skips when no profile has a command", func() {
		cfg := &config.Config{Profiles: []config.Profile{{Name: "default"}}}

		res := doctor.NewProfileCommandChecker(cfg, tools).Check(context.Background())
		Expect(res.IsSkipped()).To(BeTrue())
	})

	It("warns about commands missing from PATH", func() {
		cfg := &config.Config{Profiles: []config.Profile{
			{Name: "build", Command: []string{"make", "all"}},
			{Name: "deploy", Command: []string{"kubectl", "apply"}},
		}}
		tools.EXPECT().IsAvailable("make").Return(true)
		tools.EXPECT().IsAvailable("kubectl").Return(false)

		res := doctor.NewProfileCommandChecker(cfg, tools).Check(context.Background())

		Expect(res.IsWarning()).To(BeTrue())
		Expect(res.Message).To(Equal("1 of 2 command(s) not found"))
		Expect(res.Details).To(ConsistOf(`profile "deploy": kubectl not found`))
	})
})

var _ = DescribeTable("BackendChecker",
	func(backend config.Backend, goos string, warn bool, message string) {
		res := doctor.NewBackendChecker(backend, goos).Check(context.Background())

		Expect(res.IsWarning()).To(Equal(warn))
		Expect(res.Message).To(Equal(message))
	},
	Entry("auto on linux", config.BackendAuto, "linux", false, "auto: dbus, exec, beeep"),
	Entry("auto on darwin", config.BackendAuto, "darwin", false, "auto: exec, beeep"),
	Entry("explicit", config.BackendBeeep, "linux", false, "beeep"),
	Entry("disabled", config.BackendNone, "linux", true, "notifications are disabled"),
)

var _ = Describe("SessionBusChecker", func() {
	It("names the notification server", func() {
		res := doctor.NewSessionBusChecker(config.BackendDBus, "linux", dialInfo).Check(context.Background())

		Expect(res.IsPassed()).To(BeTrue())
		Expect(res.Message).To(Equal("mako 1.9.0"))
	})

	It("is an error when dbus is the chosen backend", func() {
		res := doctor.NewSessionBusChecker(config.BackendDBus, "linux", dialDown).Check(context.Background())

		Expect(res.IsError()).To(BeTrue())
		Expect(res.Details[0]).To(ContainSubstring("no session bus"))
	})

	It("is a warning under auto", func() {
		res := doctor.NewSessionBusChecker(config.BackendAuto, "freebsd", dialDown).Check(context.Background())

		Expect(res.IsWarning()).To(BeTrue())
	})

	It("is skipped for other backends and platforms", func() {
		Expect(doctor.NewSessionBusChecker(config.BackendExec, "linux", dialDown).
			Check(context.Background()).IsSkipped()).To(BeTrue())
		Expect(doctor.NewSessionBusChecker(config.BackendAuto, "darwin", dialDown).
			Check(context.Background()).IsSkipped()).To(BeTrue())
	})
})

var _ = Describe("HelperToolChecker", func() {
	var (
		ctrl  *gomock.Controller
		tools *execpkg.MockToolChecker
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		tools = execpkg.NewMockToolChecker(ctrl)
	})

	It("finds the platform helper", func() {
		tools.EXPECT().RequireTool("osascript").Return(nil)

		res := doctor.NewHelperToolChecker(config.BackendExec, "darwin", tools).Check(context.Background())

		Expect(res.IsPassed()).To(BeTrue())
		Expect(res.Message).To(Equal("osascript"))
	})

	It("fails with the install hint when the helper is missing", func() {
		tools.EXPECT().RequireTool("notify-send").Return(
			errors.WithHint(errors.Wrap(execpkg.ErrToolNotFound, "notify-send"), "install notify-send"))

		res := doctor.NewHelperToolChecker(config.BackendExec, "linux", tools).Check(context.Background())

		Expect(res.IsError()).To(BeTrue())
		Expect(res.Details).To(ContainElement("install notify-send"))
	})

	It("is skipped when exec is never used", func() {
		res := doctor.NewHelperToolChecker(config.BackendDBus, "linux", tools).Check(context.Background())

		Expect(res.IsSkipped()).To(BeTrue())
	})
})

var _ = Describe("LogDirChecker and LogDirFixer", func() {
	var dir string

	BeforeEach(func() {
		dir = filepath.Join(GinkgoT().TempDir(), "state")
	})

	It("skips a directory that does not exist yet", func() {
		Expect(doctor.NewLogDirChecker(dir).Check(context.Background()).IsSkipped()).To(BeTrue())
	})

	It("flags an open directory and fixes it", func() {
		Expect(os.Mkdir(dir, 0o700)).To(Succeed())
		Expect(os.Chmod(dir, 0o755)).To(Succeed())

		res := doctor.NewLogDirChecker(dir).Check(context.Background())
		Expect(res.IsWarning()).To(BeTrue())
		Expect(res.FixID).To(Equal(doctor.FixLogDir))

		Expect(doctor.NewLogDirFixer(dir).Fix(context.Background())).To(Succeed())
		Expect(doctor.NewLogDirChecker(dir).Check(context.Background()).IsPassed()).To(BeTrue())
	})

	It("rejects a file in place of the directory", func() {
		Expect(os.WriteFile(dir, nil, 0o600)).To(Succeed())

		Expect(doctor.NewLogDirChecker(dir).Check(context.Background()).IsError()).To(BeTrue())
	})
})

var _ = Describe("ConfigPermissionsFixer", func() {
	It("removes group and other write", func() {
		path := filepath.Join(GinkgoT().TempDir(), "config.toml")
		Expect(os.WriteFile(path, nil, 0o600)).To(Succeed())
		Expect(os.Chmod(path, 0o666)).To(Succeed())

		fixer := doctor.NewConfigPermissionsFixer(path)
		Expect(fixer.ID()).To(Equal(doctor.FixConfigPermissions))
		Expect(fixer.Fix(context.Background())).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o644)))
	})

	It("fails for a missing file", func() {
		err := doctor.NewConfigPermissionsFixer("/nonexistent/config.toml").Fix(context.Background())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})
