package config_test

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/notify-complete/internal/config"
	"github.com/smykla-skalski/notify-complete/internal/schema"
)

var _ = Describe("Writer", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "nested", "config.toml")
	})

	It("writes a sample that loads back", func() {
		Expect(config.NewWriter().WriteFile(path, config.SampleFile())).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix(schema.SchemaDirective()))
		Expect(string(data)).To(ContainSubstring("[[profile]]"))

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(config.ConfigFileMode)))

		cfg, err := config.NewKoanfLoaderWithPath(path).
			WithEnviron(func() []string { return nil }).
			Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.ProfileNames()).To(Equal([]string{"default", "alert"}))
	})

	It("refuses to overwrite without force", func() {
		Expect(config.NewWriter().WriteFile(path, config.SampleFile())).To(Succeed())

		err := config.NewWriter().WriteFile(path, config.SampleFile())
		Expect(errors.Is(err, config.ErrConfigExists)).To(BeTrue())
		Expect(errors.FlattenHints(err)).To(ContainSubstring("--force"))

		Expect(config.NewWriterWithForce(true).WriteFile(path, config.SampleFile())).To(Succeed())
	})

	It("rejects a nil config", func() {
		_, err := config.NewWriter().Encode(nil)

		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})
})
