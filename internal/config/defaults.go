package config

import (
	"github.com/smykla-skalski/notify-complete/pkg/config"
)

// DefaultNotifierConfig returns the notifier settings used when the file and
// the environment set nothing.
func DefaultNotifierConfig() config.NotifierConfig {
	return config.NotifierConfig{
		Backend: config.BackendAuto,
		AppName: config.DefaultAppName,
	}
}

// defaultsToMap converts the defaults to a map for koanf loading.
func defaultsToMap() map[string]any {
	d := DefaultNotifierConfig()

	return map[string]any{
		"notifier": map[string]any{
			"backend":  string(d.Backend),
			"app_name": d.AppName,
		},
	}
}
