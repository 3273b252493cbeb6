package config

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/smykla-skalski/notify-complete/pkg/config"
)

// CustomDecoderConfig returns a mapstructure decoder config for config.File.
// Weak typing lets `timeout = 5000` decode into the string field. Unknown
// keys are rejected so a misspelled field does not go unnoticed.
func CustomDecoderConfig() *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToBackendHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "koanf",
		Result:           nil, // Set by caller
	}
}

// stringToBackendHookFunc lowercases backend names so validation sees the
// canonical spelling.
//
//nolint:ireturn // required by mapstructure.DecodeHookFunc interface
func stringToBackendHookFunc() mapstructure.DecodeHookFunc {
	return func(
		_ reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if t != reflect.TypeFor[config.Backend]() {
			return data, nil
		}

		if s, ok := data.(string); ok {
			return config.Backend(strings.ToLower(s)), nil
		}

		return data, nil
	}
}
