package policy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. NOCTURNE_MIN_UI_CONTRAST
// or NOCTURNE_CONVERGE_MAX_ATTEMPTS.
const EnvPrefix = "NOCTURNE"

// flagKeys maps command-line flag names to policy keys.
var flagKeys = map[string]string{
	"min-text-contrast": "min_text_contrast",
	"min-ui-contrast":   "min_ui_contrast",
	"dark-background":   "dark_background",
	"fallback-colour":   "fallback_colour",
	"max-attempts":      "converge.max_attempts",
}

// RegisterFlags adds the commonly tuned policy overrides to a flag set.
// Defaults mirror Default() so help output stays accurate.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("min-text-contrast", d.MinTextContrast, "minimum contrast for text colours")
	fs.Float64("min-ui-contrast", d.MinUIContrast, "minimum contrast for UI colours against the dark background")
	fs.String("dark-background", d.DarkBackground, "dark mode background colour")
	fs.String("fallback-colour", d.FallbackColour, "colour used when contrast search does not converge")
	fs.Int("max-attempts", d.Converge.MaxAttempts, "maximum contrast search iterations")
}

// Load builds a policy from, in increasing precedence: Default(), the optional
// policy file (YAML, JSON or TOML), NOCTURNE_* environment variables and any
// changed flags in fs. The result is validated before it is returned.
func Load(path string, fs *pflag.FlagSet) (Policy, error) {
	v := viper.New()

	if err := setDefaults(v, Default()); err != nil {
		return Policy{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Policy{}, fmt.Errorf("failed to read policy file %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Policy{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var p Policy
	if err := v.Unmarshal(&p); err != nil {
		return Policy{}, fmt.Errorf("failed to decode policy: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// setDefaults registers every policy field as a viper default so that
// environment variables are picked up for nested keys too.
func setDefaults(v *viper.Viper, p Policy) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode default policy: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to decode default policy: %w", err)
	}
	for key, value := range flatten("", tree) {
		v.SetDefault(key, value)
	}
	return nil
}

func flatten(prefix string, tree map[string]any) map[string]any {
	out := make(map[string]any)
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = val
	}
	return out
}
