// Package config resolves the document convention and output options from
// layered sources: built-in defaults, an optional rulebook.yaml, RULEBOOK_*
// environment variables, and explicitly set command-line flags, in
// ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/rulebook-dev/rulebook/internal/parser"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "rulebook.yaml"

// ConfigFileNameAlt is the alternate config file name.
const ConfigFileNameAlt = "rulebook.yml"

const envPrefix = "RULEBOOK_"

// Config carries the document convention markers and runtime options.
type Config struct {
	Separator          string `koanf:"separator"`
	SeparatorMin       int    `koanf:"separator_min"`
	ExplanationMarker  string `koanf:"explanation_marker"`
	NonCompliantMarker string `koanf:"non_compliant_marker"`
	CompliantMarker    string `koanf:"compliant_marker"`
	Fence              string `koanf:"fence"`
	Verbose            bool   `koanf:"verbose"`
}

// Load resolves the configuration. cfgFile may name an explicit config
// file; when empty, rulebook.yaml/rulebook.yml in the working directory
// is used if present. flags may be nil; only flags the user actually set
// override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := parser.DefaultConvention()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"separator":            def.Separator,
		"separator_min":        def.SeparatorMin,
		"explanation_marker":   def.Explanation,
		"non_compliant_marker": def.NonCompliant,
		"compliant_marker":     def.Compliant,
		"fence":                def.Fence,
		"verbose":              false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// RULEBOOK_EXPLANATION_MARKER -> explanation_marker
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// Kebab-case flag names map to snake_case config keys.
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the config file to use: the explicit path if
// given, otherwise the first of rulebook.yaml, rulebook.yml that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func (c *Config) validate() error {
	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	if c.SeparatorMin < 3 {
		return fmt.Errorf("separator_min must be at least 3, got %d", c.SeparatorMin)
	}
	markers := map[string]string{
		"explanation_marker":   c.ExplanationMarker,
		"non_compliant_marker": c.NonCompliantMarker,
		"compliant_marker":     c.CompliantMarker,
		"fence":                c.Fence,
	}
	seen := make(map[string]string, len(markers))
	for key, val := range markers {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		if prev, ok := seen[val]; ok {
			return fmt.Errorf("%s and %s must differ, both are %q", prev, key, val)
		}
		seen[val] = key
	}
	return nil
}

// Convention returns the parser convention described by this config.
func (c *Config) Convention() parser.Convention {
	return parser.Convention{
		Separator:    c.Separator,
		SeparatorMin: c.SeparatorMin,
		Explanation:  c.ExplanationMarker,
		NonCompliant: c.NonCompliantMarker,
		Compliant:    c.CompliantMarker,
		Fence:        c.Fence,
	}
}
