package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulebook-dev/rulebook/internal/parser"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rulebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	def := parser.DefaultConvention()
	assert.Equal(t, def.Separator, cfg.Separator)
	assert.Equal(t, def.SeparatorMin, cfg.SeparatorMin)
	assert.Equal(t, def.Explanation, cfg.ExplanationMarker)
	assert.Equal(t, def.NonCompliant, cfg.NonCompliantMarker)
	assert.Equal(t, def.Compliant, cfg.CompliantMarker)
	assert.Equal(t, def.Fence, cfg.Fence)
	assert.False(t, cfg.Verbose)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "separator: \"=\"\nseparator_min: 5\nexplanation_marker: \"Why:\"\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "=", cfg.Separator)
	assert.Equal(t, 5, cfg.SeparatorMin)
	assert.Equal(t, "Why:", cfg.ExplanationMarker)
	// Untouched keys keep their defaults.
	assert.Equal(t, parser.DefaultConvention().Compliant, cfg.CompliantMarker)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "explanation_marker: \"Why:\"\n")
	t.Setenv("RULEBOOK_EXPLANATION_MARKER", "Because:")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Because:", cfg.ExplanationMarker)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RULEBOOK_EXPLANATION_MARKER", "Because:")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("explanation-marker", parser.DefaultConvention().Explanation, "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--explanation-marker", "Motivation:"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "Motivation:", cfg.ExplanationMarker)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	t.Setenv("RULEBOOK_EXPLANATION_MARKER", "Because:")

	// Flag registered but never set on the command line; the env value
	// must win even though the flag carries a default.
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("explanation-marker", parser.DefaultConvention().Explanation, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "Because:", cfg.ExplanationMarker)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"multi-char separator", "separator: \"--\"\n"},
		{"empty separator", "separator: \"\"\n"},
		{"separator_min too small", "separator_min: 2\n"},
		{"empty marker", "compliant_marker: \"\"\n"},
		{"colliding markers", "non_compliant_marker: \"Example:\"\ncompliant_marker: \"Example:\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml)
			_, err := Load(path, nil)
			assert.Error(t, err)
		})
	}
}

func TestConvention_RoundTrip(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultConvention(), cfg.Convention())
}
