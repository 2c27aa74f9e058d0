package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/dealboard/internal/pipeline"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultDBPath, cfg.DBPath)
	require.True(t, cfg.AutoRefresh)
	require.Equal(t, 300*time.Millisecond, cfg.RefreshDebounce)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.RefreshDebounce = -time.Second
	cfg.Cache.TTL = -time.Second
	cfg.UI.MarkdownStyle = "solarized"

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "refresh_debounce must not be negative")
	require.Contains(t, err.Error(), "cache.ttl must not be negative")
	require.Contains(t, err.Error(), "ui.markdown_style")
}

func TestValidateTheme_StageColors(t *testing.T) {
	require.NoError(t, ValidateTheme(ThemeConfig{StageColors: map[string]string{
		"prospecting": "#54A0FF",
		"Quoting":     "#FC0",
	}}))

	err := ValidateTheme(ThemeConfig{StageColors: map[string]string{"won": "#FFFFFF"}})
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)

	err = ValidateTheme(ThemeConfig{StageColors: map[string]string{"technical": "purple"}})
	require.ErrorContains(t, err, "theme.stage_colors.technical must be a hex color")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{"defaults", Defaults().Tracing, ""},
		{"sample rate too high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"unknown exporter", TracingConfig{Exporter: "jaeger", SampleRate: 1}, "tracing.exporter"},
		{"file needs path", TracingConfig{Enabled: true, Exporter: "file", SampleRate: 1}, "file_path is required"},
		{"otlp needs endpoint", TracingConfig{Enabled: true, Exporter: "otlp", SampleRate: 1}, "otlp_endpoint is required"},
		{"disabled file without path", TracingConfig{Exporter: "file", SampleRate: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFlattenedColors(t *testing.T) {
	theme := ThemeConfig{Colors: map[string]any{
		"text": map[string]any{
			"primary": "#FFFFFF",
		},
		"status.error": "#FF0000",
		"button": map[any]any{
			"inactive": map[string]any{"bg": "#000000"},
		},
	}}
	require.Equal(t, map[string]string{
		"text.primary":       "#FFFFFF",
		"status.error":       "#FF0000",
		"button.inactive.bg": "#000000",
	}, theme.FlattenedColors())
}

func TestDefaultConfigTemplate_ParsesAndValidates(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &raw))
	require.Equal(t, true, raw["auto_refresh"])
	require.Contains(t, raw, "cache")
	require.Contains(t, raw, "tracing")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveStageColor_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveStageColor(path, pipeline.Quoting, "#FF9F43"))

	var cfg struct {
		Theme struct {
			StageColors map[string]string `yaml:"stage_colors"`
		} `yaml:"theme"`
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	require.Equal(t, map[string]string{"quoting": "#FF9F43"}, cfg.Theme.StageColors)
}

func TestSaveStageColor_PreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveStageColor(path, pipeline.Technical, "#123456"))
	require.NoError(t, SaveStageColor(path, pipeline.Technical, "#654321"))
	require.NoError(t, SaveStageColor(path, pipeline.Negotiation, "#ABCDEF"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# Reload counts and deals when the database changes")
	require.Contains(t, content, "auto_refresh: true")

	var raw struct {
		Theme struct {
			StageColors map[string]string `yaml:"stage_colors"`
		} `yaml:"theme"`
	}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	require.Equal(t, map[string]string{"technical": "#654321", "negotiation": "#ABCDEF"}, raw.Theme.StageColors)
}

func TestSaveStageColor_RejectsBadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.ErrorIs(t, SaveStageColor(path, pipeline.Stage(9), "#FFF"), pipeline.ErrUnknownStage)
	require.ErrorContains(t, SaveStageColor(path, pipeline.Quoting, "orange"), "invalid hex color")
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "nothing is written on invalid input")
}

func TestClearStageColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveStageColor(path, pipeline.Quoting, "#FF9F43"))
	require.NoError(t, SaveStageColor(path, pipeline.Technical, "#7D56F4"))
	require.NoError(t, ClearStageColor(path, pipeline.Quoting))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "quoting")
	require.Contains(t, string(data), "technical")

	// Clearing with no config file is a no-op.
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	require.NoError(t, ClearStageColor(missing, pipeline.Quoting))
	_, err = os.Stat(missing)
	require.True(t, os.IsNotExist(err))
}
