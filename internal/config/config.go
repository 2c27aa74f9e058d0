// Package config provides configuration types and defaults for dealboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pipeline"
)

// DefaultDBPath is used when neither --db nor db_path is set.
const DefaultDBPath = ".dealboard/deals.db"

// Config holds all configuration options for dealboard.
type Config struct {
	DBPath          string        `mapstructure:"db_path"`
	AutoRefresh     bool          `mapstructure:"auto_refresh"`
	RefreshDebounce time.Duration `mapstructure:"refresh_debounce"`
	Cache           CacheConfig   `mapstructure:"cache"`
	UI              UIConfig      `mapstructure:"ui"`
	Theme           ThemeConfig   `mapstructure:"theme"`
	Tracing         TracingConfig `mapstructure:"tracing"`

	// Flags overrides feature flag defaults, e.g. {"deal-move": false}.
	Flags map[string]bool `mapstructure:"flags"`
}

// CacheConfig controls the count and deal list cache.
type CacheConfig struct {
	TTL      time.Duration `mapstructure:"ttl"`
	Disabled bool          `mapstructure:"disabled"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "", "dark", "light" or "notty"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`

	// StageColors overrides the button color of a stage, keyed by stage name.
	StageColors map[string]string `mapstructure:"stage_colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// TracingConfig holds tracing configuration for store queries.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/dealboard/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/dealboard/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dealboard", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:          DefaultDBPath,
		AutoRefresh:     true,
		RefreshDebounce: 300 * time.Millisecond,
		Cache: CacheConfig{
			TTL: 30 * time.Second,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	var errs []error
	if c.RefreshDebounce < 0 {
		errs = append(errs, fmt.Errorf("refresh_debounce must not be negative, got %s", c.RefreshDebounce))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}
	if err := ValidateUI(c.UI); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTheme(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateUI checks UI options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light", "notty":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\", \"light\" or \"notty\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTheme checks stage color overrides. Color tokens and presets are
// checked when the theme is applied.
func ValidateTheme(theme ThemeConfig) error {
	for name, hex := range theme.StageColors {
		if _, err := pipeline.ParseStage(name); err != nil {
			return fmt.Errorf("theme.stage_colors.%s: %w", name, err)
		}
		if !isHexColor(hex) {
			return fmt.Errorf("theme.stage_colors.%s must be a hex color like \"#FECA57\", got %q", name, hex)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

func isHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Dealboard Configuration

# Path to the deals database (default: .dealboard/deals.db)
# db_path: /path/to/deals.db

# Reload counts and deals when the database changes
auto_refresh: true
refresh_debounce: 300ms

# Count and deal list cache
cache:
  ttl: 30s
  disabled: false

# UI settings
ui:
  show_status_bar: true   # Show status bar at bottom
  markdown_style: dark    # Deal notes style: "dark", "light" or "notty"

# Theme configuration
theme:
  # Use a preset:
  # preset: dracula
  #
  # Available presets:
  #   default        - Default dealboard theme
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"
  #
  # Override stage button colors:
  # stage_colors:
  #   prospecting: "#54A0FF"
  #   technical: "#7D56F4"
  #   quoting: "#FECA57"
  #   negotiation: "#73F59F"

# Feature flags
# flags:
#   deal-move: true       # Move the selected deal with > and <
#   mouse: true           # Click stage buttons and deal rows

# Tracing of database queries
tracing:
  enabled: false
  exporter: file          # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/dealboard/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file with default settings.
// Creates parent directories if they don't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
