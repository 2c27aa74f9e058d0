package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/zjrosen/dealboard/internal/app"
	"github.com/zjrosen/dealboard/internal/config"
	"github.com/zjrosen/dealboard/internal/flags"
	"github.com/zjrosen/dealboard/internal/log"
	"github.com/zjrosen/dealboard/internal/pipeline"
	"github.com/zjrosen/dealboard/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".dealboard/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool
	stageFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dealboard",
	Short: "A terminal dashboard for a sales pipeline",
	Long: `A terminal dashboard that shows deal counts per pipeline stage and
lets you filter the deal list by clicking a stage or pressing its number.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: validateConfig,
	RunE:              runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .dealboard/config.yaml or ~/.config/dealboard/config.yaml)")
	rootCmd.PersistentFlags().String("db", "",
		"deal database file, data directory or project directory (default: "+config.DefaultDBPath+")")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log and enable the log panel (ctrl+x)")
	rootCmd.Flags().StringVarP(&stageFlag, "stage", "s", "",
		"start with this stage selected")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic refresh when the database changes")

	// Bind flags to viper
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("db_path", defaults.DBPath)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("refresh_debounce", defaults.RefreshDebounce)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.disabled", defaults.Cache.Disabled)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetEnvPrefix("DEALBOARD")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .dealboard/config.yaml (current directory)
		// 2. ~/.config/dealboard/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "dealboard"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .dealboard/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func validateConfig(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", configFilePath(), err)
	}
	return nil
}

// configFilePath is where config edits are written.
func configFilePath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return localConfigPath
}

// initLogging starts file logging when --debug or DEALBOARD_DEBUG is set.
// The returned func is always safe to call.
func initLogging() (func(), error) {
	if !debugFlag && !log.DebugEnabled() {
		return func() {}, nil
	}
	logPath := os.Getenv("DEALBOARD_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "dealboard starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func applyTheme(theme config.ThemeConfig) error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset:      theme.Preset,
		Colors:      theme.FlattenedColors(),
		StageColors: theme.StageColors,
	})
}

func runApp(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("dealboard needs a terminal, use 'dealboard counts' or 'dealboard list' for scripted output")
	}

	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := applyTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	initial, err := pipeline.ParseSelection(stageFlag)
	if err != nil {
		return fmt.Errorf("--stage: %w", err)
	}

	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	env, err := openEnv(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := env.Close(ctx); closeErr != nil {
			log.ErrorErr(log.CatDB, "closing environment", closeErr)
		}
	}()

	model := app.New(app.Options{
		Service:    env.svc,
		Config:     cfg,
		DBPath:     env.db.Path(),
		ConfigPath: configFilePath(),
		Debug:      debugFlag || log.DebugEnabled(),
		Flags:      flags.New(cfg.Flags),
		Initial:    initial,
	})
	p, releaseZones := newProgram(model)
	defer releaseZones()

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newProgram installs the global bubblezone manager every view marks its
// clickable regions into, then wraps model in a full-screen program with
// mouse support. The returned func stops the manager.
func newProgram(model tea.Model, opts ...tea.ProgramOption) (*tea.Program, func()) {
	zone.NewGlobal()
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return tea.NewProgram(model, opts...), zone.Close
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
