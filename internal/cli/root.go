package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/spf13/cobra"
)

// RootConfig holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type RootConfig struct {
	ConfigPath string
	Dir        string
	Backend    string
	LogLevel   string
	NoColor    bool

	Config *config.Config

	// opts are passed to app.Open. Tests inject a clock here.
	opts []app.Option
}

func NewRootCmd(opts ...app.Option) *cobra.Command {
	rc := &RootConfig{opts: opts}

	cmd := &cobra.Command{
		Use:   "tradelog",
		Short: "tradelog — a journal for short-duration trades",
		Long: `tradelog records trades and timed sessions to flat files and reports
daily and cumulative performance, goal progress and an hourly chart.

Examples:
  tradelog trade add --outcome win --amount 10 --payout 82
  tradelog session run
  tradelog report --show`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.Dir, "dir", "", "Journal directory (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.Backend, "backend", "", "Journal backend: csv|sqlite (overrides config)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.load(cmd)
	}

	cmd.AddCommand(
		newTradeCmd(rc),
		newStatsCmd(rc),
		newChartCmd(rc),
		newGoalsCmd(rc),
		newSessionCmd(rc),
		newReportCmd(rc),
		newImportCmd(rc),
		newOrgCmd(rc),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

// load resolves configuration: defaults, then the config file, then .env
// and TRADELOG_* variables, then explicit flags.
func (rc *RootConfig) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("dir") {
		cfg.Journal.Dir = rc.Dir
	}
	if cmd.Flags().Changed("backend") {
		cfg.Journal.Type = rc.Backend
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	rc.Config = cfg
	return nil
}

// open opens the journal described by the resolved configuration.
func (rc *RootConfig) open() (*app.App, error) {
	return app.Open(rc.Config, rc.opts...)
}

// withApp runs fn against an open App and closes it afterwards.
func (rc *RootConfig) withApp(fn func(a *app.App) error) error {
	a, err := rc.open()
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		_ = a.Close()
		return err
	}
	return a.Close()
}

func (rc *RootConfig) theme(w io.Writer) theme {
	return newTheme(w, rc.NoColor)
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
