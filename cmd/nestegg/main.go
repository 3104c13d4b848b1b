package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once settings are loaded.
type app struct {
	settingsPath string
	debug        bool

	settings config.Settings
	logger   *zap.SugaredLogger
}

// setup loads settings and builds the logger. jsonLogs selects the production encoder.
func (a *app) setup(jsonLogs bool) error {
	settings, err := config.LoadSettings(config.NewViper(), a.settingsPath)
	if err != nil {
		return err
	}
	a.settings = settings

	level := settings.LogLevel
	if a.debug {
		level = logging.DEBUG
	}
	logger, err := logging.NewLogger(level, jsonLogs)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) engine() *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(a.logger)
	return engine
}

func (a *app) loadConfig(path string) (*domain.Configuration, error) {
	a.logger.Debugf("loading %s", path)
	return config.NewInputParser().LoadFromFile(path)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "nestegg",
		Short: "Retirement net worth projection calculator",
		Long: `Project savings growth to retirement and net worth through age 100, and solve
for the input values that keep a plan solvent through age 99.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Name() == "serve")
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().StringVar(&a.settingsPath, "settings", "", "Path to a settings file (default: nestegg.yaml in . or $HOME/.config/nestegg)")

	root.AddCommand(
		calculateCmd(a),
		projectCmd(a),
		solveCmd(a),
		compareCmd(a),
		sensitivityCmd(a),
		validateCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nestegg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
