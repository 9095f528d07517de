package cmd

import (
	"fmt"
	"os"

	"github.com/ethpandaops/devmetrics/internal/actions"
	"github.com/ethpandaops/devmetrics/internal/config"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Logger is the shared logger instance for all commands
	Logger *logrus.Logger

	configPath  string
	verbose     bool
	diagnostics bool

	rootCmd = &cobra.Command{
		Use:   "devmetrics",
		Short: "Devmetrics - development metrics, trends and suggestions",
		Long: `Devmetrics records development metrics such as test duration, coverage and
lint errors, analyzes their trends and suggests optimizations.

Run without arguments to launch interactive mode, or use subcommands for direct operations.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Load .env file if it exists
	_ = godotenv.Load()

	InitLogger()

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default "+config.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&diagnostics, "diagnostics", false, "Print operation timings and cache statistics")
}

// InitLogger initializes the shared logger from LOG_LEVEL
func InitLogger() {
	Logger = logrus.New()

	// Set log level from environment variable
	logLevel := os.Getenv(config.EnvLogLevel)
	if logLevel == "" {
		logLevel = config.DefaultLogLevel
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		// Can't use Logger here since it might not be set up yet
		fmt.Printf("Invalid LOG_LEVEL '%s', defaulting to 'info'\n", logLevel)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}

// newToolkit loads configuration and builds the toolkit used by a command.
func newToolkit(cmd *cobra.Command) (*actions.Toolkit, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(verbose, cfg.Level())

	return actions.NewToolkit(log, cfg, cmd.OutOrStdout()), nil
}

// finish prints diagnostics when requested.
func finish(tk *actions.Toolkit) {
	if diagnostics {
		tk.PrintDiagnostics()
	}
}
