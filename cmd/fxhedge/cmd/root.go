package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxhedge/config"
)

var rootCmd = &cobra.Command{
	Use:   "fxhedge",
	Short: "FX forward curve and hedging analyzer",
	Long: `fxhedge prices FX forwards from spot and interest rates (interest rate
parity) and analyzes forward hedges of a currency exposure.

It provides tools for:
  - Building forward curves from Spot to 1Y
  - Scenario P&L for a hedge across a ladder of future spot rates
  - Comparing hedge ratios at a single future spot
  - A hedge ratio recommendation from a market view
  - CSV export and an Org-mode report of each run`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

var (
	cfgFile    string
	logLevel   string
	sourceKind string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "rate source: simulated or oanda")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		level = os.Getenv("FXHEDGE_LOG_LEVEL")
	}
	l, err := config.ParseLevel(level)
	if err != nil {
		return err
	}
	setLogger(l)
	return nil
}

func setLogger(l slog.Level) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(h))
}

// loadConfig resolves the effective configuration: file, .env and
// environment, then global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("source") {
		cfg.Source.Kind = sourceKind
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, _ := config.ParseLevel(cfg.LogLevel)
	setLogger(l)
	slog.Debug("config loaded", "file", cfgFile, "source", cfg.Source.Kind)
	return cfg, nil
}
