package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/playground/internal/config"
	"github.com/thruflo/playground/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "playground",
	Short: "Block-based visual coding for emoji sprites in the terminal",
	Long: `Playground puts emoji sprites on a stage and lets you program them with
motion and looks blocks. Scripts run one sprite at a time; whenever two
sprites touch, they swap scripts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("playground version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing .playground/config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config under --config-dir and applies its log level,
// letting --log-level win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logging.SetLevel(lvl)

	return cfg, nil
}
