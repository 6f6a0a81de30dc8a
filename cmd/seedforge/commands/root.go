package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seedforge/seedforge/internal/audit"
	"github.com/seedforge/seedforge/internal/config"
	"github.com/seedforge/seedforge/internal/schema"
)

var (
	version    = "dev"
	configFile string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "seedforge",
	Short: "Seeded synthetic fixture generator",
	Long: `seedforge generates deterministic synthetic test data from declarative
JSON templates.

Records are produced from a seeded pseudo-random sequence, so the same
template, seed and options always yield byte-for-byte identical fixtures.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetOut(os.Stderr)
	rootCmd.SetErr(os.Stderr)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ~/.seedforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// verboseLog prints a message only if verbose mode is enabled
func verboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// loadEnvironment wires up the pieces every command needs: configuration,
// the template registry (builtins plus the configured templates dir), and
// the event logger.
func loadEnvironment() (*config.Config, *schema.Registry, *audit.Logger, error) {
	cfg, err := config.LoadOrCreate(configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := schema.NewRegistry()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := registry.LoadDir(cfg.Templates.Dir); err != nil {
		return nil, nil, nil, err
	}
	for _, warning := range registry.Warnings() {
		verboseLog("%s", warning)
	}

	logger, err := audit.NewLogger(audit.Config{
		FilePath: cfg.Logging.File,
		MaxSize:  cfg.Logging.MaxSize,
		MaxAge:   cfg.Logging.MaxAge,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open event log: %w", err)
	}

	return cfg, registry, logger, nil
}
