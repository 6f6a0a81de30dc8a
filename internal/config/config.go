// Package config loads and saves the seedforge configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned when the config file is not found by Load.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config represents the application configuration.
type Config struct {
	Fixtures  FixturesConfig  `mapstructure:"fixtures"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// FixturesConfig controls where generated fixture files are written.
type FixturesConfig struct {
	Dir string `mapstructure:"dir"`
}

// TemplatesConfig points at an optional directory of extra template files,
// loaded alongside the builtin templates.
type TemplatesConfig struct {
	Dir string `mapstructure:"dir"`
}

// GeneratorConfig holds generation defaults applied when flags are absent.
type GeneratorConfig struct {
	Count      int  `mapstructure:"count"`
	Variations bool `mapstructure:"variations"`
}

// LoggingConfig represents event log configuration.
type LoggingConfig struct {
	File    string        `mapstructure:"file"`
	MaxSize int64         `mapstructure:"max_size"`
	MaxAge  time.Duration `mapstructure:"max_age"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Fixtures: FixturesConfig{
			Dir: "fixtures",
		},
		Templates: TemplatesConfig{
			Dir: filepath.Join(getConfigDir(), "templates"),
		},
		Generator: GeneratorConfig{
			Count:      1,
			Variations: true,
		},
		Logging: LoggingConfig{
			File:    filepath.Join(getConfigDir(), "events.log"),
			MaxSize: 10 * 1024 * 1024,
			MaxAge:  30 * 24 * time.Hour,
		},
	}
}

// Load loads configuration from file.
func Load(configFile string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configDir := getConfigDir()
	resolvedConfigFile := configFile

	if configFile == "" {
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
		resolvedConfigFile = filepath.Join(configDir, "config.yaml")
	} else {
		v.SetConfigFile(configFile)
	}

	if _, err := os.Stat(resolvedConfigFile); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}

	// Environment variable overrides
	v.SetEnvPrefix("SEEDFORGE")
	v.AutomaticEnv()

	_ = v.BindEnv("fixtures.dir", "SEEDFORGE_FIXTURES_DIR")
	_ = v.BindEnv("templates.dir", "SEEDFORGE_TEMPLATES_DIR")
	_ = v.BindEnv("generator.count", "SEEDFORGE_COUNT")
	_ = v.BindEnv("logging.file", "SEEDFORGE_LOG_FILE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file content: %w", err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Logging.File == "" {
		config.Logging.File = filepath.Join(configDir, "events.log")
	}

	return config, nil
}

// Save saves configuration to file.
func (c *Config) Save(configFile string) error {
	if configFile == "" {
		configFile = filepath.Join(getConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)

	v.Set("fixtures.dir", c.Fixtures.Dir)
	v.Set("templates.dir", c.Templates.Dir)
	v.Set("generator.count", c.Generator.Count)
	v.Set("generator.variations", c.Generator.Variations)
	v.Set("logging.file", c.Logging.File)
	v.Set("logging.max_size", c.Logging.MaxSize)
	v.Set("logging.max_age", c.Logging.MaxAge)

	return v.WriteConfig()
}

// LoadOrCreate loads existing config or creates a default one on disk.
func LoadOrCreate(configFile string) (*Config, error) {
	cfg, err := Load(configFile)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, ErrConfigNotFound) {
		cfg = DefaultConfig()

		finalConfigFile := configFile
		if finalConfigFile == "" {
			finalConfigFile = filepath.Join(getConfigDir(), "config.yaml")
		}
		if errSave := cfg.Save(finalConfigFile); errSave != nil {
			return nil, fmt.Errorf("failed to save default config to %s: %w", finalConfigFile, errSave)
		}
		return cfg, nil
	}
	return nil, err
}

// getConfigDir returns the configuration directory.
func getConfigDir() string {
	if configDir := os.Getenv("SEEDFORGE_CONFIG_DIR"); configDir != "" {
		return configDir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".seedforge")
	}

	return filepath.Join(homeDir, ".seedforge")
}

// GetConfigDir returns the configuration directory (exported).
func GetConfigDir() string {
	return getConfigDir()
}
