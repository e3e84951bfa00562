// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/kfinance/internal/dateutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "KFINANCE"

// DirName is the per-user configuration and data directory under $HOME.
const DirName = ".kfinance"

// Config represents the complete application configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Data      DataConfig      `mapstructure:"data" yaml:"data"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
}

// LogConfig controls the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DataConfig selects the record store backend and where it lives.
type DataConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	Directory  string `mapstructure:"directory" yaml:"directory"`
	FilePath   string `mapstructure:"file_path" yaml:"file_path"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
}

// DisplayConfig controls month labels.
type DisplayConfig struct {
	Locale string `mapstructure:"locale" yaml:"locale"`
}

// DashboardConfig tunes the chart windows and caps.
type DashboardConfig struct {
	MonthsBack        int `mapstructure:"months_back" yaml:"months_back"`
	TopProducts       int `mapstructure:"top_products" yaml:"top_products"`
	TopEstablishments int `mapstructure:"top_establishments" yaml:"top_establishments"`
}

// ExportConfig selects the export target.
type ExportConfig struct {
	Target    string       `mapstructure:"target" yaml:"target"`
	Delimiter string       `mapstructure:"delimiter" yaml:"delimiter"`
	Directory string       `mapstructure:"directory" yaml:"directory"`
	Sheets    SheetsConfig `mapstructure:"sheets" yaml:"sheets"`
}

// SheetsConfig holds the Google Sheets credentials and target spreadsheet.
type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
}

// Export targets.
const (
	TargetCSV    = "csv"
	TargetSheets = "sheets"
)

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads configuration from configFile when given, otherwise from
// config.yaml in $HOME/.kfinance, ./.kfinance or the working directory.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join("$HOME", DirName))
		v.AddConfigPath(DirName)
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Google credentials follow the SDK's own variable
	if err := v.BindEnv("export.sheets.credentials_file", EnvPrefix+"_EXPORT_SHEETS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GOOGLE_APPLICATION_CREDENTIALS environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the built-in defaults without reading files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.backend", "file")
	v.SetDefault("data.directory", "")
	v.SetDefault("data.file_path", "")
	v.SetDefault("data.sqlite_path", "")

	v.SetDefault("display.locale", dateutils.DefaultLocale)

	v.SetDefault("dashboard.months_back", 6)
	v.SetDefault("dashboard.top_products", 8)
	v.SetDefault("dashboard.top_establishments", 10)

	v.SetDefault("export.target", TargetCSV)
	v.SetDefault("export.delimiter", ",")
	v.SetDefault("export.directory", ".")
	v.SetDefault("export.sheets.credentials_file", "")
	v.SetDefault("export.sheets.spreadsheet_id", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Data.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("invalid data backend: %s (must be 'memory', 'file' or 'sqlite')", config.Data.Backend)
	}

	if !contains(dateutils.SupportedLocales(), config.Display.Locale) {
		return fmt.Errorf("unsupported display locale: %s", config.Display.Locale)
	}

	if config.Dashboard.MonthsBack < 1 || config.Dashboard.MonthsBack > 36 {
		return fmt.Errorf("dashboard.months_back must be between 1 and 36, got: %d", config.Dashboard.MonthsBack)
	}
	if config.Dashboard.TopProducts < 1 {
		return fmt.Errorf("dashboard.top_products must be positive, got: %d", config.Dashboard.TopProducts)
	}
	if config.Dashboard.TopEstablishments < 1 {
		return fmt.Errorf("dashboard.top_establishments must be positive, got: %d", config.Dashboard.TopEstablishments)
	}

	if len([]rune(config.Export.Delimiter)) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	switch config.Export.Target {
	case TargetCSV:
	case TargetSheets:
		if config.Export.Sheets.CredentialsFile == "" {
			return fmt.Errorf("export.sheets.credentials_file required when export target is sheets")
		}
	default:
		return fmt.Errorf("invalid export target: %s (must be 'csv' or 'sheets')", config.Export.Target)
	}

	return nil
}

// DataDirectory returns the configured data directory, defaulting to $HOME/.kfinance.
func (c *Config) DataDirectory() string {
	if c.Data.Directory != "" {
		return c.Data.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DelimiterRune returns the export delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.Export.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
