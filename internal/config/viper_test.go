package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "file", config.Data.Backend)
	assert.Equal(t, "", config.Data.Directory)
	assert.Equal(t, "pt-BR", config.Display.Locale)
	assert.Equal(t, 6, config.Dashboard.MonthsBack)
	assert.Equal(t, 8, config.Dashboard.TopProducts)
	assert.Equal(t, 10, config.Dashboard.TopEstablishments)
	assert.Equal(t, TargetCSV, config.Export.Target)
	assert.Equal(t, ",", config.Export.Delimiter)
	assert.Equal(t, ".", config.Export.Directory)
	assert.Equal(t, "", config.Export.Sheets.SpreadsheetID)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	testEnvVars := map[string]string{
		"KFINANCE_LOG_LEVEL":                    "debug",
		"KFINANCE_LOG_FORMAT":                   "json",
		"KFINANCE_DATA_BACKEND":                 "sqlite",
		"KFINANCE_DISPLAY_LOCALE":               "en",
		"KFINANCE_DASHBOARD_MONTHS_BACK":        "12",
		"KFINANCE_EXPORT_DELIMITER":             ";",
		"KFINANCE_EXPORT_TARGET":                "sheets",
		"KFINANCE_EXPORT_SHEETS_SPREADSHEET_ID": "abc123",
		"GOOGLE_APPLICATION_CREDENTIALS":        "/tmp/creds.json",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "sqlite", config.Data.Backend)
	assert.Equal(t, "en", config.Display.Locale)
	assert.Equal(t, 12, config.Dashboard.MonthsBack)
	assert.Equal(t, ";", config.Export.Delimiter)
	assert.Equal(t, ';', config.DelimiterRune())
	assert.Equal(t, TargetSheets, config.Export.Target)
	assert.Equal(t, "abc123", config.Export.Sheets.SpreadsheetID)
	assert.Equal(t, "/tmp/creds.json", config.Export.Sheets.CredentialsFile)
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
log:
  level: "warn"
  format: "json"
data:
  backend: "memory"
  directory: "/srv/kfinance"
dashboard:
  top_products: 5
export:
  delimiter: "|"
  directory: "exports"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0600))

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "memory", config.Data.Backend)
	assert.Equal(t, "/srv/kfinance", config.DataDirectory())
	assert.Equal(t, 5, config.Dashboard.TopProducts)
	assert.Equal(t, 10, config.Dashboard.TopEstablishments)
	assert.Equal(t, "|", config.Export.Delimiter)
	assert.Equal(t, "exports", config.Export.Directory)
}

func TestLoadConfig_SearchPath(t *testing.T) {
	clearTestEnvVars(t)

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, DirName), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(home, DirName, "config.yaml"),
		[]byte("display:\n  locale: en\n"), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "en", config.Display.Locale)
	assert.Equal(t, filepath.Join(home, DirName), config.DataDirectory())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearTestEnvVars(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
log:
  level: "warn"
export:
  delimiter: "|"
dashboard:
  months_back: 3
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0600))

	t.Setenv("KFINANCE_LOG_LEVEL", "error")
	t.Setenv("KFINANCE_DASHBOARD_MONTHS_BACK", "9")

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.Export.Delimiter)
	assert.Equal(t, 9, config.Dashboard.MonthsBack)
	assert.Equal(t, "pt-BR", config.Display.Locale)
}

func TestDefault(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("KFINANCE_LOG_LEVEL", "debug")

	config := Default()
	assert.Equal(t, "info", config.Log.Level)
	assert.NoError(t, validateConfig(config))
}

func validConfig() *Config {
	return &Config{
		Log:       LogConfig{Level: "info", Format: "text"},
		Data:      DataConfig{Backend: "file"},
		Display:   DisplayConfig{Locale: "pt-BR"},
		Dashboard: DashboardConfig{MonthsBack: 6, TopProducts: 8, TopEstablishments: 10},
		Export:    ExportConfig{Target: TargetCSV, Delimiter: ","},
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	assert.NoError(t, validateConfig(validConfig()))
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid backend",
			modifyConfig: func(c *Config) { c.Data.Backend = "postgres" },
			expectError:  "invalid data backend",
		},
		{
			name:         "unsupported locale",
			modifyConfig: func(c *Config) { c.Display.Locale = "fr" },
			expectError:  "unsupported display locale",
		},
		{
			name:         "months back too small",
			modifyConfig: func(c *Config) { c.Dashboard.MonthsBack = 0 },
			expectError:  "dashboard.months_back must be between 1 and 36",
		},
		{
			name:         "top products not positive",
			modifyConfig: func(c *Config) { c.Dashboard.TopProducts = 0 },
			expectError:  "dashboard.top_products must be positive",
		},
		{
			name:         "top establishments not positive",
			modifyConfig: func(c *Config) { c.Dashboard.TopEstablishments = -1 },
			expectError:  "dashboard.top_establishments must be positive",
		},
		{
			name:         "invalid delimiter",
			modifyConfig: func(c *Config) { c.Export.Delimiter = "abc" },
			expectError:  "export delimiter must be a single character",
		},
		{
			name:         "sheets without credentials",
			modifyConfig: func(c *Config) { c.Export.Target = TargetSheets },
			expectError:  "export.sheets.credentials_file required",
		},
		{
			name:         "invalid export target",
			modifyConfig: func(c *Config) { c.Export.Target = "xlsx" },
			expectError:  "invalid export target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		log       LogConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "text format info level", log: LogConfig{Level: "info", Format: "text"}, wantLevel: logrus.InfoLevel},
		{name: "json format debug level", log: LogConfig{Level: "debug", Format: "json"}, wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "bad level falls back to info", log: LogConfig{Level: "loud", Format: "text"}, wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := ConfigureLoggingFromConfig(&Config{Log: tt.log})
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel, logger.GetLevel())
			_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "DEBUG")
	assert.Equal(t, logrus.DebugLevel, LevelFromEnv())

	t.Setenv("LOG_LEVEL", "chatty")
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())

	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	assert.Equal(t, logrus.InfoLevel, LevelFromEnv())
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KFINANCE_TEST_VALUE=from-dotenv\n"), 0600))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Unsetenv("KFINANCE_TEST_VALUE") })

	assert.Equal(t, ".env", LoadEnv())
	assert.Equal(t, "from-dotenv", GetEnv("KFINANCE_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("KFINANCE_TEST_MISSING", "fallback"))
}

func TestLoadEnv_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(filepath.Join(work, ".env"), 0750))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
	require.NoError(t, os.Chdir(work))

	assert.Equal(t, "", LoadEnv())
}

// clearTestEnvVars isolates a test from the developer's environment and config files.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, envVar := range []string{
		"KFINANCE_LOG_LEVEL",
		"KFINANCE_LOG_FORMAT",
		"KFINANCE_DATA_BACKEND",
		"KFINANCE_DATA_DIRECTORY",
		"KFINANCE_DATA_FILE_PATH",
		"KFINANCE_DATA_SQLITE_PATH",
		"KFINANCE_DISPLAY_LOCALE",
		"KFINANCE_DASHBOARD_MONTHS_BACK",
		"KFINANCE_DASHBOARD_TOP_PRODUCTS",
		"KFINANCE_DASHBOARD_TOP_ESTABLISHMENTS",
		"KFINANCE_EXPORT_TARGET",
		"KFINANCE_EXPORT_DELIMITER",
		"KFINANCE_EXPORT_DIRECTORY",
		"KFINANCE_EXPORT_SHEETS_CREDENTIALS_FILE",
		"KFINANCE_EXPORT_SHEETS_SPREADSHEET_ID",
		"GOOGLE_APPLICATION_CREDENTIALS",
	} {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
	t.Setenv("HOME", t.TempDir())

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
}
