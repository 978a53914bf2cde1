package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultGreeting = "Hello World!, This is the Personal Budget homepage"

type Config struct {
	// HTTP Server
	Port            string
	Greeting        string
	ShutdownTimeout time.Duration

	// Document source
	Source     string
	BudgetFile string

	// SQLite (read-only source)
	SQLiteDBPath string

	// Google Sheets (read-only source)
	GoogleSpreadsheetID       string
	GoogleSheetRange          string
	GoogleServiceAccountJSON  string
	GoogleServiceAccountFile  string
	GoogleApplicationCredsEnv string

	// Middleware
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Logging
	LogLevel  string
	LogFormat string

	// values that were set but could not be parsed; reported by Validate
	loadErrors []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over its values.
func Load() *Config {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Greeting:        getEnv("GREETING", DefaultGreeting),
		ShutdownTimeout: env.getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		Source:     getEnv("BUDGET_SOURCE", "file"),
		BudgetFile: getEnv("BUDGET_FILE", ""),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/budget.db"),

		GoogleSpreadsheetID:       getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetRange:          getEnv("GOOGLE_SHEET_RANGE", "Budget!A:B"),
		GoogleServiceAccountJSON:  getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile:  getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleApplicationCredsEnv: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       env.getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:     env.getEnvInt("RATE_LIMIT_BURST", 40),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
	cfg.loadErrors = env.errors

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	errors := append([]string(nil), c.loadErrors...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validSources := []string{"file", "sheets", "sqlite"}
	if !slices.Contains(validSources, c.Source) {
		errors = append(errors, fmt.Sprintf("invalid budget source '%s': must be one of %v", c.Source, validSources))
	}

	switch c.Source {
	case "file":
		// An empty path selects the embedded document.
		if c.BudgetFile != "" {
			switch strings.ToLower(filepath.Ext(c.BudgetFile)) {
			case ".json", ".yaml", ".yml", ".toml":
			default:
				errors = append(errors, fmt.Sprintf("unsupported budget file extension '%s': must be .json, .yaml, .yml or .toml", filepath.Ext(c.BudgetFile)))
			}
			if _, err := os.Stat(c.BudgetFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("budget file does not exist: %s", c.BudgetFile))
			}
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		} else if _, err := os.Stat(c.SQLiteDBPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("SQLite database does not exist: %s", c.SQLiteDBPath))
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetRange == "" {
			errors = append(errors, "Google Sheet range is required when using sheets source")
		}
		if c.GoogleServiceAccountJSON == "" && c.GoogleServiceAccountFile == "" && c.GoogleApplicationCredsEnv == "" {
			errors = append(errors, "one of GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_APPLICATION_CREDENTIALS must be provided for sheets source")
		}
	}

	if len(c.CORSAllowedOrigins) == 0 {
		errors = append(errors, "at least one CORS origin must be allowed")
	}
	if c.RateLimitRPS <= 0 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %v: must be positive", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit burst %d: must be at least 1", c.RateLimitBurst))
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}
	validFormats := []string{"text", "json"}
	if !slices.Contains(validFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validFormats))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses typed variables, recording values that are set but
// malformed. The default is used in their place.
type envReader struct {
	errors []string
}

func (e *envReader) invalid(key, value, want string) {
	e.errors = append(e.errors, fmt.Sprintf("invalid %s '%s': must be %s", key, value, want))
}

func (e *envReader) getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		e.invalid(key, value, "an integer")
		return defaultValue
	}
	return i
}

func (e *envReader) getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		e.invalid(key, value, "a number")
		return defaultValue
	}
	return f
}

func (e *envReader) getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		e.invalid(key, value, "a duration such as 30s")
		return defaultValue
	}
	return d
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
