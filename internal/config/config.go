package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	Alerts    AlertsConfig
	Seed      SeedConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig points at the SQLite inventory database.
type DatabaseConfig struct {
	Path string
}

// MongoDBConfig holds settings for the optional snapshot archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether snapshots go to MongoDB instead of SQLite.
func (c MongoDBConfig) Enabled() bool { return c.URI != "" }

// SheetsConfig contains configuration required to export snapshots to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the Sheets export is configured.
func (c SheetsConfig) Enabled() bool { return c.CredentialsPath != "" && c.SpreadsheetID != "" }

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// Location resolves Timezone. Validate guarantees it parses.
func (c ReportingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AlertsConfig configures the utilization alert webhook.
type AlertsConfig struct {
	WebhookURL string
	Threshold  int
}

// Enabled reports whether alerts are delivered.
func (c AlertsConfig) Enabled() bool { return c.WebhookURL != "" }

// SeedConfig drives the synthetic data generator.
type SeedConfig struct {
	Value          int64
	ContainerCount int
	HistoryDays    int
}

// LogConfig selects the logger flavour.
type LogConfig struct {
	Development bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when the environment carries everything.
		_ = godotenv.Load()
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	threshold, err := getenvInt("ALERT_UTILIZATION_THRESHOLD", 90)
	if err != nil {
		return nil, err
	}
	seed, err := getenvInt("SEED_VALUE", 42)
	if err != nil {
		return nil, err
	}
	containers, err := getenvInt("SEED_CONTAINER_COUNT", 3)
	if err != nil {
		return nil, err
	}
	history, err := getenvInt("SEED_HISTORY_DAYS", 14)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DATABASE_PATH", "vertical_farm.db"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "vertical_farm"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "55 23 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Alerts: AlertsConfig{
			WebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
			Threshold:  threshold,
		},
		Seed: SeedConfig{
			Value:          int64(seed),
			ContainerCount: containers,
			HistoryDays:    history,
		},
		Log: LogConfig{
			Development: os.Getenv("APP_ENV") == "development",
		},
	}, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Database.Path == "" {
		return errors.New("DATABASE_PATH must not be empty")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}

	if c.Alerts.Threshold < 1 || c.Alerts.Threshold > 100 {
		return errors.New("ALERT_UTILIZATION_THRESHOLD must be between 1 and 100")
	}

	switch {
	case c.Seed.ContainerCount < 1:
		return errors.New("SEED_CONTAINER_COUNT must be at least 1")
	case c.Seed.HistoryDays < 0:
		return errors.New("SEED_HISTORY_DAYS must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
