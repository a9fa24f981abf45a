package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv   string
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret        string
	CalendarTimezone string

	UpstreamBaseURL      string
	UpstreamAPIKey       string
	UpstreamTimeout      time.Duration
	UpstreamSyncSchedule string
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves the calendar timezone used for date windows.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.CalendarTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_TIMEZONE %q: %w", c.CalendarTimezone, err)
	}
	return loc, nil
}

// LoadConfig reads the process environment, optionally seeded from envFile.
// Variables already set in the environment win over the file. A missing file
// is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CALENDAR_TIMEZONE", "Europe/Paris")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")
	v.SetDefault("UPSTREAM_SYNC_SCHEDULE", "0 */15 * * * *")

	cfg := Config{
		AppEnv:               v.GetString("APP_ENV"),
		HTTPPort:             v.GetString("HTTP_PORT"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		CalendarTimezone:     v.GetString("CALENDAR_TIMEZONE"),
		UpstreamBaseURL:      v.GetString("UPSTREAM_BASE_URL"),
		UpstreamAPIKey:       v.GetString("UPSTREAM_API_KEY"),
		UpstreamTimeout:      v.GetDuration("UPSTREAM_TIMEOUT"),
		UpstreamSyncSchedule: v.GetString("UPSTREAM_SYNC_SCHEDULE"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	if c.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}
