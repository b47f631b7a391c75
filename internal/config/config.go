package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/i474232898/galicia-weather-report/internal/weather"
	"github.com/i474232898/galicia-weather-report/internal/weather/providers"
)

var validate = validator.New()

type AppConfig struct {
	ArchiveURL string `validate:"required,url"`

	// HTTPTimeout of 0 keeps the client default (no overall deadline).
	HTTPTimeout    time.Duration `validate:"gte=0"`
	HTTPMaxRetries int           `validate:"gte=0,lte=10"`

	AveragePolicy weather.AveragePolicy

	// ReportSchedule is either a Go duration ("24h") or a 5-field cron expression.
	// Only watch reads it, see Schedule.
	ReportSchedule string

	// Port is only read by serve, see ListenAddr.
	Port    string
	Verbose bool
}

// Load reads configuration from environment with defaults that reproduce the
// one-shot report: no timeout, no retries, zero-filled averages.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.ArchiveURL = getenvDefault("OPEN_METEO_ARCHIVE_URL", providers.DefaultArchiveURL)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout
	cfg.HTTPMaxRetries = getenvInt("HTTP_MAX_RETRIES", 0)

	policy, err := weather.ParseAveragePolicy(strings.ToLower(os.Getenv("AVERAGE_POLICY")))
	if err != nil {
		return nil, fmt.Errorf("invalid AVERAGE_POLICY: %w", err)
	}
	cfg.AveragePolicy = policy

	cfg.ReportSchedule = getenvDefault("REPORT_SCHEDULE", "24h")
	cfg.Port = getenvDefault("PORT", "8080")
	cfg.Verbose = getenvBool("VERBOSE", false)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Schedule parses REPORT_SCHEDULE for the watch command.
func (c *AppConfig) Schedule() (interval time.Duration, cronExpr string, err error) {
	interval, cronExpr, err = ParseSchedule(c.ReportSchedule)
	if err != nil {
		return 0, "", fmt.Errorf("invalid REPORT_SCHEDULE: %w", err)
	}
	return interval, cronExpr, nil
}

// ListenAddr validates PORT and returns the address serve listens on.
func (c *AppConfig) ListenAddr() (string, error) {
	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	return ":" + c.Port, nil
}

// Backoff returns the retry settings for outbound calls.
func (c *AppConfig) Backoff() providers.BackoffConfig {
	return providers.BackoffConfig{
		MaxRetries:      c.HTTPMaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// ParseSchedule accepts a positive duration or a standard cron expression.
// Exactly one of interval and cronExpr is set on success.
func ParseSchedule(s string) (interval time.Duration, cronExpr string, err error) {
	s = strings.TrimSpace(s)
	if d, derr := time.ParseDuration(s); derr == nil {
		if d <= 0 {
			return 0, "", fmt.Errorf("interval must be positive, got %s", d)
		}
		return d, "", nil
	}
	if _, cerr := cron.ParseStandard(s); cerr != nil {
		return 0, "", fmt.Errorf("neither a duration nor a cron expression: %w", cerr)
	}
	return 0, s, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
