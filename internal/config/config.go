// Package config loads Quotebook settings from environment variables (and an
// optional .env file) with defaults, normalization and validation.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// OTELConfig defines OpenTelemetry tracing settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "localhost:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Storage
	DBPath    string        // QUOTEBOOK_DB_PATH, SQLite file
	PrefsPath string        // QUOTEBOOK_PREFS_PATH, bbolt file
	DBTimeout time.Duration // DB_TIMEOUT, per bounded repository call

	// Presentation
	SearchDebounce  time.Duration // SEARCH_DEBOUNCE
	MaxSearchLength int           // MAX_SEARCH_LENGTH, in runes
	MaxVisibleCards int           // MAX_VISIBLE_CARDS

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // console writer instead of JSON

	// Observability
	MetricsEnabled bool // METRICS_ENABLED
	OTEL           OTELConfig
}

// EnvFile is the dotenv file read by Load when present.
var EnvFile = ".env"

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads EnvFile if it exists (real environment variables win), then
// builds the configuration from the environment, applies defaults,
// normalizes values and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    strings.TrimSpace(getenv("QUOTEBOOK_DB_PATH", "quotebook.db")),
		PrefsPath: strings.TrimSpace(getenv("QUOTEBOOK_PREFS_PATH", "quotebook-prefs.db")),
		DBTimeout: getdur("DB_TIMEOUT", 5*time.Second),

		SearchDebounce:  getdur("SEARCH_DEBOUNCE", 300*time.Millisecond),
		MaxSearchLength: getint("MAX_SEARCH_LENGTH", 100),
		MaxVisibleCards: getint("MAX_VISIBLE_CARDS", 3),

		LogLevel:  strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogPretty: getbool("LOG_PRETTY", false),

		MetricsEnabled: getbool("METRICS_ENABLED", true),
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "quotebook"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if cfg.DBPath == "" {
		return cfg, errors.New("QUOTEBOOK_DB_PATH must not be empty")
	}
	if cfg.PrefsPath == "" {
		return cfg, errors.New("QUOTEBOOK_PREFS_PATH must not be empty")
	}
	if cfg.DBTimeout <= 0 {
		return cfg, errors.New("DB_TIMEOUT must be a positive duration")
	}
	if cfg.SearchDebounce < 0 {
		return cfg, errors.New("SEARCH_DEBOUNCE must be >= 0")
	}
	if cfg.MaxSearchLength < 1 {
		return cfg, errors.New("MAX_SEARCH_LENGTH must be >= 1")
	}
	if cfg.MaxVisibleCards < 1 {
		return cfg, errors.New("MAX_VISIBLE_CARDS must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
