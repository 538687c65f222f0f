package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Settings storage
	SettingsDB       string
	DefaultTextsFile string

	// Markup
	HiddenClass string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration

	// Request limits
	MaxBodyBytes  int64
	MaxBatchUnits int

	// Observability
	StatsWindow time.Duration
	LogLevel    slog.Level
}

// Load reads configuration from the environment. Variables from .env and
// .env.local are applied first without overriding ones already set.
func Load() Config {
	_ = godotenv.Load(".env", ".env.local")

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("LINKLABEL_API_KEY"),

		SettingsDB:       envOr("SETTINGS_DB", "linklabel.db"),
		DefaultTextsFile: os.Getenv("DEFAULT_TEXTS_FILE"),

		HiddenClass: envOr("HIDDEN_CLASS", "linklabel-sr-only"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),
		JobTTL:       envDuration("JOB_TTL", 1*time.Hour),

		MaxBodyBytes:  envInt64("MAX_BODY_BYTES", 5242880), // 5MB
		MaxBatchUnits: envInt("MAX_BATCH_UNITS", 500),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 5242880
	}
	if cfg.MaxBatchUnits <= 0 {
		cfg.MaxBatchUnits = 500
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LINKLABEL_API_KEY is required")
	}
	if c.SettingsDB == "" {
		return fmt.Errorf("SETTINGS_DB is required")
	}
	if strings.ContainsAny(c.HiddenClass, " \t\"'<>") {
		return fmt.Errorf("HIDDEN_CLASS must be a single class name, got %q", c.HiddenClass)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
