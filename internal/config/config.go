package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	Env            string
	APIURL         string
	SessionFile    string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		APIURL:         getEnv("VAULTPASS_API_URL", "http://localhost:8000"),
		SessionFile:    getEnv("VAULTPASS_SESSION_FILE", defaultSessionFile()),
		RequestTimeout: getDuration("VAULTPASS_TIMEOUT", 15*time.Second),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),
	}
}

// Dir returns the per-user directory holding the CLI env file and session.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vaultpass"
	}
	return filepath.Join(home, ".vaultpass")
}

func defaultSessionFile() string {
	return filepath.Join(Dir(), "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
