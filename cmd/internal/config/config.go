package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	DatabasePath    string
	LocalStorePath  string
	DefaultTheme    string
	RequestTimeout  time.Duration
	AuthCacheTTL    time.Duration
	RateLimitPerSec float64
	RateLimitBurst  int
}

func Load() Config {
	port := os.Getenv("CLIENTFLOW_PORT")
	if port == "" {
		port = "6060"
	}

	dbPath := os.Getenv("CLIENTFLOW_DB_PATH")
	if dbPath == "" {
		dbPath = "./database.db"
	}

	theme := os.Getenv("CLIENTFLOW_DEFAULT_THEME")
	if theme == "" {
		theme = "light"
	}

	return Config{
		Port:            port,
		DatabasePath:    dbPath,
		LocalStorePath:  os.Getenv("CLIENTFLOW_LOCAL_STORE"),
		DefaultTheme:    theme,
		RequestTimeout:  readDuration("CLIENTFLOW_REQUEST_TIMEOUT", 10*time.Second),
		AuthCacheTTL:    readDuration("CLIENTFLOW_AUTH_CACHE_TTL", 5*time.Minute),
		RateLimitPerSec: readFloat("CLIENTFLOW_RATE_LIMIT_PER_SEC", 20),
		RateLimitBurst:  readInt("CLIENTFLOW_RATE_LIMIT_BURST", 40),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
