package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server configuration, loaded from the environment with
// sensible defaults. A .env file is honored when present.
type Config struct {
	Port            string
	DataDir         string
	TablesPath      string
	CacheTTL        time.Duration
	RateLimitPerMin int
	RateLimitBurst  int
	CORSOrigins     []string
	LogLevel        string
}

// Load reads configuration from the environment.
func Load() Config {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		TablesPath:      getEnv("TABLES_PATH", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 60),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 10),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
