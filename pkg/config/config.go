package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	APIBaseURL string
	APITimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CartTTL         time.Duration
	SessionIdleTTL  time.Duration
	CookieSecure    bool
	QuoteConcurrent int
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:3000/api"),
		APITimeout:      getEnvDuration("API_TIMEOUT", 10*time.Second),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 1),
		CartTTL:         getEnvDuration("CART_TTL", 30*24*time.Hour),
		SessionIdleTTL:  getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
		QuoteConcurrent: getEnvInt("QUOTE_CONCURRENCY", 10),
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

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
