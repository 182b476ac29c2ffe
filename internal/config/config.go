package config

import (
	"os"
	"strconv"
)

// DefaultRateLimitPerMinute caps API requests per client IP
const DefaultRateLimitPerMinute = 300

// Config holds the application configuration
type Config struct {
	Port               string
	DBPath             string
	JWTSecret          string
	RateLimitPerMinute int
}

// Load reads configuration from the environment with sensible defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/memories/memories.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	rateLimit := DefaultRateLimitPerMinute
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			rateLimit = parsed
		}
	}

	return &Config{
		Port:               port,
		DBPath:             dbPath,
		JWTSecret:          jwtSecret,
		RateLimitPerMinute: rateLimit,
	}
}
