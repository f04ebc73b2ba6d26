package config

import (
	"os"
	"time"
)

type Config struct {
	DatabaseURL  string
	Port         string
	RateBackend  string
	RedisAddr    string
	ZoneCacheTTL time.Duration
	LogLevel     string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	ttl := 5 * time.Minute
	if raw := os.Getenv("ZONE_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Port:         port,
		RateBackend:  os.Getenv("RATE_BACKEND"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		ZoneCacheTTL: ttl,
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}
}
