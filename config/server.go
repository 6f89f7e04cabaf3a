package config

import (
	"time"

	"notesapi/utils"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type ServerConfig struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	StorageBackend  string
	RateLimit       RateLimitConfig
	Logging         utils.LogConfig
}

// RateLimitConfig is disabled when RPS is zero. RedisURL switches from the
// per-process limiter to a fixed window shared through Redis.
type RateLimitConfig struct {
	RPS      int
	Burst    int
	Window   time.Duration
	RedisURL string
}

func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

func LoadServerConfig() ServerConfig {
	storage := utils.GetEnvAsString("STORAGE_BACKEND", StorageMongo)
	if storage != StorageMemory {
		storage = StorageMongo
	}

	return ServerConfig{
		Port:            utils.GetEnvAsString("PORT", "8080"),
		GinMode:         utils.GetEnvAsString("GIN_MODE", "release"),
		AllowedOrigins:  utils.GetEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		MaxBodyBytes:    int64(utils.GetEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		StorageBackend:  storage,
		RateLimit: RateLimitConfig{
			RPS:      utils.GetEnvAsInt("RATE_LIMIT_RPS", 10),
			Burst:    utils.GetEnvAsInt("RATE_LIMIT_BURST", 20),
			Window:   utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			RedisURL: utils.GetEnvAsString("REDIS_URL", ""),
		},
		Logging: utils.LogConfig{
			Level:    utils.GetEnvAsString("LOG_LEVEL", "info"),
			JSON:     utils.GetEnvAsBool("LOG_FORMAT_JSON", true),
			File:     utils.GetEnvAsString("LOG_FILE", ""),
			ToStdout: utils.GetEnvAsBool("LOG_TO_STDOUT", true),
		},
	}
}
