package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Log       LogConfig
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins string
}

type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	RateLimitPerMinute int
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	URL string
}

type EmbeddingConfig struct {
	APIKey string
	Model  string
}

type LogConfig struct {
	Level string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:           getenv("SERVER_ADDR", ":8080"),
			AllowedOrigins: getenv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8501"),
		},
		Auth: AuthConfig{
			JWTSecret:          os.Getenv("SECRET_KEY"),
			TokenTTL:           getenvDuration("ACCESS_TOKEN_TTL", 8*24*time.Hour),
			RateLimitPerMinute: getenvInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getenv("REDIS_URL", "redis://localhost:6379"),
		},
		Embedding: EmbeddingConfig{
			APIKey: os.Getenv("EMBEDDING_API_KEY"),
			Model:  getenv("EMBEDDING_MODEL", "text-embedding-004"),
		},
		Log: LogConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
