package config

import (
	"os"
	"strings"
	"time"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Config is built once in main and injected everywhere; no package-level
// mutable state.
type Config struct {
	Port            string
	DB              Database
	RedisAddr       string
	KafkaBroker     string
	CORSOrigins     []string
	SummaryCacheTTL time.Duration
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "3000"),
		DB: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "hrms_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		CORSOrigins:     splitOrigins(getEnv("CORS_ORIGINS", "*")),
		SummaryCacheTTL: 30 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
