package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	MediaDir        string
	MediaBaseURL    string
	MediaSigningKey string
	SignedURLTTL    time.Duration

	LogLevel string
	LogDev   bool
}

func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "crave"),
		DBPassword: getEnv("DB_PASSWORD", "crave_dev_password"),
		DBName:     getEnv("DB_NAME", "crave"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),

		MediaDir:        getEnv("MEDIA_DIR", "./media"),
		MediaBaseURL:    getEnv("MEDIA_BASE_URL", "http://localhost:8080/media"),
		MediaSigningKey: getEnv("MEDIA_SIGNING_KEY", "dev-signing-key-change-me"),
		SignedURLTTL:    time.Duration(getEnvInt("SIGNED_URL_TTL_MINUTES", 60)) * time.Minute,

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDev:   getEnv("LOG_DEV", "") == "1",
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
