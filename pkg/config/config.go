package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Token    TokenConfig
	Admin    AdminConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

// TokenConfig holds the settings for API bearer tokens
type TokenConfig struct {
	Secret   string
	TTLHours int
}

// AdminConfig describes the account seeded on first start
type AdminConfig struct {
	Username   string
	Password   string
	Department string
}

type LogConfig struct {
	Level string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./shiftledger.db"),
		},
		Session: SessionConfig{
			Secret:   getEnv("SESSION_SECRET", "default-secret-key"),
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),
		},
		Token: TokenConfig{
			Secret:   getEnv("JWT_SECRET", "default-jwt-secret"),
			TTLHours: getEnvAsInt("JWT_TTL_HOURS", 12),
		},
		Admin: AdminConfig{
			Username:   getEnv("ADMIN_USERNAME", "admin"),
			Password:   getEnv("ADMIN_PASSWORD", "admin123"),
			Department: getEnv("ADMIN_DEPARTMENT", "Management"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
