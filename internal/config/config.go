package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/leandrotelles/nutricoach-bot/internal/logger"
)

// StorageBackend selects how user data is persisted.
type StorageBackend string

const (
	BackendMemory   StorageBackend = "memory"
	BackendRedis    StorageBackend = "redis"
	BackendPostgres StorageBackend = "postgres"
)

type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	Storage       StorageBackend
	Redis         RedisConfig
	DB            DBConfig
	Logger        LoggerConfig
}

type RedisConfig struct {
	Host string
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseStorageBackend(backend string) (StorageBackend, error) {
	switch strings.ToLower(backend) {
	case "", "memory":
		return BackendMemory, nil
	case "redis":
		return BackendRedis, nil
	case "postgres":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", backend)
	}
}

func Load() (*Config, error) {
	backend, err := parseStorageBackend(os.Getenv("STORAGE_BACKEND"))
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		Storage:       backend,
		Redis: RedisConfig{
			Host: getEnvOrDefault("REDIS_HOST", "localhost"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "nutricoach"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
