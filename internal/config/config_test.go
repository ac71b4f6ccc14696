package config

import (
	"testing"

	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageBackend(t *testing.T) {
	backend, err := parseStorageBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, backend)

	backend, err = parseStorageBackend("Redis")
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, backend)

	backend, err = parseStorageBackend("postgres")
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, backend)

	_, err = parseStorageBackend("cassandra")
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, logger.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, logger.LevelError, parseLogLevel("error"))
	assert.Equal(t, logger.LevelInfo, parseLogLevel("whatever"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage)
	assert.Equal(t, "nutricoach", cfg.DB.DBName)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.Equal(t, "logs/app.log", cfg.Logger.OutputPath)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "tape")
	_, err := Load()
	assert.Error(t, err)
}
