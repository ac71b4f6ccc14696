package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/leandrotelles/nutricoach-bot/internal/apperrors"
	"github.com/leandrotelles/nutricoach-bot/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Record is one stored entity: the key identifies the user and entity
// kind, the value is the serialized entity.
type Record struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// PostgresStore persists entities in a single key/value table.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to PostgreSQL and migrates the schema.
func NewPostgresStore(cfg config.DBConfig) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record Record
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, fmt.Sprintf("failed to read %s", key))
	}
	return record.Value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	record := Record{Key: key, Value: value}
	err := s.db.WithContext(ctx).Save(&record).Error
	if err != nil {
		return apperrors.NewStorageError(err, fmt.Sprintf("failed to write %s", key))
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&Record{}, "key = ?", key).Error
	if err != nil {
		return apperrors.NewStorageError(err, fmt.Sprintf("failed to remove %s", key))
	}
	return nil
}
