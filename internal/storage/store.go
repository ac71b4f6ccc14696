package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable key/value capability shared by all stateful
// components. Every component reads and writes only its own
// namespaced keys; values are serialized entities.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Per-user entity keys. One key holds one serialized entity.
func ProfileKey(userID int64) string {
	return fmt.Sprintf("user:%d:profile", userID)
}

func PlanKey(userID int64) string {
	return fmt.Sprintf("user:%d:plan", userID)
}

func ProgressKey(userID int64) string {
	return fmt.Sprintf("user:%d:progress", userID)
}

func WorkoutLogsKey(userID int64) string {
	return fmt.Sprintf("user:%d:workout_logs", userID)
}
