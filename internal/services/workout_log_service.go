package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
)

// ExerciseUpdate is a partial exercise-log write: only non-nil fields
// are applied, siblings keep their current values.
type ExerciseUpdate struct {
	Completed *bool
	Weight    *string
	Reps      *string
	Notes     *string
}

// WorkoutLogService owns the cross-day exercise-log collection. Every
// write merges into the persisted collection rather than replacing it,
// so unrelated keys are never lost.
type WorkoutLogService struct {
	store  storage.Store
	userID int64
	logs   domain.WorkoutLogs
}

// NewWorkoutLogService hydrates the log collection. A missing or
// unparseable entry starts an empty collection; local data corruption
// is non-fatal.
func NewWorkoutLogService(ctx context.Context, store storage.Store, userID int64) *WorkoutLogService {
	s := &WorkoutLogService{
		store:  store,
		userID: userID,
		logs:   domain.NewWorkoutLogs(),
	}

	data, err := store.Get(ctx, storage.WorkoutLogsKey(userID))
	if err != nil {
		return s
	}

	var logs domain.WorkoutLogs
	if err := json.Unmarshal(data, &logs); err != nil {
		logger.Warn("Failed to parse saved workout logs, starting empty", "user_id", userID, "error", err)
		return s
	}
	s.logs = logs
	return s
}

// Logs returns the current collection. Read-only consumers (the plan
// results view) must not write through it.
func (s *WorkoutLogService) Logs() domain.WorkoutLogs {
	return s.logs
}

// Exercise returns the log for one (day, exercise) key; a key that was
// never written yields the zero log.
func (s *WorkoutLogService) Exercise(key domain.LogKey) domain.ExerciseLog {
	return s.logs.Exercises[key]
}

// UpdateExercise lazily creates the log for the key and merges the
// given fields into it. Writing one field never clears its siblings.
func (s *WorkoutLogService) UpdateExercise(ctx context.Context, key domain.LogKey, update ExerciseUpdate) error {
	log := s.logs.Exercises[key]
	if update.Completed != nil {
		log.Completed = *update.Completed
	}
	if update.Weight != nil {
		log.Weight = *update.Weight
	}
	if update.Reps != nil {
		log.Reps = *update.Reps
	}
	if update.Notes != nil {
		log.Notes = *update.Notes
	}
	s.logs.Exercises[key] = log
	return s.persistMerged(ctx)
}

// ToggleWarmup flips the warm-up-done flag for a training day.
func (s *WorkoutLogService) ToggleWarmup(ctx context.Context, day int) (bool, error) {
	s.logs.Warmup[day] = !s.logs.Warmup[day]
	return s.logs.Warmup[day], s.persistMerged(ctx)
}

// ToggleStretching flips the stretching-done flag for a training day.
func (s *WorkoutLogService) ToggleStretching(ctx context.Context, day int) (bool, error) {
	s.logs.Stretching[day] = !s.logs.Stretching[day]
	return s.logs.Stretching[day], s.persistMerged(ctx)
}

// WarmupDone reports the warm-up flag for a day.
func (s *WorkoutLogService) WarmupDone(day int) bool {
	return s.logs.Warmup[day]
}

// StretchingDone reports the stretching flag for a day.
func (s *WorkoutLogService) StretchingDone(day int) bool {
	return s.logs.Stretching[day]
}

// persistMerged re-reads the stored collection, merges the in-memory
// state over it and writes the result back. Partial updates from other
// sessions keep their unrelated keys.
func (s *WorkoutLogService) persistMerged(ctx context.Context) error {
	merged := domain.NewWorkoutLogs()

	if data, err := s.store.Get(ctx, storage.WorkoutLogsKey(s.userID)); err == nil {
		// Ignore a corrupt stored copy; the in-memory state wins.
		_ = json.Unmarshal(data, &merged)
	}

	for key, log := range s.logs.Exercises {
		merged.Exercises[key] = log
	}
	for day, done := range s.logs.Warmup {
		merged.Warmup[day] = done
	}
	for day, done := range s.logs.Stretching {
		merged.Stretching[day] = done
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to serialize workout logs: %w", err)
	}
	if err := s.store.Set(ctx, storage.WorkoutLogsKey(s.userID), data); err != nil {
		return fmt.Errorf("failed to save workout logs: %w", err)
	}
	return nil
}
