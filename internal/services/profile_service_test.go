package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.InitWithConfig(logger.Config{Level: logger.LevelError, OutputPath: "stdout", Format: "text"})
}

func strPtr(s string) *string { return &s }

func TestProfileServiceStartsFromDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(ctx, storage.NewMemoryStore(), 1)

	p := svc.Profile()
	assert.Equal(t, domain.GenderMale, p.Gender)
	assert.Equal(t, domain.GoalLoseWeight, p.Goal)
	assert.Empty(t, p.Name)
}

func TestProfileServiceHydratesStoredFields(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	saved := domain.UserProfile{Name: "Leandro", Gender: domain.GenderMale, Goal: domain.GoalGainMuscle}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, storage.ProfileKey(1), data))

	svc := NewProfileService(ctx, store, 1)
	p := svc.Profile()
	assert.Equal(t, "Leandro", p.Name)
	assert.Equal(t, domain.GoalGainMuscle, p.Goal)
}

func TestProfileServiceCorruptEntryFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.ProfileKey(1), []byte("{not json")))

	svc := NewProfileService(ctx, store, 1)
	assert.Equal(t, domain.DefaultProfile(), svc.Profile())
}

func TestProfileServiceApplyMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewProfileService(ctx, store, 1)

	require.NoError(t, svc.Apply(ctx, ProfileUpdate{Name: strPtr("Ana")}))
	require.NoError(t, svc.Apply(ctx, ProfileUpdate{Age: strPtr("31")}))

	// The second write must not clear the first field.
	assert.Equal(t, "Ana", svc.Profile().Name)
	assert.Equal(t, "31", svc.Profile().Age)

	// A fresh service over the same store sees both writes.
	rehydrated := NewProfileService(ctx, store, 1)
	assert.Equal(t, "Ana", rehydrated.Profile().Name)
	assert.Equal(t, "31", rehydrated.Profile().Age)
}

func TestProfileServiceSetMeasurements(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewProfileService(ctx, store, 1)

	require.NoError(t, svc.SetMeasurements(ctx, domain.Measurements{Waist: "90"}))
	require.NotNil(t, svc.Profile().Measurements)
	assert.Equal(t, "90", svc.Profile().Measurements.Waist)
}

func TestProfileServiceReset(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewProfileService(ctx, store, 1)
	require.NoError(t, svc.Apply(ctx, ProfileUpdate{Name: strPtr("Ana")}))

	require.NoError(t, svc.Reset(ctx))
	assert.Equal(t, domain.DefaultProfile(), svc.Profile())

	_, err := store.Get(ctx, storage.ProfileKey(1))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
