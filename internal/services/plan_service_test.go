package services

import (
	"context"
	"testing"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		NutritionStrategy:         "déficit calórico moderado",
		WorkoutStrategy:           "ABC 3x por semana",
		MealPlan:                  []domain.Meal{{Name: "Café da manhã", Time: "07:00", Ingredients: []string{"ovos"}}},
		WorkoutPlan:               []domain.WorkoutDay{{Day: "Segunda", Focus: "Peito", Exercises: []domain.Exercise{{Name: "Supino", Sets: 3, Reps: "8-12"}}}},
		SupplementRecommendations: []string{"creatina 5g"},
	}
}

func TestPlanServiceStartsEmpty(t *testing.T) {
	svc := NewPlanService(context.Background(), storage.NewMemoryStore(), 1)
	assert.Nil(t, svc.Plan())
}

func TestPlanServiceSaveAndRehydrate(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewPlanService(ctx, store, 1)

	require.NoError(t, svc.Save(ctx, testPlan()))
	require.NotNil(t, svc.Plan())

	rehydrated := NewPlanService(ctx, store, 1)
	require.NotNil(t, rehydrated.Plan())
	assert.Equal(t, "ABC 3x por semana", rehydrated.Plan().WorkoutStrategy)
	assert.Len(t, rehydrated.Plan().WorkoutPlan, 1)
}

func TestPlanServiceCorruptEntryMeansNoPlan(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.PlanKey(1), []byte("oops")))

	svc := NewPlanService(ctx, store, 1)
	assert.Nil(t, svc.Plan())
}

func TestPlanServiceClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewPlanService(ctx, store, 1)
	require.NoError(t, svc.Save(ctx, testPlan()))

	require.NoError(t, svc.Clear(ctx))
	assert.Nil(t, svc.Plan())
	_, err := store.Get(ctx, storage.PlanKey(1))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
