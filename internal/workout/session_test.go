package workout

import (
	"context"
	"testing"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.InitWithConfig(logger.Config{Level: logger.LevelError, OutputPath: "stdout", Format: "text"})
}

func testDay() domain.WorkoutDay {
	return domain.WorkoutDay{
		Day:   "Segunda",
		Focus: "Peito e Tríceps",
		Exercises: []domain.Exercise{
			{Name: "Supino Reto", Sets: 4, Reps: "8-12"},
			{Name: "Crucifixo", Sets: 3, Reps: "12"},
			{Name: "Tríceps Corda", Sets: 3, Reps: "15"},
		},
	}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	logs := services.NewWorkoutLogService(context.Background(), storage.NewMemoryStore(), 1)
	return NewSession(testDay(), 0, logs)
}

func TestSessionStartsAtWarmup(t *testing.T) {
	session := newTestSession(t)
	assert.Equal(t, WarmupPosition, session.Position())
	assert.True(t, session.InWarmup())
	assert.Nil(t, session.CurrentExercise())
}

func TestSessionWalkAndCompletion(t *testing.T) {
	session := newTestSession(t)

	// Three exercises: warm-up, 0, 1, 2, then the next advance signals
	// completion without moving.
	assert.False(t, session.Next())
	assert.Equal(t, 0, session.Position())
	assert.False(t, session.Next())
	assert.False(t, session.Next())
	assert.Equal(t, 2, session.Position())

	assert.True(t, session.Next())
	assert.Equal(t, 2, session.Position(), "completion must not move the position")
}

func TestSessionPreviousFloorsAtWarmup(t *testing.T) {
	session := newTestSession(t)
	session.Previous()
	assert.Equal(t, WarmupPosition, session.Position())

	session.Next()
	session.Previous()
	assert.Equal(t, WarmupPosition, session.Position())
}

func TestSessionNavigationResetsTimer(t *testing.T) {
	session := newTestSession(t)
	timer := session.Timer()
	timer.Start()
	timer.Tick()
	require.Equal(t, 1, timer.Seconds())

	session.Next()
	assert.Equal(t, 0, timer.Seconds())
	assert.False(t, timer.Running())

	timer.Start()
	timer.Tick()
	session.Previous()
	assert.Equal(t, 0, timer.Seconds())
}

func TestSessionLogsCurrentExercise(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	logs := services.NewWorkoutLogService(ctx, store, 1)
	session := NewSession(testDay(), 2, logs)

	// Warm-up writes are ignored.
	require.NoError(t, session.SetWeight(ctx, "40kg"))
	assert.Empty(t, logs.Logs().Exercises)

	session.Next()
	session.Next()
	require.NoError(t, session.SetWeight(ctx, "25kg"))
	require.NoError(t, session.SetCompleted(ctx, true))

	log := logs.Exercise(domain.LogKey{Day: 2, Exercise: 1})
	assert.Equal(t, "25kg", log.Weight)
	assert.True(t, log.Completed)
	assert.Equal(t, log, session.CurrentLog())
}

func TestSessionWarmupFlags(t *testing.T) {
	ctx := context.Background()
	session := newTestSession(t)

	done, err := session.ToggleWarmup(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, session.WarmupDone())

	done, err = session.ToggleStretching(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, session.StretchingDone())
}

func TestSuggestWarmup(t *testing.T) {
	legs := SuggestWarmup("Pernas e Glúteos")
	assert.Contains(t, legs.Cardio, "bicicleta")
	assert.Contains(t, legs.Mobility, "quadril")

	upper := SuggestWarmup("Peito e Costas")
	assert.Contains(t, upper.Cardio, "Remo")

	lowerCase := SuggestWarmup("treino inferior")
	assert.Equal(t, legs, lowerCase)

	generic := SuggestWarmup("Cardio Livre")
	assert.Contains(t, generic.Cardio, "caminhada")

	// Pure: same input, same output.
	assert.Equal(t, SuggestWarmup("Pernas"), SuggestWarmup("Pernas"))
}
