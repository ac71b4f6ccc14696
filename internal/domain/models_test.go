package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutLogsJSONRoundTrip(t *testing.T) {
	logs := NewWorkoutLogs()
	logs.Exercises[LogKey{Day: 0, Exercise: 2}] = ExerciseLog{Completed: true, Weight: "40kg", Reps: "12,10,8"}
	logs.Exercises[LogKey{Day: 3, Exercise: 0}] = ExerciseLog{Notes: "pegada aberta"}
	logs.Warmup[0] = true
	logs.Stretching[3] = true

	data, err := json.Marshal(logs)
	require.NoError(t, err)

	// The wire format is a single flat object.
	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Contains(t, flat, "0-2")
	assert.Contains(t, flat, "3-0")
	assert.Contains(t, flat, "warmup-0")
	assert.Contains(t, flat, "stretching-3")

	var restored WorkoutLogs
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, logs.Exercises, restored.Exercises)
	assert.Equal(t, logs.Warmup, restored.Warmup)
	assert.Equal(t, logs.Stretching, restored.Stretching)
}

func TestWorkoutLogsUnmarshalDropsUnknownKeys(t *testing.T) {
	raw := `{"0-1":{"completed":true},"warmup-2":true,"garbage":"x","also-bad":123}`

	var logs WorkoutLogs
	require.NoError(t, json.Unmarshal([]byte(raw), &logs))

	assert.Len(t, logs.Exercises, 1)
	assert.True(t, logs.Exercises[LogKey{Day: 0, Exercise: 1}].Completed)
	assert.True(t, logs.Warmup[2])
	assert.Empty(t, logs.Stretching)
}

func TestLogKeyOrdering(t *testing.T) {
	assert.Equal(t, "2-5", LogKey{Day: 2, Exercise: 5}.String())
	assert.True(t, LogKey{Day: 1, Exercise: 9}.Less(LogKey{Day: 2, Exercise: 0}))
	assert.True(t, LogKey{Day: 2, Exercise: 0}.Less(LogKey{Day: 2, Exercise: 1}))
	assert.False(t, LogKey{Day: 2, Exercise: 1}.Less(LogKey{Day: 2, Exercise: 1}))
}

func TestPlanValidate(t *testing.T) {
	plan := Plan{
		NutritionStrategy:         "comer melhor",
		WorkoutStrategy:           "treinar mais",
		MealPlan:                  []Meal{},
		WorkoutPlan:               []WorkoutDay{},
		SupplementRecommendations: []string{},
	}
	assert.NoError(t, plan.Validate())

	missing := plan
	missing.NutritionStrategy = ""
	assert.Error(t, missing.Validate())

	noMeals := plan
	noMeals.MealPlan = nil
	assert.Error(t, noMeals.Validate())

	noSupps := plan
	noSupps.SupplementRecommendations = nil
	assert.Error(t, noSupps.Validate())
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, GoalLoseWeight, p.Goal)
	assert.Empty(t, p.Name)
	assert.Nil(t, p.Measurements)
}

func TestUserProfileJSONFieldNames(t *testing.T) {
	p := DefaultProfile()
	p.CurrentWeight = "82"
	p.PhotoFront = "file-id"

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "82", flat["currentWeight"])
	assert.Equal(t, "file-id", flat["photoFront"])
	assert.Equal(t, "male", flat["gender"])
}
