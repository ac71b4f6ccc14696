package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gender options offered during the basics step
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Goal is the primary objective selected during the basics step
type Goal string

const (
	GoalLoseWeight  Goal = "lose_weight"
	GoalGainMuscle  Goal = "gain_muscle"
	GoalMaintain    Goal = "maintain"
	GoalPerformance Goal = "performance"
)

// Measurements holds the body measurements captured during the
// assessment step. All fields are free text in centimeters and may be
// left empty.
type Measurements struct {
	Neck      string `json:"neck"`
	Shoulders string `json:"shoulders"`
	Chest     string `json:"chest"`
	Arms      string `json:"arms"`
	Waist     string `json:"waist"`
	Hips      string `json:"hips"`
	Thigh     string `json:"thigh"`
	Calf      string `json:"calf"`
}

// UserProfile is the canonical per-user profile collected by the
// wizard. Every field defaults to an empty value; the wizard gates
// progression on specific fields, never creation.
type UserProfile struct {
	Name          string `json:"name"`
	Age           string `json:"age"`
	Height        string `json:"height"`
	CurrentWeight string `json:"currentWeight"`
	Gender        Gender `json:"gender"`
	Goal          Goal   `json:"goal"`

	Instagram string `json:"instagram,omitempty"`

	// Opaque image references (Telegram file IDs)
	ProfilePicture string `json:"profilePicture"`
	PhotoFront     string `json:"photoFront"`
	PhotoSide      string `json:"photoSide"`
	PhotoBack      string `json:"photoBack"`

	DailyRoutine      string `json:"dailyRoutine"`
	CurrentDiet       string `json:"currentDiet"`
	FoodSubstitutions string `json:"foodSubstitutions"`
	FoodPreferences   string `json:"foodPreferences"`
	WorkoutRoutine    string `json:"workoutRoutine"`
	Supplementation   string `json:"supplementation"`

	Measurements *Measurements `json:"measurements,omitempty"`
}

// DefaultProfile returns a profile with all-empty values and the
// default enum selections.
func DefaultProfile() UserProfile {
	return UserProfile{
		Gender: GenderMale,
		Goal:   GoalLoseWeight,
	}
}

// MacroNutrients is a daily or per-meal macro breakdown.
type MacroNutrients struct {
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Calories float64 `json:"calories"`
}

// Meal is one entry of the generated meal plan.
type Meal struct {
	Name         string          `json:"name"`
	Time         string          `json:"time"`
	Ingredients  []string        `json:"ingredients"`
	Instructions string          `json:"instructions,omitempty"`
	Macros       *MacroNutrients `json:"macros,omitempty"`
}

// Exercise is one exercise of a training day. Reps is text because the
// target may be a range ("8-12").
type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Notes string `json:"notes,omitempty"`
}

// WorkoutDay is one training day of the generated workout split.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// Plan is the structured nutrition and workout plan returned by the
// generation call. Once generated it is immutable except for wholesale
// replacement.
type Plan struct {
	NutritionStrategy         string         `json:"nutritionStrategy"`
	WorkoutStrategy           string         `json:"workoutStrategy"`
	DailyMacros               MacroNutrients `json:"dailyMacros"`
	MealPlan                  []Meal         `json:"mealPlan"`
	WorkoutPlan               []WorkoutDay   `json:"workoutPlan"`
	SupplementRecommendations []string       `json:"supplementRecommendations"`
}

// Validate checks that the required plan fields are present. Arrays
// may be empty but must not be absent.
func (p *Plan) Validate() error {
	if p.NutritionStrategy == "" {
		return fmt.Errorf("plan is missing nutrition strategy")
	}
	if p.WorkoutStrategy == "" {
		return fmt.Errorf("plan is missing workout strategy")
	}
	if p.MealPlan == nil {
		return fmt.Errorf("plan is missing meal plan")
	}
	if p.WorkoutPlan == nil {
		return fmt.Errorf("plan is missing workout plan")
	}
	if p.SupplementRecommendations == nil {
		return fmt.Errorf("plan is missing supplement recommendations")
	}
	return nil
}

// ProgressPhotos are the optional check-in photos, one per angle.
type ProgressPhotos struct {
	Front string `json:"front"`
	Side  string `json:"side"`
	Back  string `json:"back"`
}

// ProgressEntry is one journal check-in. Entries are created once and
// deleted whole, never updated in place.
type ProgressEntry struct {
	ID       string         `json:"id"`
	Date     time.Time      `json:"date"`
	Weight   float64        `json:"weight"`
	Calories *int           `json:"calories,omitempty"`
	Photos   ProgressPhotos `json:"photos"`
	Notes    string         `json:"notes"`
}

// ExerciseLog is what the user recorded for one exercise of one
// training day. A log is created lazily with zero values the first
// time any field is written.
type ExerciseLog struct {
	Completed bool   `json:"completed"`
	Weight    string `json:"weight"`
	Reps      string `json:"reps"`
	Notes     string `json:"notes,omitempty"`
}

// LogKey identifies one exercise log by training day and exercise
// position. Keeping the two indices explicit avoids any ambiguity of
// concatenated string keys.
type LogKey struct {
	Day      int
	Exercise int
}

func (k LogKey) String() string {
	return fmt.Sprintf("%d-%d", k.Day, k.Exercise)
}

// Less defines a total order over keys, by day then exercise.
func (k LogKey) Less(other LogKey) bool {
	if k.Day != other.Day {
		return k.Day < other.Day
	}
	return k.Exercise < other.Exercise
}

// WorkoutLogs is the full cross-day log collection: exercise logs
// keyed by (day, exercise) plus per-day warm-up and stretching flags.
// It serializes to a single flat JSON object with "{day}-{exercise}",
// "warmup-{day}" and "stretching-{day}" keys so that one storage key
// holds the whole collection.
type WorkoutLogs struct {
	Exercises  map[LogKey]ExerciseLog
	Warmup     map[int]bool
	Stretching map[int]bool
}

// NewWorkoutLogs returns an empty, ready-to-use collection.
func NewWorkoutLogs() WorkoutLogs {
	return WorkoutLogs{
		Exercises:  make(map[LogKey]ExerciseLog),
		Warmup:     make(map[int]bool),
		Stretching: make(map[int]bool),
	}
}

func (w WorkoutLogs) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(w.Exercises)+len(w.Warmup)+len(w.Stretching))
	for key, log := range w.Exercises {
		flat[key.String()] = log
	}
	for day, done := range w.Warmup {
		flat[fmt.Sprintf("warmup-%d", day)] = done
	}
	for day, done := range w.Stretching {
		flat[fmt.Sprintf("stretching-%d", day)] = done
	}
	return json.Marshal(flat)
}

func (w *WorkoutLogs) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	*w = NewWorkoutLogs()
	for key, raw := range flat {
		var day int
		if _, err := fmt.Sscanf(key, "warmup-%d", &day); err == nil {
			var done bool
			if err := json.Unmarshal(raw, &done); err == nil {
				w.Warmup[day] = done
			}
			continue
		}
		if _, err := fmt.Sscanf(key, "stretching-%d", &day); err == nil {
			var done bool
			if err := json.Unmarshal(raw, &done); err == nil {
				w.Stretching[day] = done
			}
			continue
		}

		var exercise int
		if n, err := fmt.Sscanf(key, "%d-%d", &day, &exercise); err == nil && n == 2 {
			var log ExerciseLog
			if err := json.Unmarshal(raw, &log); err == nil {
				w.Exercises[LogKey{Day: day, Exercise: exercise}] = log
			}
		}
		// Unrecognized keys are dropped rather than failing the load.
	}
	return nil
}
