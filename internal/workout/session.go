package workout

import (
	"context"
	"strings"
	"sync"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
)

// WarmupPosition is the session position before the first exercise.
const WarmupPosition = -1

// WarmupSuggestion is the cardio and mobility advice shown during the
// warm-up phase.
type WarmupSuggestion struct {
	Cardio   string
	Mobility string
}

// SuggestWarmup derives warm-up advice from the training day's focus
// label. Matching is case-insensitive substring search over a small
// fixed keyword set; an unknown focus gets the generic suggestion.
// The derivation is pure.
func SuggestWarmup(focus string) WarmupSuggestion {
	lowered := strings.ToLower(focus)

	suggestion := WarmupSuggestion{
		Cardio:   "5-10 min de caminhada rápida ou elíptico leve.",
		Mobility: "Rotação de ombros, pulsos e pescoço.",
	}

	switch {
	case containsAny(lowered, "perna", "inferior", "agachamento"):
		suggestion.Cardio = "5-10 min de bicicleta ou esteira inclinada."
		suggestion.Mobility = "Agachamento com peso do corpo, mobilidade de quadril e tornozelo."
	case containsAny(lowered, "peito", "costas", "superior"):
		suggestion.Cardio = "5 min de Remo ou Elíptico (usando braços)."
		suggestion.Mobility = "Rotação de tronco, alongamento dinâmico de peitoral e ombros com elástico."
	}

	return suggestion
}

func containsAny(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Session drives one training day through warm-up and its exercises.
// The position starts at the warm-up phase (-1) and walks forward to
// the last exercise; advancing past it completes the session.
type Session struct {
	mu sync.Mutex

	day      domain.WorkoutDay
	dayIndex int
	position int
	timer    Timer
	logs     *services.WorkoutLogService
}

// NewSession starts a session for one training day at the warm-up
// phase.
func NewSession(day domain.WorkoutDay, dayIndex int, logs *services.WorkoutLogService) *Session {
	return &Session{
		day:      day,
		dayIndex: dayIndex,
		position: WarmupPosition,
		logs:     logs,
	}
}

// Day returns the training day this session runs.
func (s *Session) Day() domain.WorkoutDay {
	return s.day
}

// DayIndex returns the training day index within the plan.
func (s *Session) DayIndex() int {
	return s.dayIndex
}

// Position returns the current position: -1 during warm-up, otherwise
// the current exercise index.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// InWarmup reports whether the session is in the warm-up phase.
func (s *Session) InWarmup() bool {
	return s.Position() == WarmupPosition
}

// CurrentExercise returns the exercise at the current position, or nil
// during warm-up.
func (s *Session) CurrentExercise() *domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == WarmupPosition || s.position >= len(s.day.Exercises) {
		return nil
	}
	exercise := s.day.Exercises[s.position]
	return &exercise
}

// Next advances the position and resets the rest timer. At the last
// exercise it reports completion instead of moving.
func (s *Session) Next() (done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position < len(s.day.Exercises)-1 {
		s.position++
		s.timer.Reset()
		return false
	}
	return true
}

// Previous moves back one position and resets the timer; it never goes
// below the warm-up phase.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position > WarmupPosition {
		s.position--
		s.timer.Reset()
	}
}

// Timer exposes the session's rest/cardio timer.
func (s *Session) Timer() *Timer {
	return &s.timer
}

// CurrentLog returns what was recorded for the exercise at the current
// position; the zero log during warm-up.
func (s *Session) CurrentLog() domain.ExerciseLog {
	s.mu.Lock()
	position := s.position
	s.mu.Unlock()
	if position == WarmupPosition {
		return domain.ExerciseLog{}
	}
	return s.logs.Exercise(domain.LogKey{Day: s.dayIndex, Exercise: position})
}

// SetCompleted records completion for the exercise at the current
// position. Ignored during warm-up.
func (s *Session) SetCompleted(ctx context.Context, completed bool) error {
	return s.updateCurrent(ctx, services.ExerciseUpdate{Completed: &completed})
}

// SetWeight records the weight used for the current exercise.
func (s *Session) SetWeight(ctx context.Context, weight string) error {
	return s.updateCurrent(ctx, services.ExerciseUpdate{Weight: &weight})
}

// SetReps records the reps performed for the current exercise.
func (s *Session) SetReps(ctx context.Context, reps string) error {
	return s.updateCurrent(ctx, services.ExerciseUpdate{Reps: &reps})
}

// SetNotes records free-text notes for the current exercise.
func (s *Session) SetNotes(ctx context.Context, notes string) error {
	return s.updateCurrent(ctx, services.ExerciseUpdate{Notes: &notes})
}

func (s *Session) updateCurrent(ctx context.Context, update services.ExerciseUpdate) error {
	s.mu.Lock()
	position := s.position
	s.mu.Unlock()
	if position == WarmupPosition {
		return nil
	}
	return s.logs.UpdateExercise(ctx, domain.LogKey{Day: s.dayIndex, Exercise: position}, update)
}

// ToggleWarmup flips the day's warm-up-done flag.
func (s *Session) ToggleWarmup(ctx context.Context) (bool, error) {
	return s.logs.ToggleWarmup(ctx, s.dayIndex)
}

// ToggleStretching flips the day's stretching-done flag.
func (s *Session) ToggleStretching(ctx context.Context) (bool, error) {
	return s.logs.ToggleStretching(ctx, s.dayIndex)
}

// WarmupDone reports the day's warm-up flag.
func (s *Session) WarmupDone() bool {
	return s.logs.WarmupDone(s.dayIndex)
}

// StretchingDone reports the day's stretching flag.
func (s *Session) StretchingDone() bool {
	return s.logs.StretchingDone(s.dayIndex)
}
