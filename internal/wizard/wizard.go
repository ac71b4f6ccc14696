package wizard

import (
	"context"
	"fmt"
	"sync"

	"github.com/leandrotelles/nutricoach-bot/internal/apperrors"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
)

// Step is the current position in the assessment flow.
type Step int

const (
	StepWelcome Step = iota
	StepBasics
	StepPhotos
	StepAssessment
	StepRoutine
	StepNutrition
	StepPreferences
	StepTraining
	StepSupplements
	StepRegister
	StepGenerating
	StepResults
	StepDashboard
	StepWorkoutSession
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepBasics:
		return "basics"
	case StepPhotos:
		return "photos"
	case StepAssessment:
		return "assessment"
	case StepRoutine:
		return "routine"
	case StepNutrition:
		return "nutrition"
	case StepPreferences:
		return "preferences"
	case StepTraining:
		return "training"
	case StepSupplements:
		return "supplements"
	case StepRegister:
		return "register"
	case StepGenerating:
		return "generating"
	case StepResults:
		return "results"
	case StepDashboard:
		return "dashboard"
	case StepWorkoutSession:
		return "workout_session"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// MeasurementsUpdate is a typed partial update of the transient
// measurements buffer.
type MeasurementsUpdate struct {
	Neck      *string
	Shoulders *string
	Chest     *string
	Arms      *string
	Waist     *string
	Hips      *string
	Thigh     *string
	Calf      *string
}

// Wizard owns the step sequencing, per-step validation gating and the
// generate-plan transition for one user. Field writes go straight to
// the profile service (persisted on every mutation); measurements are
// buffered and only committed when the user advances past the
// assessment step.
type Wizard struct {
	mu sync.Mutex

	profiles  *services.ProfileService
	plans     *services.PlanService
	generator domain.PlanGenerator

	step         Step
	measurements domain.Measurements
	email        string
	password     string
	generating   bool
	errMsg       string
	activeDay    int
}

// New hydrates a wizard for one user. A previously committed
// measurements record pre-fills the editing buffer.
func New(profiles *services.ProfileService, plans *services.PlanService, generator domain.PlanGenerator) *Wizard {
	w := &Wizard{
		profiles:  profiles,
		plans:     plans,
		generator: generator,
		step:      StepWelcome,
		activeDay: -1,
	}
	if m := profiles.Profile().Measurements; m != nil {
		w.measurements = *m
	}
	return w
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Profile returns the current profile snapshot.
func (w *Wizard) Profile() domain.UserProfile {
	return w.profiles.Profile()
}

// Plan returns the last generated plan, or nil.
func (w *Wizard) Plan() *domain.Plan {
	return w.plans.Plan()
}

// ErrorMessage returns the user-visible generation error, if any.
func (w *Wizard) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Begin enters the assessment from the welcome screen.
func (w *Wizard) Begin() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepWelcome {
		w.step = StepBasics
	}
}

// Blocked reports whether advancing is currently refused: a required
// field is empty for the current step or a generation request is in
// flight.
func (w *Wizard) Blocked() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blockedLocked()
}

func (w *Wizard) blockedLocked() bool {
	if w.generating {
		return true
	}
	switch w.step {
	case StepBasics:
		return w.profiles.Profile().Name == ""
	case StepRegister:
		return w.email == "" || w.password == ""
	default:
		return false
	}
}

// Advance moves to the next step in sequence. Leaving the assessment
// step first commits the measurements buffer into the profile.
// Advancing from the register step triggers plan generation instead of
// a sequential move.
func (w *Wizard) Advance(ctx context.Context) error {
	w.mu.Lock()

	if w.blockedLocked() {
		w.mu.Unlock()
		return apperrors.ErrAdvanceBlocked
	}

	switch {
	case w.step == StepWelcome:
		w.step = StepBasics
		w.mu.Unlock()
		return nil
	case w.step == StepAssessment:
		m := w.measurements
		w.step++
		w.mu.Unlock()
		return w.profiles.SetMeasurements(ctx, m)
	case w.step == StepRegister:
		w.mu.Unlock()
		return w.Generate(ctx)
	case w.step < StepRegister:
		w.step++
		w.mu.Unlock()
		return nil
	default:
		// Results, dashboard and the workout session are reached by
		// explicit navigation, never by sequential advance.
		w.mu.Unlock()
		return nil
	}
}

// Retreat moves to the previous step. It is a no-op at the basics
// step: the welcome screen is a one-way entry.
func (w *Wizard) Retreat() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBasics && w.step <= StepRegister {
		w.step--
	}
}

// UpdateProfile merges a typed partial update into the profile.
func (w *Wizard) UpdateProfile(ctx context.Context, update services.ProfileUpdate) error {
	return w.profiles.Apply(ctx, update)
}

// UpdateMeasurements merges into the transient buffer only; nothing is
// committed to the profile until the assessment step is advanced past.
func (w *Wizard) UpdateMeasurements(update MeasurementsUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := &w.measurements
	if update.Neck != nil {
		m.Neck = *update.Neck
	}
	if update.Shoulders != nil {
		m.Shoulders = *update.Shoulders
	}
	if update.Chest != nil {
		m.Chest = *update.Chest
	}
	if update.Arms != nil {
		m.Arms = *update.Arms
	}
	if update.Waist != nil {
		m.Waist = *update.Waist
	}
	if update.Hips != nil {
		m.Hips = *update.Hips
	}
	if update.Thigh != nil {
		m.Thigh = *update.Thigh
	}
	if update.Calf != nil {
		m.Calf = *update.Calf
	}
}

// Measurements returns the transient editing buffer.
func (w *Wizard) Measurements() domain.Measurements {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.measurements
}

// SetCredentials records the registration fields gating the final
// advance.
func (w *Wizard) SetCredentials(email, password string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.email = email
	w.password = password
}

// SetEmail records the registration e-mail.
func (w *Wizard) SetEmail(email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.email = email
}

// SetPassword records the registration password.
func (w *Wizard) SetPassword(password string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.password = password
}

// Generate snapshots the profile merged with the measurements buffer
// and calls the plan generator. Success stores the plan and moves to
// the results step; failure sets a user-visible message and returns to
// the register step with no plan stored. A second call while one is in
// flight is refused.
func (w *Wizard) Generate(ctx context.Context) error {
	w.mu.Lock()
	if w.generating {
		w.mu.Unlock()
		return apperrors.ErrGenerationInFlight
	}
	w.generating = true
	w.errMsg = ""
	w.step = StepGenerating

	// Snapshot at call time; later profile writes must not race with
	// the in-flight request.
	snapshot := w.profiles.Profile()
	m := w.measurements
	snapshot.Measurements = &m
	w.mu.Unlock()

	plan, err := w.generator.GeneratePlan(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false

	if err != nil {
		logger.Error("Plan generation failed", "error", err)
		w.errMsg = "Falha ao gerar o plano. Verifique sua chave de API ou tente novamente."
		w.step = StepRegister
		return err
	}

	if err := w.plans.Save(ctx, plan); err != nil {
		w.errMsg = "Falha ao salvar o plano. Tente novamente."
		w.step = StepRegister
		return err
	}

	w.step = StepResults
	return nil
}

// Reset returns to the welcome screen, restores the profile to
// defaults and discards the stored plan. The progress journal and
// exercise logs are untouched.
func (w *Wizard) Reset(ctx context.Context) error {
	w.mu.Lock()
	w.step = StepWelcome
	w.measurements = domain.Measurements{}
	w.email = ""
	w.password = ""
	w.errMsg = ""
	w.activeDay = -1
	w.mu.Unlock()

	if err := w.profiles.Reset(ctx); err != nil {
		return err
	}
	return w.plans.Clear(ctx)
}

// OpenDashboard navigates to the progress dashboard.
func (w *Wizard) OpenDashboard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDashboard
}

// OpenWelcome navigates back to the welcome screen.
func (w *Wizard) OpenWelcome() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepWelcome
}

// OpenResults navigates to the results view; refused without a plan.
func (w *Wizard) OpenResults() error {
	if w.plans.Plan() == nil {
		return apperrors.ErrNoPlan
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepResults
	return nil
}

// StartWorkout enters the workout session for one training day of the
// current plan.
func (w *Wizard) StartWorkout(dayIndex int) error {
	plan := w.plans.Plan()
	if plan == nil {
		return apperrors.ErrNoPlan
	}
	if dayIndex < 0 || dayIndex >= len(plan.WorkoutPlan) {
		return apperrors.NewValidationError(fmt.Sprintf("training day %d does not exist", dayIndex))
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activeDay = dayIndex
	w.step = StepWorkoutSession
	return nil
}

// ActiveDay is the selected training day index, -1 when no session is
// active.
func (w *Wizard) ActiveDay() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.activeDay
}

// FinishWorkout leaves the session and returns to results.
func (w *Wizard) FinishWorkout() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activeDay = -1
	w.step = StepResults
}
