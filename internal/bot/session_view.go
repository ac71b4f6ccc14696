package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/leandrotelles/nutricoach-bot/internal/bot/keyboards"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
	"github.com/leandrotelles/nutricoach-bot/internal/utils"
	"github.com/leandrotelles/nutricoach-bot/internal/workout"
)

func (b *Bot) sendResults(chatID int64, st *userState) error {
	plan := st.wizard.Plan()
	if plan == nil {
		return b.sendText(chatID, "Você ainda não tem um plano. Complete a avaliação primeiro.")
	}

	var sb strings.Builder
	sb.WriteString("🎉 Seu plano personalizado está pronto!\n\n")
	sb.WriteString("🥗 Estratégia nutricional:\n")
	sb.WriteString(utils.Truncate(plan.NutritionStrategy, 500))
	sb.WriteString("\n\n🏋️ Estratégia de treino:\n")
	sb.WriteString(utils.Truncate(plan.WorkoutStrategy, 500))
	sb.WriteString(fmt.Sprintf("\n\n🎯 Macros diários: %.0fP / %.0fC / %.0fG, %.0f kcal\n",
		plan.DailyMacros.Protein, plan.DailyMacros.Carbs, plan.DailyMacros.Fats, plan.DailyMacros.Calories))

	if len(plan.MealPlan) > 0 {
		sb.WriteString("\n🍽️ Refeições:\n")
		for _, meal := range plan.MealPlan {
			line := fmt.Sprintf("• %s (%s)", meal.Name, meal.Time)
			if meal.Macros != nil {
				line += fmt.Sprintf(" - %.0f kcal", meal.Macros.Calories)
			}
			sb.WriteString(line + "\n")
		}
	}
	if len(plan.SupplementRecommendations) > 0 {
		sb.WriteString("\n💊 Suplementos:\n")
		for _, rec := range plan.SupplementRecommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	var logged []string
	for i, day := range plan.WorkoutPlan {
		if summary := dayLogSummary(st.logs, i, day); summary != "" {
			logged = append(logged, summary)
		}
	}
	if len(logged) > 0 {
		sb.WriteString("\n📒 Registro de treinos:\n")
		sb.WriteString(strings.Join(logged, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\nEscolha um dia de treino para começar:")

	return b.sendMessage(chatID, sb.String(), keyboards.Results(plan))
}

// dayLogSummary renders the logged history of one training day for the
// plan view. The log collection is only read here; all writes happen
// inside an active session. Empty when the day has no logs yet.
func dayLogSummary(logs *services.WorkoutLogService, dayIndex int, day domain.WorkoutDay) string {
	completed := 0
	lines := []string{}
	for i, exercise := range day.Exercises {
		log := logs.Exercise(domain.LogKey{Day: dayIndex, Exercise: i})
		if log.Completed {
			completed++
		}
		if log == (domain.ExerciseLog{}) {
			continue
		}
		line := "  " + checkmark(log.Completed) + " " + exercise.Name
		if log.Weight != "" {
			line += " · " + log.Weight
		}
		if log.Reps != "" {
			line += " · " + log.Reps + " reps"
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 && !logs.WarmupDone(dayIndex) && !logs.StretchingDone(dayIndex) {
		return ""
	}

	header := fmt.Sprintf("%s (%s): %d/%d concluídos", day.Day, day.Focus, completed, len(day.Exercises))
	if logs.WarmupDone(dayIndex) {
		header += " · 🔥 aquecimento"
	}
	if logs.StretchingDone(dayIndex) {
		header += " · 🧘 alongamento"
	}
	return strings.Join(append([]string{header}, lines...), "\n")
}

// renderSession draws the workout session at its current position.
func (b *Bot) renderSession(chatID int64, st *userState) error {
	session := st.session
	if session == nil {
		return b.sendText(chatID, "Nenhum treino em andamento. Escolha um dia no seu plano.")
	}

	day := session.Day()
	timer := session.Timer()
	timerLine := fmt.Sprintf("⏱ %s", workout.FormatSeconds(timer.Seconds()))
	if timer.Running() {
		timerLine += " (rodando)"
	}

	if session.InWarmup() {
		suggestion := workout.SuggestWarmup(day.Focus)
		text := fmt.Sprintf(`🔥 Aquecimento: %s (%s)

Cardio: %s
Mobilidade: %s

Aquecimento: %s
Alongamento: %s

%s`,
			day.Day, day.Focus,
			suggestion.Cardio, suggestion.Mobility,
			checkmark(session.WarmupDone()), checkmark(session.StretchingDone()),
			timerLine)
		return b.sendMessage(chatID, text, keyboards.Session(true, false))
	}

	exercise := session.CurrentExercise()
	if exercise == nil {
		return b.sendText(chatID, "Nenhum exercício nessa posição.")
	}
	log := session.CurrentLog()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏋️ %s (%d/%d)\n\n", exercise.Name, session.Position()+1, len(day.Exercises)))
	sb.WriteString(fmt.Sprintf("Séries: %d × %s\n", exercise.Sets, exercise.Reps))
	if exercise.Notes != "" {
		sb.WriteString("Dica: " + exercise.Notes + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nConcluído: %s\n", checkmark(log.Completed)))
	if log.Weight != "" {
		sb.WriteString("Carga: " + log.Weight + "\n")
	}
	if log.Reps != "" {
		sb.WriteString("Reps feitas: " + log.Reps + "\n")
	}
	if log.Notes != "" {
		sb.WriteString("Notas: " + log.Notes + "\n")
	}
	sb.WriteString("\n" + timerLine)

	isLast := session.Position() == len(day.Exercises)-1
	return b.sendMessage(chatID, sb.String(), keyboards.Session(false, isLast))
}

func (b *Bot) handleSessionCallback(ctx context.Context, chatID int64, st *userState, data string) (bool, error) {
	if strings.HasPrefix(data, "workout:") {
		index, err := strconv.Atoi(strings.TrimPrefix(data, "workout:"))
		if err != nil {
			return true, b.sendText(chatID, "Dia de treino inválido.")
		}
		return true, b.startWorkout(ctx, chatID, st, index)
	}

	if st.session == nil {
		switch data {
		case "sess_next", "sess_prev", "sess_complete", "sess_weight", "sess_reps", "sess_notes",
			"sess_warmup", "sess_stretch", "sess_close", "timer_toggle", "timer_reset":
			return true, b.sendText(chatID, "Nenhum treino em andamento.")
		}
		if strings.HasPrefix(data, "timer_preset:") {
			return true, b.sendText(chatID, "Nenhum treino em andamento.")
		}
		return false, nil
	}

	switch data {
	case "sess_next":
		if done := st.session.Next(); done {
			return true, b.finishWorkout(ctx, chatID, st, true)
		}
		return true, b.renderSession(chatID, st)

	case "sess_prev":
		st.session.Previous()
		return true, b.renderSession(chatID, st)

	case "sess_complete":
		completed := !st.session.CurrentLog().Completed
		if err := st.session.SetCompleted(ctx, completed); err != nil {
			return true, err
		}
		return true, b.renderSession(chatID, st)

	case "sess_weight":
		st.await = awaitSessionWeight
		return true, b.sendText(chatID, "⚖️ Qual carga você usou? (ex: 40kg)")

	case "sess_reps":
		st.await = awaitSessionReps
		return true, b.sendText(chatID, "🔁 Quantas repetições você fez? (ex: 12,10,8)")

	case "sess_notes":
		st.await = awaitSessionNotes
		return true, b.sendText(chatID, "📝 Envie suas notas sobre este exercício (texto ou áudio).")

	case "sess_warmup":
		if _, err := st.session.ToggleWarmup(ctx); err != nil {
			return true, err
		}
		return true, b.renderSession(chatID, st)

	case "sess_stretch":
		if _, err := st.session.ToggleStretching(ctx); err != nil {
			return true, err
		}
		return true, b.renderSession(chatID, st)

	case "sess_close":
		return true, b.finishWorkout(ctx, chatID, st, false)

	case "timer_toggle":
		st.session.Timer().Toggle()
		return true, b.renderSession(chatID, st)

	case "timer_reset":
		st.session.Timer().Reset()
		return true, b.renderSession(chatID, st)
	}

	if strings.HasPrefix(data, "timer_preset:") {
		seconds, err := strconv.Atoi(strings.TrimPrefix(data, "timer_preset:"))
		if err != nil {
			return true, b.sendText(chatID, "Preset inválido.")
		}
		st.session.Timer().SetPreset(seconds)
		return true, b.renderSession(chatID, st)
	}

	return false, nil
}

func (b *Bot) startWorkout(ctx context.Context, chatID int64, st *userState, dayIndex int) error {
	if err := st.wizard.StartWorkout(dayIndex); err != nil {
		return b.sendText(chatID, "Não consegui abrir esse dia de treino.")
	}

	plan := st.wizard.Plan()
	st.session = workout.NewSession(plan.WorkoutPlan[dayIndex], dayIndex, st.logs)
	b.startSessionTicker(st)
	st.notifier.ScheduleWaterReminder()
	return b.renderSession(chatID, st)
}

func (b *Bot) finishWorkout(ctx context.Context, chatID int64, st *userState, completed bool) error {
	b.stopSessionTicker(st)
	st.session = nil
	st.await = awaitNone
	st.wizard.FinishWorkout()

	if completed {
		if err := b.sendText(chatID, "🏁 Treino concluído! Excelente trabalho. 💪"); err != nil {
			return err
		}
	}
	return b.sendResults(chatID, st)
}

func (b *Bot) handleSessionText(ctx context.Context, chatID int64, st *userState, text string) (bool, error) {
	if st.session == nil {
		return false, nil
	}

	switch st.await {
	case awaitSessionWeight:
		st.await = awaitNone
		if err := st.session.SetWeight(ctx, text); err != nil {
			return true, err
		}
	case awaitSessionReps:
		st.await = awaitNone
		if err := st.session.SetReps(ctx, text); err != nil {
			return true, err
		}
	case awaitSessionNotes:
		st.await = awaitNone
		if err := st.session.SetNotes(ctx, text); err != nil {
			return true, err
		}
	default:
		return false, nil
	}
	return true, b.renderSession(chatID, st)
}

func checkmark(done bool) string {
	if done {
		return "✅"
	}
	return "◻️"
}
