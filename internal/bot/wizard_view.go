package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leandrotelles/nutricoach-bot/internal/bot/keyboards"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
	"github.com/leandrotelles/nutricoach-bot/internal/utils"
	"github.com/leandrotelles/nutricoach-bot/internal/wizard"
)

// narrativeField describes one free-text assessment question.
type narrativeField struct {
	prompt  string
	context string
	get     func(domain.UserProfile) string
	set     func(string) services.ProfileUpdate
}

var narrativeFields = map[string]narrativeField{
	awaitRoutine: {
		prompt:  "🕐 Descreva sua rotina diária: horários de trabalho, sono, refeições e deslocamentos.",
		context: "Rotina diária do cliente",
		get:     func(p domain.UserProfile) string { return p.DailyRoutine },
		set:     func(v string) services.ProfileUpdate { return services.ProfileUpdate{DailyRoutine: &v} },
	},
	awaitDiet: {
		prompt:  "🍽️ Como é sua alimentação atual? Descreva um dia típico de refeições.",
		context: "Dieta atual do cliente",
		get:     func(p domain.UserProfile) string { return p.CurrentDiet },
		set:     func(v string) services.ProfileUpdate { return services.ProfileUpdate{CurrentDiet: &v} },
	},
	awaitSubstitutions: {
		prompt:  "🔄 Quais substituições de alimentos você costuma fazer? (Envie \"-\" se nenhuma.)",
		context: "Substituições alimentares usuais",
		get:     func(p domain.UserProfile) string { return p.FoodSubstitutions },
		set: func(v string) services.ProfileUpdate {
			return services.ProfileUpdate{FoodSubstitutions: &v}
		},
	},
	awaitPreferences: {
		prompt:  "😋 Quais alimentos você ama e quais não tolera?",
		context: "Preferências e aversões alimentares",
		get:     func(p domain.UserProfile) string { return p.FoodPreferences },
		set:     func(v string) services.ProfileUpdate { return services.ProfileUpdate{FoodPreferences: &v} },
	},
	awaitTraining: {
		prompt:  "🏋️ Como é seu treino atual? Frequência, divisão e há quanto tempo treina.",
		context: "Rotina de treino atual",
		get:     func(p domain.UserProfile) string { return p.WorkoutRoutine },
		set:     func(v string) services.ProfileUpdate { return services.ProfileUpdate{WorkoutRoutine: &v} },
	},
	awaitSupplements: {
		prompt:  "💊 Quais suplementos você usa hoje? (Envie \"-\" se nenhum.)",
		context: "Suplementação atual",
		get:     func(p domain.UserProfile) string { return p.Supplementation },
		set:     func(v string) services.ProfileUpdate { return services.ProfileUpdate{Supplementation: &v} },
	},
}

// stepNarrativeAwait maps a wizard step to the first free-text question
// it collects.
func stepNarrativeAwait(step wizard.Step) string {
	switch step {
	case wizard.StepRoutine:
		return awaitRoutine
	case wizard.StepNutrition:
		return awaitDiet
	case wizard.StepPreferences:
		return awaitPreferences
	case wizard.StepTraining:
		return awaitTraining
	case wizard.StepSupplements:
		return awaitSupplements
	default:
		return awaitNone
	}
}

func (b *Bot) sendWelcome(chatID int64, st *userState) error {
	hasDraft := st.wizard.Profile().Name != ""
	text := `💪 NutriCoach AI

Seu nutricionista e personal trainer pessoal, movido a IA.

Responda uma avaliação completa e receba um plano de nutrição e treino feito sob medida para você.`
	return b.sendMessage(chatID, text, keyboards.Welcome(hasDraft))
}

// promptStep renders the wizard's current step and arms the matching
// input state.
func (b *Bot) promptStep(ctx context.Context, chatID int64, st *userState) error {
	switch step := st.wizard.Step(); step {
	case wizard.StepWelcome:
		st.await = awaitNone
		return b.sendWelcome(chatID, st)

	case wizard.StepBasics:
		if st.wizard.Profile().Name == "" {
			st.await = awaitName
			return b.sendText(chatID, "👤 Vamos começar! Qual é o seu nome?")
		}
		return b.sendBasicsSummary(chatID, st)

	case wizard.StepPhotos:
		st.await = awaitNone
		return b.sendMessage(chatID,
			"📸 Envie até 3 fotos para a avaliação: de frente, de lado e de costas, nessa ordem.\n\nEssa etapa é opcional; toque em Próximo para pular.",
			keyboards.StepNav(true, false))

	case wizard.StepAssessment:
		st.await = awaitMeasureNeck
		return b.sendText(chatID,
			"📏 Hora das medidas corporais, em centímetros. Envie \"-\" para pular qualquer uma.\n\nPescoço:")

	case wizard.StepRoutine, wizard.StepNutrition, wizard.StepPreferences,
		wizard.StepTraining, wizard.StepSupplements:
		st.await = stepNarrativeAwait(step)
		return b.sendNarrativePrompt(chatID, st)

	case wizard.StepRegister:
		return b.sendRegister(chatID, st)

	case wizard.StepGenerating:
		st.await = awaitNone
		return b.sendText(chatID, "✨ Gerando seu plano personalizado... Isso pode levar alguns segundos. ⏳")

	case wizard.StepResults:
		st.await = awaitNone
		return b.sendResults(chatID, st)

	case wizard.StepDashboard:
		st.await = awaitNone
		return b.sendDashboard(chatID, st)

	case wizard.StepWorkoutSession:
		st.await = awaitNone
		return b.renderSession(chatID, st)
	}
	return nil
}

func (b *Bot) sendBasicsSummary(chatID int64, st *userState) error {
	p := st.wizard.Profile()
	st.await = awaitNone
	text := fmt.Sprintf(`👤 Dados básicos

Nome: %s
Idade: %s
Altura: %s cm
Peso: %s kg
Gênero: %s
Objetivo: %s
Instagram: %s

Você pode ajustar esses dados a qualquer momento em ⚙️ Editar Perfil. Tudo certo?`,
		p.Name, orNone(p.Age), orNone(p.Height), orNone(p.CurrentWeight),
		genderLabel(p.Gender), goalLabel(p.Goal), orNone(p.Instagram))
	return b.sendMessage(chatID, text, keyboards.StepNav(false, false))
}

func (b *Bot) sendNarrativePrompt(chatID int64, st *userState) error {
	field, ok := narrativeFields[st.await]
	if !ok {
		return nil
	}

	text := field.prompt
	current := field.get(st.wizard.Profile())
	rows := [][]tgbotapi.InlineKeyboardButton{}
	if current != "" {
		text += fmt.Sprintf("\n\nResposta atual:\n%s\n\nEnvie um novo texto para substituir, ou um áudio para complementar.", utils.Truncate(current, 600))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✨ Melhorar texto com IA", "refine"),
		))
	}
	nav := keyboards.StepNav(true, false)
	rows = append(rows, nav.InlineKeyboard...)
	return b.sendMessage(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendRegister(chatID int64, st *userState) error {
	st.await = awaitEmail
	text := "🔐 Última etapa! Informe seu e-mail para criar sua conta:"
	if msg := st.wizard.ErrorMessage(); msg != "" {
		text = "⚠️ " + msg + "\n\n" + text
	}
	return b.sendText(chatID, text)
}

func (b *Bot) handleWizardCallback(ctx context.Context, chatID int64, st *userState, data string) (bool, error) {
	switch {
	case data == "begin":
		st.wizard.Begin()
		return true, b.promptStep(ctx, chatID, st)

	case data == "next":
		return true, b.advance(ctx, chatID, st)

	case data == "back":
		st.wizard.Retreat()
		return true, b.promptStep(ctx, chatID, st)

	case strings.HasPrefix(data, "gender:"):
		gender := domain.Gender(strings.TrimPrefix(data, "gender:"))
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Gender: &gender}); err != nil {
			return true, err
		}
		return true, b.sendMessage(chatID, "🎯 Qual é o seu objetivo principal?", keyboards.Goal())

	case strings.HasPrefix(data, "goal:"):
		goal := domain.Goal(strings.TrimPrefix(data, "goal:"))
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Goal: &goal}); err != nil {
			return true, err
		}
		st.await = awaitInstagram
		return true, b.sendText(chatID, "📱 Qual é o seu Instagram? (Envie \"-\" para pular.)")

	case data == "refine":
		return true, b.refineCurrent(ctx, chatID, st)

	case data == "reset":
		return true, b.sendMessage(chatID,
			"Recomeçar apaga seu perfil e seu plano atual. Seu histórico de progresso é mantido. Confirma?",
			confirmResetKeyboard())

	case data == "reset_confirm":
		st.await = awaitNone
		if err := st.wizard.Reset(ctx); err != nil {
			return true, err
		}
		return true, b.sendWelcome(chatID, st)

	case data == "results":
		if err := st.wizard.OpenResults(); err != nil {
			return true, b.sendText(chatID, "Você ainda não tem um plano. Complete a avaliação primeiro.")
		}
		return true, b.sendResults(chatID, st)

	case data == "welcome":
		st.await = awaitNone
		st.wizard.OpenWelcome()
		return true, b.sendWelcome(chatID, st)
	}
	return false, nil
}

// advance runs the wizard's forward transition, reporting the gate
// reason when it refuses.
func (b *Bot) advance(ctx context.Context, chatID int64, st *userState) error {
	if st.wizard.Blocked() {
		switch st.wizard.Step() {
		case wizard.StepBasics:
			st.await = awaitName
			return b.sendText(chatID, "Preciso do seu nome antes de continuar. Qual é o seu nome?")
		case wizard.StepRegister:
			return b.sendRegister(chatID, st)
		default:
			return b.sendText(chatID, "Aguarde, ainda estou processando seu plano...")
		}
	}

	generating := st.wizard.Step() == wizard.StepRegister
	if generating {
		if err := b.sendText(chatID, "✨ Gerando seu plano personalizado... Isso pode levar alguns segundos. ⏳"); err != nil {
			return err
		}
	}

	if err := st.wizard.Advance(ctx); err != nil && !generating {
		return err
	}
	return b.promptStep(ctx, chatID, st)
}

func (b *Bot) refineCurrent(ctx context.Context, chatID int64, st *userState) error {
	field, ok := narrativeFields[st.await]
	if !ok {
		return nil
	}
	current := field.get(st.wizard.Profile())
	if current == "" {
		return b.sendText(chatID, "Nada para melhorar ainda. Envie sua resposta primeiro.")
	}

	refined := b.ai.RefineText(ctx, current, field.context)
	if err := st.wizard.UpdateProfile(ctx, field.set(refined)); err != nil {
		return err
	}
	return b.sendNarrativePrompt(chatID, st)
}

func (b *Bot) handleWizardText(ctx context.Context, chatID int64, st *userState, text string) (bool, error) {
	text = strings.TrimSpace(text)

	switch st.await {
	case awaitName:
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Name: &text}); err != nil {
			return true, err
		}
		st.await = awaitAge
		return true, b.sendText(chatID, "🎂 Qual é a sua idade?")

	case awaitAge:
		if _, err := strconv.Atoi(text); err != nil {
			return true, b.sendText(chatID, "Por favor, envie a idade como um número (ex: 28).")
		}
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Age: &text}); err != nil {
			return true, err
		}
		st.await = awaitHeight
		return true, b.sendText(chatID, "📐 Qual é a sua altura em cm? (ex: 175)")

	case awaitHeight:
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Height: &text}); err != nil {
			return true, err
		}
		st.await = awaitWeight
		return true, b.sendText(chatID, "⚖️ Qual é o seu peso atual em kg, em jejum? (ex: 82.5)")

	case awaitWeight:
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{CurrentWeight: &text}); err != nil {
			return true, err
		}
		st.await = awaitNone
		return true, b.sendMessage(chatID, "🚻 Qual é o seu gênero?", keyboards.Gender())

	case awaitInstagram:
		value := skippable(text)
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{Instagram: &value}); err != nil {
			return true, err
		}
		return true, b.sendBasicsSummary(chatID, st)

	case awaitMeasureNeck, awaitMeasureShoulders, awaitMeasureChest, awaitMeasureArms,
		awaitMeasureWaist, awaitMeasureHips, awaitMeasureThigh, awaitMeasureCalf:
		return true, b.handleMeasurementText(chatID, st, text)

	case awaitRoutine, awaitDiet, awaitSubstitutions, awaitPreferences, awaitTraining, awaitSupplements:
		return true, b.handleNarrativeText(ctx, chatID, st, text)

	case awaitEmail:
		if !strings.Contains(text, "@") {
			return true, b.sendText(chatID, "Esse e-mail não parece válido. Tente novamente.")
		}
		st.wizard.SetEmail(text)
		st.await = awaitPassword
		return true, b.sendText(chatID, "🔑 Agora escolha uma senha:")

	case awaitPassword:
		st.wizard.SetPassword(text)
		st.await = awaitNone
		return true, b.sendMessage(chatID,
			"✅ Conta pronta! Toque em Gerar Plano para receber seu plano personalizado.",
			keyboards.StepNav(true, true))
	}

	return false, nil
}

func (b *Bot) handleMeasurementText(chatID int64, st *userState, text string) error {
	value := skippable(text)

	type measureStep struct {
		apply  func(string) wizard.MeasurementsUpdate
		next   string
		prompt string
	}
	steps := map[string]measureStep{
		awaitMeasureNeck: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Neck: &v} },
			next:  awaitMeasureShoulders, prompt: "Ombros:"},
		awaitMeasureShoulders: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Shoulders: &v} },
			next:  awaitMeasureChest, prompt: "Peitoral:"},
		awaitMeasureChest: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Chest: &v} },
			next:  awaitMeasureArms, prompt: "Braços:"},
		awaitMeasureArms: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Arms: &v} },
			next:  awaitMeasureWaist, prompt: "Cintura:"},
		awaitMeasureWaist: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Waist: &v} },
			next:  awaitMeasureHips, prompt: "Quadril:"},
		awaitMeasureHips: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Hips: &v} },
			next:  awaitMeasureThigh, prompt: "Coxas:"},
		awaitMeasureThigh: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Thigh: &v} },
			next:  awaitMeasureCalf, prompt: "Panturrilhas:"},
		awaitMeasureCalf: {
			apply: func(v string) wizard.MeasurementsUpdate { return wizard.MeasurementsUpdate{Calf: &v} },
			next:  awaitNone},
	}

	step := steps[st.await]
	st.wizard.UpdateMeasurements(step.apply(value))
	st.await = step.next

	if step.next == awaitNone {
		return b.sendMessage(chatID,
			"📏 Medidas anotadas! Elas entram no seu perfil quando você avançar.",
			keyboards.StepNav(true, false))
	}
	return b.sendText(chatID, step.prompt)
}

// handleNarrativeText replaces the field's value with the typed text.
// Voice transcripts go through handleTranscript and append instead.
func (b *Bot) handleNarrativeText(ctx context.Context, chatID int64, st *userState, text string) error {
	field := narrativeFields[st.await]
	value := skippable(text)
	if err := st.wizard.UpdateProfile(ctx, field.set(value)); err != nil {
		return err
	}

	// Nutrition collects two answers before showing the step nav.
	if st.await == awaitDiet {
		st.await = awaitSubstitutions
		return b.sendText(chatID, narrativeFields[awaitSubstitutions].prompt)
	}
	return b.sendNarrativePrompt(chatID, st)
}

// handleTranscript routes a voice transcription: free-text assessment
// fields accumulate, everything else behaves like typed text.
func (b *Bot) handleTranscript(ctx context.Context, chatID int64, st *userState, transcript string) error {
	if field, ok := narrativeFields[st.await]; ok {
		merged := utils.AppendTranscript(field.get(st.wizard.Profile()), transcript)
		if err := st.wizard.UpdateProfile(ctx, field.set(merged)); err != nil {
			return err
		}
		if st.await == awaitDiet {
			st.await = awaitSubstitutions
			return b.sendText(chatID, narrativeFields[awaitSubstitutions].prompt)
		}
		return b.sendNarrativePrompt(chatID, st)
	}
	if st.await == awaitSessionNotes && st.session != nil {
		merged := utils.AppendTranscript(st.session.CurrentLog().Notes, transcript)
		return b.handleText(ctx, chatID, st, merged)
	}
	return b.handleText(ctx, chatID, st, transcript)
}

// handleAssessmentPhoto stores the file reference into the first empty
// photo slot, front to back.
func (b *Bot) handleAssessmentPhoto(ctx context.Context, chatID int64, st *userState, fileID string) error {
	p := st.wizard.Profile()
	var update services.ProfileUpdate
	var label string
	switch {
	case p.PhotoFront == "":
		update, label = services.ProfileUpdate{PhotoFront: &fileID}, "de frente (1/3)"
	case p.PhotoSide == "":
		update, label = services.ProfileUpdate{PhotoSide: &fileID}, "de lado (2/3)"
	case p.PhotoBack == "":
		update, label = services.ProfileUpdate{PhotoBack: &fileID}, "de costas (3/3)"
	default:
		return b.sendText(chatID, "As 3 fotos já foram registradas. Toque em Próximo para continuar.")
	}

	if err := st.wizard.UpdateProfile(ctx, update); err != nil {
		return err
	}
	return b.sendText(chatID, fmt.Sprintf("📸 Foto %s registrada ✅", label))
}

func confirmResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return keyboards.ConfirmReset()
}

// skippable turns the "-" skip marker into an empty value.
func skippable(text string) string {
	if text == "-" {
		return ""
	}
	return text
}

func orNone(value string) string {
	if value == "" {
		return "não informado"
	}
	return value
}

func genderLabel(g domain.Gender) string {
	switch g {
	case domain.GenderMale:
		return "Masculino"
	case domain.GenderFemale:
		return "Feminino"
	default:
		return "Outro"
	}
}

func goalLabel(g domain.Goal) string {
	switch g {
	case domain.GoalLoseWeight:
		return "Perder peso"
	case domain.GoalGainMuscle:
		return "Ganhar massa"
	case domain.GoalMaintain:
		return "Manter / recomposição"
	case domain.GoalPerformance:
		return "Performance atlética"
	default:
		return string(g)
	}
}
