package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leandrotelles/nutricoach-bot/internal/apperrors"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"github.com/leandrotelles/nutricoach-bot/internal/notify"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
	"github.com/leandrotelles/nutricoach-bot/internal/storage"
	"github.com/leandrotelles/nutricoach-bot/internal/wizard"
	"github.com/leandrotelles/nutricoach-bot/internal/workout"
)

// Input states: what the next plain-text message from the user fills.
const (
	awaitNone = ""

	awaitName      = "name"
	awaitAge       = "age"
	awaitHeight    = "height"
	awaitWeight    = "weight"
	awaitInstagram = "instagram"

	awaitMeasureNeck      = "measure_neck"
	awaitMeasureShoulders = "measure_shoulders"
	awaitMeasureChest     = "measure_chest"
	awaitMeasureArms      = "measure_arms"
	awaitMeasureWaist     = "measure_waist"
	awaitMeasureHips      = "measure_hips"
	awaitMeasureThigh     = "measure_thigh"
	awaitMeasureCalf      = "measure_calf"

	awaitRoutine       = "routine"
	awaitDiet          = "diet"
	awaitSubstitutions = "substitutions"
	awaitPreferences   = "preferences"
	awaitTraining      = "training"
	awaitSupplements   = "supplements"

	awaitEmail    = "email"
	awaitPassword = "password"

	awaitCheckinWeight   = "checkin_weight"
	awaitCheckinCalories = "checkin_calories"
	awaitCheckinNotes    = "checkin_notes"
	awaitCheckinPhoto    = "checkin_photo"

	awaitSessionWeight = "session_weight"
	awaitSessionReps   = "session_reps"
	awaitSessionNotes  = "session_notes"

	awaitEditName      = "edit_name"
	awaitEditAge       = "edit_age"
	awaitEditHeight    = "edit_height"
	awaitEditWeight    = "edit_weight"
	awaitEditInstagram = "edit_instagram"
	awaitEditPhoto     = "edit_photo"
)

// checkinDraft collects a new progress entry across several messages.
type checkinDraft struct {
	weight   float64
	calories *int
	notes    string
	photos   domain.ProgressPhotos
}

// userState bundles everything the bot keeps per Telegram user: the
// hydrated services, the assessment wizard, the active workout session
// and the pending-input marker.
type userState struct {
	profiles *services.ProfileService
	plans    *services.PlanService
	progress *services.ProgressService
	logs     *services.WorkoutLogService

	wizard   *wizard.Wizard
	session  *workout.Session
	notifier *notify.Notifier

	await      string
	checkin    checkinDraft
	tickerStop chan struct{}
}

// AIClient is everything the bot needs from the AI collaborator.
type AIClient interface {
	domain.PlanGenerator
	domain.TextRefiner
	domain.VoiceTranscriber
}

// Bot wires Telegram updates to the coaching services.
type Bot struct {
	api   *tgbotapi.BotAPI
	store storage.Store
	ai    AIClient

	mu     sync.Mutex
	states map[int64]*userState
}

func NewBot(token string, store storage.Store, ai AIClient) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:    api,
		store:  store,
		ai:     ai,
		states: make(map[int64]*userState),
	}, nil
}

// state returns the per-user state, hydrating services from storage on
// first contact.
func (b *Bot) state(ctx context.Context, userID int64) *userState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if st, ok := b.states[userID]; ok {
		return st
	}

	profiles := services.NewProfileService(ctx, b.store, userID)
	plans := services.NewPlanService(ctx, b.store, userID)
	st := &userState{
		profiles: profiles,
		plans:    plans,
		progress: services.NewProgressService(ctx, b.store, userID),
		logs:     services.NewWorkoutLogService(ctx, b.store, userID),
	}
	st.wizard = wizard.New(profiles, plans, b.ai)
	st.notifier = notify.NewNotifier(func(n notify.Notice) {
		b.sendText(userID, fmt.Sprintf("🔔 %s\n%s", n.Title, n.Message))
	})
	b.states[userID] = st
	return st
}

func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates...")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down...")
			b.stopAll()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				logger.Error("Error handling update", "error", err)
			}
		}
	}
}

func (b *Bot) stopAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, st := range b.states {
		st.notifier.Stop()
		if st.tickerStop != nil {
			close(st.tickerStop)
			st.tickerStop = nil
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var userID, chatID int64
	if update.Message != nil {
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
	} else {
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	st := b.state(ctx, userID)

	if update.CallbackQuery != nil {
		// Answer first to clear the loading spinner on the button.
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := b.api.Request(callback); err != nil {
			logger.Warn("Failed to answer callback query", "error", err)
		}
		return b.handleCallback(ctx, chatID, st, update.CallbackQuery.Data)
	}

	if update.Message.IsCommand() {
		return b.handleCommand(ctx, chatID, st, update.Message.Command())
	}

	if update.Message.Voice != nil {
		return b.handleVoice(ctx, chatID, st, update.Message.Voice)
	}

	if update.Message.Photo != nil {
		return b.handlePhoto(ctx, chatID, st, update.Message)
	}

	if update.Message.Text != "" {
		return b.handleText(ctx, chatID, st, update.Message.Text)
	}

	return nil
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, st *userState, command string) error {
	switch command {
	case "start":
		st.await = awaitNone
		st.wizard.OpenWelcome()
		return b.sendWelcome(chatID, st)
	case "dashboard":
		st.await = awaitNone
		st.wizard.OpenDashboard()
		return b.sendDashboard(chatID, st)
	case "plano":
		if err := st.wizard.OpenResults(); err != nil {
			return b.sendText(chatID, "Você ainda não tem um plano. Complete a avaliação primeiro.")
		}
		return b.sendResults(chatID, st)
	case "reset":
		return b.sendMessage(chatID,
			"Recomeçar apaga seu perfil e seu plano atual. Seu histórico de progresso é mantido. Confirma?",
			confirmResetKeyboard())
	case "help":
		return b.sendText(chatID, `Comandos disponíveis:
/start - Tela inicial
/dashboard - Acompanhar progresso
/plano - Ver seu plano atual
/reset - Recomeçar a avaliação
/help - Esta mensagem

Durante a avaliação você pode responder por texto ou enviar um áudio; eu transcrevo e anexo ao campo atual.`)
	default:
		return b.sendText(chatID, "Comando desconhecido. Use /help para ver os comandos disponíveis.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, chatID int64, st *userState, data string) error {
	if handled, err := b.handleWizardCallback(ctx, chatID, st, data); handled {
		return err
	}
	if handled, err := b.handleSessionCallback(ctx, chatID, st, data); handled {
		return err
	}
	if handled, err := b.handleDashboardCallback(ctx, chatID, st, data); handled {
		return err
	}
	if handled, err := b.handleSettingsCallback(ctx, chatID, st, data); handled {
		return err
	}
	logger.Warn("Unhandled callback", "data", data)
	return nil
}

func (b *Bot) handleText(ctx context.Context, chatID int64, st *userState, text string) error {
	if handled, err := b.handleWizardText(ctx, chatID, st, text); handled {
		return err
	}
	if handled, err := b.handleSessionText(ctx, chatID, st, text); handled {
		return err
	}
	if handled, err := b.handleDashboardText(ctx, chatID, st, text); handled {
		return err
	}
	if handled, err := b.handleSettingsText(ctx, chatID, st, text); handled {
		return err
	}
	return b.sendText(chatID, "Use os botões do menu para navegar, ou /help para ver os comandos.")
}

// handleVoice transcribes a voice message and appends it to whatever
// free-text field is currently being collected.
func (b *Bot) handleVoice(ctx context.Context, chatID int64, st *userState, voice *tgbotapi.Voice) error {
	if !isNarrativeAwait(st.await) && !isNotesAwait(st.await) {
		return b.sendText(chatID, "Envie áudios apenas quando eu estiver aguardando uma resposta de texto livre.")
	}

	audio, err := b.downloadFile(voice.FileID)
	if err != nil {
		logger.Error("Failed to download voice file", "error", err)
		return b.sendText(chatID, "Não consegui baixar o áudio. Tente novamente.")
	}

	mimeType := voice.MimeType
	if mimeType == "" {
		mimeType = "audio/ogg"
	}

	transcript, err := b.ai.TranscribeVoice(ctx, audio, mimeType)
	if err != nil {
		logger.Error("Voice transcription failed", "error", err)
		if apperrors.IsType(err, apperrors.ErrorTypeCapability) {
			return b.sendText(chatID, "🎙️ A transcrição de voz não está disponível no momento. Responda por texto, por favor.")
		}
		return b.sendText(chatID, "Não consegui transcrever o áudio. Tente novamente ou responda por texto.")
	}

	return b.handleTranscript(ctx, chatID, st, transcript)
}

func (b *Bot) handlePhoto(ctx context.Context, chatID int64, st *userState, message *tgbotapi.Message) error {
	// Largest size last; its file ID is the stored reference.
	photo := message.Photo[len(message.Photo)-1]

	if st.await == awaitCheckinPhoto {
		return b.handleCheckinPhoto(ctx, chatID, st, photo.FileID)
	}
	if st.await == awaitEditPhoto {
		fileID := photo.FileID
		return b.applySetting(ctx, chatID, st, services.ProfileUpdate{ProfilePicture: &fileID})
	}
	switch st.wizard.Step() {
	case wizard.StepPhotos:
		return b.handleAssessmentPhoto(ctx, chatID, st, photo.FileID)
	case wizard.StepRegister:
		fileID := photo.FileID
		if err := st.wizard.UpdateProfile(ctx, services.ProfileUpdate{ProfilePicture: &fileID}); err != nil {
			return err
		}
		return b.sendText(chatID, "🖼️ Foto de perfil registrada ✅")
	}
	return b.sendText(chatID, "Envie fotos na etapa de fotos da avaliação ou ao registrar um check-in.")
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	resp, err := http.Get(file.Link(b.api.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendMessage(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// startSessionTicker drives the rest timer while a workout session is
// on screen. Stopped on session close or shutdown.
func (b *Bot) startSessionTicker(st *userState) {
	if st.tickerStop != nil {
		return
	}
	stop := make(chan struct{})
	st.tickerStop = stop
	session := st.session

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				session.Timer().Tick()
			}
		}
	}()
}

func (b *Bot) stopSessionTicker(st *userState) {
	if st.tickerStop != nil {
		close(st.tickerStop)
		st.tickerStop = nil
	}
}

func isNarrativeAwait(await string) bool {
	switch await {
	case awaitRoutine, awaitDiet, awaitSubstitutions, awaitPreferences, awaitTraining, awaitSupplements:
		return true
	}
	return false
}

func isNotesAwait(await string) bool {
	return await == awaitCheckinNotes || await == awaitSessionNotes
}
