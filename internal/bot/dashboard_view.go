package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leandrotelles/nutricoach-bot/internal/bot/keyboards"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/utils"
)

const entryDateLayout = "02/01/2006"

func (b *Bot) sendDashboard(chatID int64, st *userState) error {
	entries := st.progress.Entries()

	var sb strings.Builder
	sb.WriteString("📊 Seu Progresso\n\n")

	if len(entries) == 0 {
		sb.WriteString("Nenhum check-in registrado ainda. Comece agora!")
	} else {
		latest := entries[len(entries)-1]
		initial := st.progress.InitialWeight()
		delta := latest.Weight - initial
		sb.WriteString(fmt.Sprintf("Peso atual: %.1f kg\n", latest.Weight))
		sb.WriteString(fmt.Sprintf("Peso inicial: %.1f kg (%+.1f kg)\n", initial, delta))
		if avg := st.progress.AverageCalories(); avg > 0 {
			sb.WriteString(fmt.Sprintf("Média de calorias: %.0f kcal/dia\n", avg))
		}
		sb.WriteString(fmt.Sprintf("Check-ins: %d\n", len(entries)))
	}

	return b.sendMessage(chatID, sb.String(), keyboards.Dashboard(st.wizard.Plan() != nil))
}

func (b *Bot) sendEntries(chatID int64, st *userState) error {
	entries := st.progress.Entries()
	if len(entries) == 0 {
		return b.sendText(chatID, "Nenhum check-in registrado ainda.")
	}

	var sb strings.Builder
	sb.WriteString("📒 Seus check-ins:\n\n")
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, entry := range entries {
		line := fmt.Sprintf("• %s: %.1f kg", entry.Date.Format(entryDateLayout), entry.Weight)
		if entry.Calories != nil {
			line += fmt.Sprintf(", %d kcal", *entry.Calories)
		}
		if entry.Notes != "" {
			line += "\n  " + utils.Truncate(entry.Notes, 80)
		}
		sb.WriteString(line + "\n")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 %s", entry.Date.Format(entryDateLayout)),
				"entry_del:"+entry.ID,
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Dashboard", "dashboard"),
	))
	return b.sendMessage(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendComparison(chatID int64, st *userState) error {
	comparison := st.progress.DefaultComparison()
	if comparison.Before == nil || comparison.After == nil {
		return b.sendText(chatID, "Ainda não há check-ins suficientes para comparar.")
	}

	before, after := comparison.Before, comparison.After
	text := fmt.Sprintf(`📷 Antes e Depois

Antes: %s: %.1f kg
Depois: %s: %.1f kg
Diferença: %+.1f kg`,
		before.Date.Format(entryDateLayout), before.Weight,
		after.Date.Format(entryDateLayout), after.Weight,
		after.Weight-before.Weight)

	if err := b.sendText(chatID, text); err != nil {
		return err
	}

	for _, pair := range []struct {
		label  string
		fileID string
	}{
		{"Antes", before.Photos.Front},
		{"Depois", after.Photos.Front},
	} {
		if pair.fileID == "" {
			continue
		}
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(pair.fileID))
		photo.Caption = pair.label
		if _, err := b.api.Send(photo); err != nil {
			return err
		}
	}
	return b.sendMessage(chatID, "O que deseja fazer agora?", keyboards.Dashboard(st.wizard.Plan() != nil))
}

func (b *Bot) handleDashboardCallback(ctx context.Context, chatID int64, st *userState, data string) (bool, error) {
	switch {
	case data == "dashboard":
		st.await = awaitNone
		st.wizard.OpenDashboard()
		return true, b.sendDashboard(chatID, st)

	case data == "entries":
		return true, b.sendEntries(chatID, st)

	case data == "compare":
		return true, b.sendComparison(chatID, st)

	case data == "checkin":
		st.checkin = checkinDraft{}
		st.await = awaitCheckinWeight
		return true, b.sendText(chatID, "⚖️ Novo check-in! Qual é o seu peso hoje, em kg? (ex: 81.4)")

	case data == "checkin_skip_cal":
		st.await = awaitCheckinNotes
		return true, b.sendMessage(chatID, "📝 Alguma observação sobre a semana? (texto ou áudio)", skipKeyboard("checkin_skip_notes"))

	case data == "checkin_skip_notes":
		st.await = awaitCheckinPhoto
		return true, b.sendMessage(chatID, "📸 Quer anexar uma foto de progresso?", skipKeyboard("checkin_save"))

	case data == "checkin_save":
		return true, b.saveCheckin(ctx, chatID, st)

	case strings.HasPrefix(data, "entry_del:"):
		id := strings.TrimPrefix(data, "entry_del:")
		return true, b.sendMessage(chatID, "Excluir este check-in? Essa ação não pode ser desfeita.", keyboards.ConfirmDelete(id))

	case strings.HasPrefix(data, "entry_del_confirm:"):
		id := strings.TrimPrefix(data, "entry_del_confirm:")
		if err := st.progress.DeleteEntry(ctx, id); err != nil {
			return true, err
		}
		if err := b.sendText(chatID, "🗑 Check-in excluído."); err != nil {
			return true, err
		}
		return true, b.sendDashboard(chatID, st)
	}
	return false, nil
}

func (b *Bot) handleDashboardText(ctx context.Context, chatID int64, st *userState, text string) (bool, error) {
	switch st.await {
	case awaitCheckinWeight:
		weight, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
		if err != nil || weight <= 0 {
			return true, b.sendText(chatID, "Por favor, envie um peso válido em kg (ex: 81.4).")
		}
		st.checkin.weight = weight
		st.await = awaitCheckinCalories
		return true, b.sendMessage(chatID, "🔥 Quantas calorias você consumiu em média por dia?", skipKeyboard("checkin_skip_cal"))

	case awaitCheckinCalories:
		calories, err := strconv.Atoi(text)
		if err != nil {
			return true, b.sendText(chatID, "Envie as calorias como um número inteiro (ex: 2100), ou toque em Pular.")
		}
		st.checkin.calories = &calories
		st.await = awaitCheckinNotes
		return true, b.sendMessage(chatID, "📝 Alguma observação sobre a semana? (texto ou áudio)", skipKeyboard("checkin_skip_notes"))

	case awaitCheckinNotes:
		st.checkin.notes = utils.AppendTranscript(st.checkin.notes, strings.TrimSpace(text))
		st.await = awaitCheckinPhoto
		return true, b.sendMessage(chatID, "📸 Quer anexar uma foto de progresso?", skipKeyboard("checkin_save"))
	}
	return false, nil
}

func (b *Bot) handleCheckinPhoto(ctx context.Context, chatID int64, st *userState, fileID string) error {
	st.checkin.photos = domain.ProgressPhotos{Front: fileID}
	return b.saveCheckin(ctx, chatID, st)
}

func (b *Bot) saveCheckin(ctx context.Context, chatID int64, st *userState) error {
	draft := st.checkin
	st.checkin = checkinDraft{}
	st.await = awaitNone

	entry, err := st.progress.AddEntry(ctx, draft.weight, draft.calories, draft.photos, draft.notes)
	if err != nil {
		return b.sendText(chatID, "Não consegui salvar o check-in. Tente novamente.")
	}

	st.notifier.Show("Check-in registrado!", fmt.Sprintf("%.1f kg em %s. Continue assim! 🎯",
		entry.Weight, entry.Date.Format(entryDateLayout)))
	return b.sendDashboard(chatID, st)
}

func skipKeyboard(callback string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Pular ▶️", callback),
		),
	)
}
