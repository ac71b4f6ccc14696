package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/leandrotelles/nutricoach-bot/internal/bot/keyboards"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/services"
)

// settingsSummary renders the editable profile fields for the editor
// screen.
func settingsSummary(p domain.UserProfile) string {
	picture := "não enviada"
	if p.ProfilePicture != "" {
		picture = "enviada ✅"
	}
	return fmt.Sprintf(`⚙️ Editar Perfil

Nome: %s
Instagram: %s
Idade: %s
Gênero: %s
Altura: %s cm
Peso: %s kg
Objetivo: %s
Foto de perfil: %s

Escolha o campo que deseja alterar. Seu plano e seu histórico são mantidos.`,
		orNone(p.Name), orNone(p.Instagram), orNone(p.Age), genderLabel(p.Gender),
		orNone(p.Height), orNone(p.CurrentWeight), goalLabel(p.Goal), picture)
}

func (b *Bot) sendSettings(chatID int64, st *userState) error {
	st.await = awaitNone
	return b.sendMessage(chatID, settingsSummary(st.wizard.Profile()), keyboards.Settings())
}

func (b *Bot) handleSettingsCallback(ctx context.Context, chatID int64, st *userState, data string) (bool, error) {
	switch {
	case data == "settings":
		return true, b.sendSettings(chatID, st)

	case data == "edit_name":
		st.await = awaitEditName
		return true, b.sendText(chatID, "👤 Qual é o novo nome?")

	case data == "edit_instagram":
		st.await = awaitEditInstagram
		return true, b.sendText(chatID, "📱 Qual é o seu Instagram? (Envie \"-\" para remover.)")

	case data == "edit_age":
		st.await = awaitEditAge
		return true, b.sendText(chatID, "🎂 Qual é a sua idade?")

	case data == "edit_height":
		st.await = awaitEditHeight
		return true, b.sendText(chatID, "📐 Qual é a sua altura em cm? (ex: 175)")

	case data == "edit_weight":
		st.await = awaitEditWeight
		return true, b.sendText(chatID, "⚖️ Qual é o seu peso atual em kg? (ex: 82.5)")

	case data == "edit_gender":
		st.await = awaitNone
		return true, b.sendMessage(chatID, "🚻 Qual é o seu gênero?", keyboards.EditGender())

	case data == "edit_goal":
		st.await = awaitNone
		return true, b.sendMessage(chatID, "🎯 Qual é o seu objetivo principal?", keyboards.EditGoal())

	case data == "edit_photo":
		st.await = awaitEditPhoto
		return true, b.sendText(chatID, "🖼️ Envie a nova foto de perfil.")

	case strings.HasPrefix(data, "edit_gender:"):
		gender := domain.Gender(strings.TrimPrefix(data, "edit_gender:"))
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Gender: &gender})

	case strings.HasPrefix(data, "edit_goal:"):
		goal := domain.Goal(strings.TrimPrefix(data, "edit_goal:"))
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Goal: &goal})
	}
	return false, nil
}

func (b *Bot) handleSettingsText(ctx context.Context, chatID int64, st *userState, text string) (bool, error) {
	text = strings.TrimSpace(text)

	switch st.await {
	case awaitEditName:
		if text == "" {
			return true, b.sendText(chatID, "O nome não pode ficar vazio.")
		}
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Name: &text})

	case awaitEditInstagram:
		value := skippable(text)
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Instagram: &value})

	case awaitEditAge:
		if _, err := strconv.Atoi(text); err != nil {
			return true, b.sendText(chatID, "Por favor, envie a idade como um número (ex: 28).")
		}
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Age: &text})

	case awaitEditHeight:
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{Height: &text})

	case awaitEditWeight:
		return true, b.applySetting(ctx, chatID, st, services.ProfileUpdate{CurrentWeight: &text})
	}
	return false, nil
}

// applySetting merges one field edit into the profile and re-renders
// the editor. The stored plan is untouched.
func (b *Bot) applySetting(ctx context.Context, chatID int64, st *userState, update services.ProfileUpdate) error {
	st.await = awaitNone
	if err := st.profiles.Apply(ctx, update); err != nil {
		return err
	}
	return b.sendSettings(chatID, st)
}
