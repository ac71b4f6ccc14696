package keyboards

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/workout"
)

// Welcome creates the entry screen keyboard.
func Welcome(hasDraft bool) tgbotapi.InlineKeyboardMarkup {
	startLabel := "🚀 Iniciar Avaliação"
	if hasDraft {
		startLabel = "▶️ Continuar Avaliação"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(startLabel, "begin"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Acompanhar Progresso", "dashboard"),
		),
	)
}

// StepNav creates the wizard navigation row. The back button is hidden
// on the first gated step and the forward button becomes a submit
// button on the register step.
func StepNav(canBack, isSubmit bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if canBack {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Anterior", "back"))
	}
	nextLabel := "Próximo ▶️"
	if isSubmit {
		nextLabel = "✨ Gerar Plano"
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(nextLabel, "next"))
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// Gender creates the gender selection keyboard.
func Gender() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Masculino", "gender:male"),
			tgbotapi.NewInlineKeyboardButtonData("Feminino", "gender:female"),
			tgbotapi.NewInlineKeyboardButtonData("Outro", "gender:other"),
		),
	)
}

// Goal creates the primary objective keyboard.
func Goal() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Perder Peso / Secar", "goal:lose_weight"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ganhar Massa / Hipertrofia", "goal:gain_muscle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Manter / Recomposição", "goal:maintain"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Performance Atlética", "goal:performance"),
		),
	)
}

// Results creates the plan results keyboard with one button per
// training day.
func Results(plan *domain.Plan) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i, day := range plan.WorkoutPlan {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🏋️ %s: %s", day.Day, day.Focus),
				fmt.Sprintf("workout:%d", i),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "dashboard"),
		tgbotapi.NewInlineKeyboardButtonData("⚙️ Perfil", "settings"),
		tgbotapi.NewInlineKeyboardButtonData("🔄 Recomeçar", "reset"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Session creates the workout-session keyboard for the current
// position.
func Session(inWarmup, isLast bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}

	if inWarmup {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Aquecimento feito", "sess_warmup"),
			tgbotapi.NewInlineKeyboardButtonData("🧘 Alongamento feito", "sess_stretch"),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Concluído", "sess_complete"),
		))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Carga", "sess_weight"),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Reps", "sess_reps"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Notas", "sess_notes"),
		))
	}

	rows = append(rows, timerRow())

	nextLabel := "Próximo ▶️"
	if inWarmup {
		nextLabel = "Iniciar Treino ▶️"
	}
	if isLast {
		nextLabel = "🏁 Finalizar"
	}
	nav := []tgbotapi.InlineKeyboardButton{}
	if !inWarmup {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Anterior", "sess_prev"))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(nextLabel, "sess_next"))
	rows = append(rows, nav)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Sair do treino", "sess_close"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func timerRow() []tgbotapi.InlineKeyboardButton {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⏯ Timer", "timer_toggle"),
		tgbotapi.NewInlineKeyboardButtonData("↺", "timer_reset"),
	}
	for _, preset := range workout.Presets {
		label := fmt.Sprintf("%ds", preset)
		if preset >= 60 {
			label = fmt.Sprintf("%dm", preset/60)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("timer_preset:%d", preset)))
	}
	return row
}

// Dashboard creates the progress dashboard keyboard.
func Dashboard(hasPlan bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Novo Check-in", "checkin"),
			tgbotapi.NewInlineKeyboardButtonData("📒 Registros", "entries"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📷 Comparar Fotos", "compare"),
		),
	}
	if hasPlan {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Ver Plano", "results"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⚙️ Editar Perfil", "settings"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Início", "welcome"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Settings creates the profile editor keyboard, one button per
// editable field.
func Settings() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Nome", "edit_name"),
			tgbotapi.NewInlineKeyboardButtonData("📱 Instagram", "edit_instagram"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎂 Idade", "edit_age"),
			tgbotapi.NewInlineKeyboardButtonData("🚻 Gênero", "edit_gender"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📐 Altura", "edit_height"),
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Peso", "edit_weight"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Objetivo", "edit_goal"),
			tgbotapi.NewInlineKeyboardButtonData("🖼️ Foto de perfil", "edit_photo"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Dashboard", "dashboard"),
		),
	)
}

// EditGender is the gender picker inside the profile editor; selecting
// an option returns to the editor instead of the wizard flow.
func EditGender() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Masculino", "edit_gender:male"),
			tgbotapi.NewInlineKeyboardButtonData("Feminino", "edit_gender:female"),
			tgbotapi.NewInlineKeyboardButtonData("Outro", "edit_gender:other"),
		),
	)
}

// EditGoal is the objective picker inside the profile editor.
func EditGoal() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Perder Peso / Secar", "edit_goal:lose_weight"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ganhar Massa / Hipertrofia", "edit_goal:gain_muscle"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Manter / Recomposição", "edit_goal:maintain"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Performance Atlética", "edit_goal:performance"),
		),
	)
}

// ConfirmDelete asks for explicit confirmation before removing a
// check-in.
func ConfirmDelete(entryID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Sim, excluir", "entry_del_confirm:"+entryID),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", "dashboard"),
		),
	)
}

// ConfirmReset asks for explicit confirmation before starting over.
func ConfirmReset() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Sim, recomeçar", "reset_confirm"),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", "results"),
		),
	)
}
