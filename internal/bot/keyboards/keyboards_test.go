package keyboards

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func callbacks(kb tgbotapi.InlineKeyboardMarkup) []string {
	data := []string{}
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			if button.CallbackData != nil {
				data = append(data, *button.CallbackData)
			}
		}
	}
	return data
}

func TestSettingsCoversEveryEditableField(t *testing.T) {
	data := callbacks(Settings())
	for _, want := range []string{
		"edit_name", "edit_instagram", "edit_age", "edit_gender",
		"edit_height", "edit_weight", "edit_goal", "edit_photo",
		"dashboard",
	} {
		assert.Contains(t, data, want)
	}
}

func TestEditPickersReturnToEditor(t *testing.T) {
	assert.Contains(t, callbacks(EditGender()), "edit_gender:female")
	assert.Contains(t, callbacks(EditGoal()), "edit_goal:performance")
}

func TestDashboardLinksProfileEditor(t *testing.T) {
	assert.Contains(t, callbacks(Dashboard(false)), "settings")
	assert.Contains(t, callbacks(Dashboard(true)), "results")
}

func TestResultsListsTrainingDaysAndEditor(t *testing.T) {
	plan := &domain.Plan{
		WorkoutPlan: []domain.WorkoutDay{
			{Day: "Segunda", Focus: "Peito"},
			{Day: "Quarta", Focus: "Costas"},
		},
	}
	data := callbacks(Results(plan))
	assert.Contains(t, data, "workout:0")
	assert.Contains(t, data, "workout:1")
	assert.Contains(t, data, "settings")
	assert.Contains(t, data, "reset")
}
