package services

import (
	"strings"
	"testing"

	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "code fence",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "surrounding prose",
			input:    "Aqui está o plano: {\"a\":1} espero que goste!",
			expected: `{"a":1}`,
		},
		{
			name:     "no json",
			input:    "desculpe, não consegui",
			expected: "",
		},
		{
			name:     "unbalanced",
			input:    "} {",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSON(tt.input))
		})
	}
}

func TestBuildPlanPromptIncludesProfile(t *testing.T) {
	profile := domain.DefaultProfile()
	profile.Name = "Leandro"
	profile.Age = "35"
	profile.CurrentWeight = "85"
	profile.Measurements = &domain.Measurements{Waist: "95"}

	prompt := buildPlanPrompt(profile)
	assert.Contains(t, prompt, "Leandro")
	assert.Contains(t, prompt, "85")
	assert.Contains(t, prompt, "95 cm")
	assert.Contains(t, prompt, "Português do Brasil")
	assert.Contains(t, prompt, "nutritionStrategy")
}

func TestBuildPlanPromptWithoutMeasurements(t *testing.T) {
	profile := domain.DefaultProfile()
	prompt := buildPlanPrompt(profile)
	assert.Contains(t, prompt, "Não informado")
	assert.False(t, strings.Contains(prompt, "Pescoço"))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "42", orDash("42"))
}
