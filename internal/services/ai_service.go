package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/leandrotelles/nutricoach-bot/internal/apperrors"
	"github.com/leandrotelles/nutricoach-bot/internal/domain"
	"github.com/leandrotelles/nutricoach-bot/internal/logger"
	"google.golang.org/api/option"
)

const planModel = "gemini-1.5-flash"

// AIService talks to Gemini for plan generation, free-text refinement
// and voice transcription.
type AIService struct {
	client *genai.Client
}

func NewAIService(ctx context.Context, geminiAPIKey string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(geminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{client: client}, nil
}

// GeneratePlan turns the full profile into a structured nutrition and
// workout plan. Any transport error, malformed response or schema
// violation is reported as a single generation failure.
func (s *AIService) GeneratePlan(ctx context.Context, profile domain.UserProfile) (*domain.Plan, error) {
	model := s.client.GenerativeModel(planModel)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPlanPrompt(profile)))
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini")
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini")
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("no valid JSON found in response"), "Gemini")
	}

	var plan domain.Plan
	if err := json.Unmarshal([]byte(jsonStr), &plan); err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("failed to parse plan: %w", err), "Gemini")
	}
	if err := plan.Validate(); err != nil {
		return nil, apperrors.NewExternalAPIError(err, "Gemini")
	}

	return &plan, nil
}

// RefineText asks the model to clean up a free-text answer. On any
// failure the original text is returned unchanged; the user never sees
// a refinement error.
func (s *AIService) RefineText(ctx context.Context, text, fieldContext string) string {
	model := s.client.GenerativeModel(planModel)

	prompt := fmt.Sprintf(`Você é um assistente pessoal inteligente. Melhore o seguinte texto fornecido pelo usuário para um aplicativo de nutrição/treino.
Contexto do campo: %s.

Texto original: "%s"

Instruções:
1. Corrija erros gramaticais.
2. Torne o texto mais claro e profissional, mas mantenha a essência da informação.
3. Organize em tópicos se houver muita informação misturada.
4. Mantenha em Português do Brasil.
5. Responda APENAS com o texto melhorado, sem introduções.`, fieldContext, text)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		logger.Warn("Text refinement failed, keeping original", "error", err)
		return text
	}

	refined, err := responseText(resp)
	if err != nil || strings.TrimSpace(refined) == "" {
		return text
	}
	return strings.TrimSpace(refined)
}

// TranscribeVoice transcribes a recorded voice message to Brazilian
// Portuguese text.
func (s *AIService) TranscribeVoice(ctx context.Context, audio []byte, mimeType string) (string, error) {
	model := s.client.GenerativeModel(planModel)

	prompt := `Transcreva o áudio a seguir em Português do Brasil.
Responda APENAS com a transcrição, sem comentários ou pontuação extra no início ou no fim.`

	resp, err := model.GenerateContent(ctx, genai.Blob{MIMEType: mimeType, Data: audio}, genai.Text(prompt))
	if err != nil {
		return "", apperrors.NewCapabilityError(err, "voice transcription")
	}

	text, err := responseText(resp)
	if err != nil {
		return "", apperrors.NewCapabilityError(err, "voice transcription")
	}
	return strings.TrimSpace(text), nil
}

func buildPlanPrompt(profile domain.UserProfile) string {
	measurementsText := "Não informado"
	if m := profile.Measurements; m != nil {
		measurementsText = fmt.Sprintf(`
- Pescoço: %s cm
- Ombros: %s cm
- Peitoral: %s cm
- Braços: %s cm
- Cintura: %s cm
- Quadril: %s cm
- Coxas: %s cm
- Panturrilhas: %s cm`,
			orDash(m.Neck), orDash(m.Shoulders), orDash(m.Chest), orDash(m.Arms),
			orDash(m.Waist), orDash(m.Hips), orDash(m.Thigh), orDash(m.Calf))
	}

	return fmt.Sprintf(`Atue como um Nutricionista e Treinador Físico de classe mundial (Personal Trainer).
Crie um plano de nutrição e treino altamente personalizado com base nos seguintes dados de avaliação do cliente.

IMPORTANTE: Responda inteiramente em Português do Brasil (PT-BR).

Perfil do Cliente:
- Nome: %s
- Idade: %s
- Gênero: %s
- Altura: %s cm
- Peso Atual (Jejum): %s kg
- Objetivo: %s

Medidas Corporais:
%s

Contexto:
- Rotina Diária: %s
- Histórico/Dieta Atual: %s
- Preferências Alimentares (Gostos/Aversões): %s
- Substituições Usuais: %s
- Rotina de Treino Atual: %s
- Suplementação Atual: %s

Requisitos Obrigatórios:
1. **OPÇÕES NAS REFEIÇÕES**: Para cada refeição principal, forneça pelo menos 2 opções de escolha (ex: Opção A: Frango com batata... OU Opção B: Peixe com arroz...). Liste isso claramente no campo 'ingredients' ou 'instructions'.
2. Crie um plano alimentar diário sustentável que se encaixe na rotina descrita.
3. Crie uma divisão de treino semanal adaptada ao objetivo e status atual. Indique substituições possíveis nas notas dos exercícios.
4. Sugira suplementos se necessário, considerando o que já tomam.
5. Seja específico com quantidades (em gramas ou medidas caseiras).

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON object
- Do not include any markdown formatting or explanatory text before or after the JSON
- The JSON must have these exact fields:
  {
    "nutritionStrategy": "...",
    "workoutStrategy": "...",
    "dailyMacros": {"protein": 0, "carbs": 0, "fats": 0, "calories": 0},
    "mealPlan": [{"name": "...", "time": "...", "ingredients": ["..."], "instructions": "...", "macros": {"protein": 0, "carbs": 0, "fats": 0, "calories": 0}}],
    "workoutPlan": [{"day": "...", "focus": "...", "exercises": [{"name": "...", "sets": 0, "reps": "...", "notes": "..."}]}],
    "supplementRecommendations": ["..."]
  }`,
		profile.Name, profile.Age, profile.Gender, profile.Height,
		profile.CurrentWeight, profile.Goal, measurementsText,
		profile.DailyRoutine, profile.CurrentDiet, profile.FoodPreferences,
		profile.FoodSubstitutions, profile.WorkoutRoutine, profile.Supplementation)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return string(text), nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
