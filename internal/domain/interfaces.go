package domain

import "context"

// PlanGenerator produces a full plan from a profile snapshot. The
// snapshot is captured by the caller at call time and must not be
// re-read while the request is in flight.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile UserProfile) (*Plan, error)
}

// TextRefiner improves a free-text answer. Implementations fall back
// to the original text on failure instead of returning an error.
type TextRefiner interface {
	RefineText(ctx context.Context, text, fieldContext string) string
}

// VoiceTranscriber turns a recorded voice message into text.
type VoiceTranscriber interface {
	TranscribeVoice(ctx context.Context, audio []byte, mimeType string) (string, error)
}
