package utils

import "strings"

// AppendTranscript appends a final speech segment to existing text,
// inserting a single separating space unless the text already ends
// with one.
func AppendTranscript(existing, transcript string) string {
	if transcript == "" {
		return existing
	}
	if existing == "" {
		return transcript
	}
	if strings.HasSuffix(existing, " ") {
		return existing + transcript
	}
	return existing + " " + transcript
}

// Truncate shortens text to at most max runes, appending an ellipsis
// when it was cut. Telegram captions are limited to 1024 characters.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
