package assist

import (
	"context"
	"strings"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
	"github.com/gratitudenest/gratitude-service/internal/insights"
)

// TemplateAssistant is a deterministic fallback when Gemini is unavailable.
// Prompt suggestions rotate through the daily catalog and keyword
// extraction reuses the word-frequency tokenizer.
type TemplateAssistant struct{}

// NewTemplateAssistant returns the fallback assistant.
func NewTemplateAssistant() Assistant {
	return &TemplateAssistant{}
}

// SuggestPrompt picks a catalog prompt offset by how much the user has
// already written, so repeated calls do not loop on the first prompt.
func (t *TemplateAssistant) SuggestPrompt(_ context.Context, pastResponses []string) (string, error) {
	day := len(pastResponses)%challenge.ChallengeLength + 1
	return challenge.PromptForDay(day), nil
}

// ExtractKeywords falls back to local frequency analysis, lowercased to
// match the model's output contract.
func (t *TemplateAssistant) ExtractKeywords(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	words := insights.WordFrequencies([]challenge.Entry{{Text: text}}, "en")

	const limit = 12
	out := make([]string, 0, limit)
	for _, w := range words {
		out = append(out, strings.ToLower(w.Text))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Close is a no-op for the template assistant.
func (t *TemplateAssistant) Close() error { return nil }
