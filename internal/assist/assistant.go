package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Assistant produces personalized prompts and keyword extractions. Its
// output is plain text consumed by the UI; it never touches challenge state.
type Assistant interface {
	SuggestPrompt(ctx context.Context, pastResponses []string) (string, error)
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
	Close() error
}

// AssistantConfig wires Gemini access.
type AssistantConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	UseVertex       bool
	Project         string
	Location        string
}

// GeminiAssistant talks to Gemini.
type GeminiAssistant struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiAssistant returns an Assistant backed by Gemini.
func NewGeminiAssistant(ctx context.Context, cfg AssistantConfig) (Assistant, error) {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}

	clientCfg := &genai.ClientConfig{}
	if cfg.UseVertex {
		project := strings.TrimSpace(cfg.Project)
		if project == "" {
			project = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
		}
		if project == "" {
			return nil, errors.New("vertex project id missing")
		}
		location := strings.TrimSpace(cfg.Location)
		if location == "" {
			location = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_LOCATION"))
		}
		if location == "" {
			return nil, errors.New("vertex location missing")
		}
		clientCfg.Project = project
		clientCfg.Location = location
		clientCfg.Backend = genai.BackendVertexAI
		if err := clientCfg.UseDefaultCredentials(); err != nil {
			return nil, fmt.Errorf("vertex credentials: %w", err)
		}
	} else {
		apiKey := strings.TrimSpace(cfg.APIKey)
		if apiKey == "" {
			apiKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		if apiKey == "" {
			apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		}
		if apiKey == "" {
			return nil, errors.New("gemini api key missing")
		}
		clientCfg.APIKey = apiKey
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}

	return &GeminiAssistant{client: client, model: model, maxTokens: maxTokens}, nil
}

// Close releases underlying Gemini resources.
func (g *GeminiAssistant) Close() error {
	return nil
}

const suggestSystemPrompt = `You are a gratitude prompt generator. Based on the user's past journal responses, write one short, personalized gratitude prompt that nudges them toward a theme they have not explored yet. Reply with the prompt text only, no preamble.`

// SuggestPrompt generates a personalized prompt from past responses.
func (g *GeminiAssistant) SuggestPrompt(ctx context.Context, pastResponses []string) (string, error) {
	joined := strings.TrimSpace(strings.Join(pastResponses, "\n"))
	if joined == "" {
		joined = "(no past responses yet)"
	}

	contents := []*genai.Content{
		genai.NewContentFromText("Past responses:\n"+joined, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(suggestSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.9)),
		MaxOutputTokens:   int32(g.maxTokens),
	})
	if err != nil {
		return "", err
	}
	output := strings.TrimSpace(strings.Trim(resp.Text(), `"`))
	if output == "" {
		return "", errors.New("gemini returned empty response")
	}
	return output, nil
}

const keywordsSystemPrompt = `You are a text analysis expert. Extract the most meaningful and frequent keywords from the journal entries you are given. Focus on nouns, adjectives and verbs that reveal themes of gratitude. Merge plural and singular forms, ignore filler words and return a JSON array of unique lowercase strings. Reply with the JSON array only.`

// ExtractKeywords pulls gratitude-themed keywords out of a block of entry
// text. The model is asked for a JSON array; lines are used as a fallback
// when it answers in prose.
func (g *GeminiAssistant) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText("Text to analyze:\n"+text, genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(keywordsSystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.2)),
		MaxOutputTokens:   int32(g.maxTokens),
	})
	if err != nil {
		return nil, err
	}

	return parseKeywords(resp.Text()), nil
}

// parseKeywords accepts either a JSON string array (possibly wrapped in a
// markdown fence) or a newline/comma separated list.
func parseKeywords(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return dedupeKeywords(parsed)
	}

	split := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == '\n' || r == ','
	})
	return dedupeKeywords(split)
}

func dedupeKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.Trim(strings.TrimSpace(k), `"-* `)
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
