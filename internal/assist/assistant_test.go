package assist

import (
	"context"
	"reflect"
	"testing"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "json array",
			raw:  `["family", "coffee", "sunshine"]`,
			want: []string{"family", "coffee", "sunshine"},
		},
		{
			name: "fenced json",
			raw:  "```json\n[\"family\", \"coffee\"]\n```",
			want: []string{"family", "coffee"},
		},
		{
			name: "newline list",
			raw:  "family\ncoffee\nsunshine",
			want: []string{"family", "coffee", "sunshine"},
		},
		{
			name: "comma list with bullets",
			raw:  "- Family, - Coffee",
			want: []string{"family", "coffee"},
		},
		{
			name: "duplicates collapse",
			raw:  `["coffee", "Coffee", "coffee"]`,
			want: []string{"coffee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseKeywords(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("parseKeywords(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTemplateAssistant_SuggestPrompt(t *testing.T) {
	assistant := NewTemplateAssistant()

	first, err := assistant.SuggestPrompt(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != challenge.PromptForDay(1) {
		t.Fatalf("expected day-1 prompt for a fresh journal, got %q", first)
	}

	later, err := assistant.SuggestPrompt(context.Background(), make([]string, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if later != challenge.PromptForDay(6) {
		t.Fatalf("expected rotation past written entries, got %q", later)
	}
}

func TestTemplateAssistant_ExtractKeywords(t *testing.T) {
	assistant := NewTemplateAssistant()

	keywords, err := assistant.ExtractKeywords(context.Background(),
		"Grateful for coffee and coffee with friends in the sunshine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keywords) == 0 {
		t.Fatal("expected keywords")
	}
	if keywords[0] != "coffee" {
		t.Fatalf("expected most frequent keyword first, got %v", keywords)
	}

	empty, err := assistant.ExtractKeywords(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no keywords for blank text, got %v", empty)
	}
}
