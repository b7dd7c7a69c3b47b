package insights

import (
	"testing"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

func entriesFromTexts(texts ...string) []challenge.Entry {
	out := make([]challenge.Entry, 0, len(texts))
	for _, text := range texts {
		out = append(out, challenge.Entry{Text: text})
	}
	return out
}

func TestWordFrequencies_CountsAndSorts(t *testing.T) {
	entries := entriesFromTexts(
		"Grateful for coffee and sunshine",
		"Coffee again, always coffee",
	)

	words := WordFrequencies(entries, "en")
	if len(words) == 0 {
		t.Fatal("expected words")
	}
	if words[0].Value != 3 {
		t.Fatalf("expected top word counted 3 times, got %+v", words[0])
	}
	// First surface form wins for display.
	if words[0].Text != "coffee" {
		t.Fatalf("expected display form 'coffee', got %q", words[0].Text)
	}
}

func TestWordFrequencies_StopWordsAndShortWords(t *testing.T) {
	words := WordFrequencies(entriesFromTexts("the and my is to go sunshine"), "en")

	for _, w := range words {
		switch w.Text {
		case "the", "and", "my", "is", "to", "go":
			t.Fatalf("stop or short word leaked through: %q", w.Text)
		}
	}
	if len(words) != 1 || words[0].Text != "sunshine" {
		t.Fatalf("expected only 'sunshine', got %+v", words)
	}
}

func TestWordFrequencies_AccentFolding(t *testing.T) {
	words := WordFrequencies(entriesFromTexts("café cafe Café"), "fr")

	if len(words) != 1 {
		t.Fatalf("expected accent variants merged into one word, got %+v", words)
	}
	if words[0].Value != 3 {
		t.Fatalf("expected count 3, got %d", words[0].Value)
	}
}

func TestWordFrequencies_FrenchStopWords(t *testing.T) {
	words := WordFrequencies(entriesFromTexts("les amis sont dans mon coeur"), "fr")

	for _, w := range words {
		switch w.Text {
		case "les", "sont", "dans", "mon":
			t.Fatalf("french stop word leaked through: %q", w.Text)
		}
	}
}

func TestWordFrequencies_Empty(t *testing.T) {
	if words := WordFrequencies(nil, "en"); len(words) != 0 {
		t.Fatalf("expected empty result, got %+v", words)
	}
}
