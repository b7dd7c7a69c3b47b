package insights

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

// WordCount is one weighted term for the word cloud.
type WordCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// maxWords bounds the payload; the cloud only renders the heaviest terms anyway.
const maxWords = 50

var wordPattern = regexp.MustCompile(`\p{L}{3,}`)

// accent-folding transform: decompose, strip combining marks, recompose.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var stopWordsEN = makeSet("the", "a", "an", "and", "i", "you", "he", "she", "it",
	"we", "they", "are", "is", "am", "was", "were", "for", "in", "on", "of", "to",
	"by", "with", "my", "your", "his", "her", "its", "our", "their", "that",
	"this", "these", "those", "not", "but", "at")

var stopWordsFR = makeSet("le", "la", "les", "de", "des", "du", "et", "un",
	"une", "pour", "dans", "par", "je", "tu", "il", "elle", "nous", "vous",
	"ils", "elles", "sont", "est", "ai", "as", "avons", "avez", "ont", "suis",
	"es", "sommes", "etes", "mon", "ma", "mes", "ton", "ta", "tes", "son",
	"sa", "ses", "notre", "votre", "leur", "leurs", "ce", "cet", "cette",
	"ces", "que", "qui", "quoi", "plus", "avec", "comme", "pas", "sur", "se",
	"au", "aux", "ne", "en")

func makeSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// WordFrequencies aggregates entry texts into weighted terms. Words are
// matched on unicode letters (3+ runes), counted case- and
// accent-insensitively and filtered against the stop list for the given
// language ("fr" or anything else for English). The first surface form
// seen is kept for display.
func WordFrequencies(entries []challenge.Entry, lang string) []WordCount {
	if len(entries) == 0 {
		return []WordCount{}
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.Text)
	}
	words := wordPattern.FindAllString(strings.Join(texts, " "), -1)

	type bucket struct {
		original string
		count    int
	}
	counts := make(map[string]*bucket)
	order := make([]string, 0)

	for _, word := range words {
		key := normalizeWord(word)
		if b, ok := counts[key]; ok {
			b.count++
			continue
		}
		counts[key] = &bucket{original: word, count: 1}
		order = append(order, key)
	}

	stop := stopWordsEN
	if lang == "fr" {
		stop = stopWordsFR
	}

	out := make([]WordCount, 0, len(order))
	for _, key := range order {
		if _, skip := stop[key]; skip {
			continue
		}
		b := counts[key]
		out = append(out, WordCount{Text: b.original, Value: b.count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}

func normalizeWord(word string) string {
	folded, _, err := transform.String(foldAccents, strings.ToLower(word))
	if err != nil {
		return strings.ToLower(word)
	}
	return folded
}
