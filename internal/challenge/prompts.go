package challenge

// Quote pairs a short text with its author for the rotating quote card.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// PromptForDay returns the writing prompt for a 1-based challenge day.
// Days past the end of the list fall back to the last prompt, matching how
// the catalog behaved when the challenge day is pinned at the cap.
func PromptForDay(day int) string {
	if day < 1 {
		day = 1
	}
	if day > len(dailyPrompts) {
		day = len(dailyPrompts)
	}
	return dailyPrompts[day-1]
}

// Quotes returns a copy of the quote catalog.
func Quotes() []Quote {
	out := make([]Quote, len(quoteCatalog))
	copy(out, quoteCatalog)
	return out
}

var dailyPrompts = [ChallengeLength]string{
	"What made you smile today?",
	"Name a person you are thankful for and why.",
	"What is something your body allowed you to do today?",
	"Describe a small comfort you often take for granted.",
	"What skill are you grateful to have learned?",
	"Recall a meal you truly enjoyed recently.",
	"What is something in nature you appreciated this week?",
	"Who helped you recently, even in a small way?",
	"What is a challenge that taught you something valuable?",
	"Describe a place where you feel at peace.",
	"What piece of music or art moved you lately?",
	"What is a freedom you enjoy that others may not?",
	"Name something about your home you are thankful for.",
	"What memory always warms your heart?",
	"What is something you own that makes life easier?",
	"Who in your past shaped who you are today?",
	"What made today different from yesterday, in a good way?",
	"What tradition or ritual are you grateful for?",
	"Describe an act of kindness you witnessed or received.",
	"What part of your daily routine do you secretly enjoy?",
	"What is a book or idea that changed how you think?",
	"Name something difficult you overcame this year.",
	"What quality in yourself are you thankful for?",
	"Who makes you laugh, and when did they last do it?",
	"What is something beautiful you saw today?",
	"What opportunity are you grateful to have been given?",
	"Describe a stranger who left a positive impression on you.",
	"What lesson are you glad you learned early in life?",
	"What are you looking forward to, and who made it possible?",
	"Looking back over the challenge, what changed in how you notice good things?",
}

var quoteCatalog = []Quote{
	{Text: "Gratitude turns what we have into enough.", Author: "Aesop"},
	{Text: "Wear gratitude like a cloak and it will feed every corner of your life.", Author: "Rumi"},
	{Text: "Gratitude is not only the greatest of virtues, but the parent of all others.", Author: "Cicero"},
	{Text: "When you arise in the morning, think of what a precious privilege it is to be alive.", Author: "Marcus Aurelius"},
	{Text: "He is a wise man who does not grieve for the things which he has not, but rejoices for those which he has.", Author: "Epictetus"},
	{Text: "Reflect upon your present blessings, of which every man has plenty.", Author: "Charles Dickens"},
	{Text: "Gratitude is the fairest blossom which springs from the soul.", Author: "Henry Ward Beecher"},
}
