package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/gratitudenest/gratitude-service/internal/challenge"
)

// JournalStats summarizes a user's journal for the stats card.
type JournalStats struct {
	TotalEntries  int     `json:"total_entries"`
	CurrentDay    int     `json:"current_day"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	Points        int     `json:"points"`
	TotalWords    int     `json:"total_words"`
	AvgWords      float64 `json:"avg_words"`
	BadgesEarned  int     `json:"badges_earned"`
	Completion    float64 `json:"completion"` // fraction of the 30 days written
}

// Stats computes the journal summary from the repaired state. The longest
// streak is rederived from entry dates rather than trusted from the
// running counter, which only reflects the current run.
func Stats(state *challenge.ChallengeState) JournalStats {
	stats := JournalStats{
		TotalEntries:  len(state.Entries),
		CurrentDay:    state.CurrentDay,
		CurrentStreak: state.Streak,
		LongestStreak: longestStreak(state.Entries),
		Points:        state.Points,
		BadgesEarned:  len(state.UnlockedBadges),
		Completion:    float64(len(state.Entries)) / float64(challenge.ChallengeLength),
	}
	if stats.Completion > 1 {
		stats.Completion = 1
	}

	for _, e := range state.Entries {
		stats.TotalWords += len(strings.Fields(e.Text))
	}
	if stats.TotalEntries > 0 {
		stats.AvgWords = float64(stats.TotalWords) / float64(stats.TotalEntries)
	}
	return stats
}

// longestStreak walks the distinct entry days in order and finds the
// longest run of consecutive calendar days.
func longestStreak(entries []challenge.Entry) int {
	if len(entries) == 0 {
		return 0
	}

	seen := make(map[string]time.Time, len(entries))
	for _, e := range entries {
		day := e.Date.UTC().Truncate(24 * time.Hour)
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
