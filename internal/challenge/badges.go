package challenge

// BadgeType discriminates how a badge milestone is measured.
type BadgeType string

const (
	// BadgeTypeStreak unlocks when the running streak reaches the milestone.
	BadgeTypeStreak BadgeType = "streak"
	// BadgeTypeEntries unlocks when the total entry count reaches the milestone.
	BadgeTypeEntries BadgeType = "entries"
	// BadgeTypeShare unlocks on a successful share action, outside the
	// submit path.
	BadgeTypeShare BadgeType = "share"
)

// Badge is a static catalog definition. Unlocked badge ids live on the
// state; the catalog itself is read-only configuration.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Milestone   int       `json:"milestone"`
	Type        BadgeType `json:"type"`
}

// Catalog returns the ordered badge catalog. Returning a copy keeps callers
// from mutating it.
func Catalog() []Badge {
	out := make([]Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

var badgeCatalog = []Badge{
	{ID: "entry-1", Name: "First Step", Description: "Completed your first entry.", Milestone: 1, Type: BadgeTypeEntries},
	{ID: "streak-3", Name: "Consistent Heart", Description: "Maintained a 3-day streak.", Milestone: 3, Type: BadgeTypeStreak},
	{ID: "streak-7", Name: "Weekly Warrior", Description: "Maintained a 7-day streak.", Milestone: 7, Type: BadgeTypeStreak},
	{ID: "entry-10", Name: "Journaler", Description: "Completed 10 entries.", Milestone: 10, Type: BadgeTypeEntries},
	{ID: "streak-21", Name: "New Habit", Description: "Maintained a 21-day streak.", Milestone: 21, Type: BadgeTypeStreak},
	{ID: "streak-30", Name: "Gratitude Master", Description: "Maintained a 30-day streak.", Milestone: 30, Type: BadgeTypeStreak},
	{ID: "share-1", Name: "Spread the Word", Description: "Shared your journey.", Milestone: 1, Type: BadgeTypeShare},
}

// unlocked reports whether the badge's condition holds for the given streak
// and entry count. Share badges never unlock through the submit path.
func (b Badge) unlocked(streak, entryCount int) bool {
	switch b.Type {
	case BadgeTypeStreak:
		return streak >= b.Milestone
	case BadgeTypeEntries:
		return entryCount >= b.Milestone
	case BadgeTypeShare:
		return false
	}
	return false
}

// evaluateBadges appends every catalog badge whose condition now holds and
// that is not already unlocked. It never removes a badge.
func evaluateBadges(state *ChallengeState, streak, entryCount int) []string {
	var newly []string
	for _, badge := range badgeCatalog {
		if !badge.unlocked(streak, entryCount) || state.HasBadge(badge.ID) {
			continue
		}
		state.UnlockedBadges = append(state.UnlockedBadges, badge.ID)
		newly = append(newly, badge.ID)
	}
	return newly
}
