package challenge

import "testing"

func TestCatalogIsCopied(t *testing.T) {
	first := Catalog()
	first[0].ID = "tampered"

	if Catalog()[0].ID != "entry-1" {
		t.Fatal("Catalog must return a copy")
	}
}

func TestBadgeUnlockConditions(t *testing.T) {
	tests := []struct {
		badge   Badge
		streak  int
		entries int
		want    bool
	}{
		{Badge{ID: "streak-3", Milestone: 3, Type: BadgeTypeStreak}, 3, 0, true},
		{Badge{ID: "streak-3", Milestone: 3, Type: BadgeTypeStreak}, 2, 99, false},
		{Badge{ID: "entry-10", Milestone: 10, Type: BadgeTypeEntries}, 0, 10, true},
		{Badge{ID: "entry-10", Milestone: 10, Type: BadgeTypeEntries}, 99, 9, false},
		{Badge{ID: "share-1", Milestone: 1, Type: BadgeTypeShare}, 99, 99, false},
	}

	for _, tt := range tests {
		if got := tt.badge.unlocked(tt.streak, tt.entries); got != tt.want {
			t.Errorf("%s with streak=%d entries=%d: got %v, want %v",
				tt.badge.ID, tt.streak, tt.entries, got, tt.want)
		}
	}
}

func TestPromptForDayBounds(t *testing.T) {
	if PromptForDay(0) != dailyPrompts[0] {
		t.Fatal("day 0 should clamp to the first prompt")
	}
	if PromptForDay(1) != dailyPrompts[0] {
		t.Fatal("day 1 should be the first prompt")
	}
	if PromptForDay(99) != dailyPrompts[ChallengeLength-1] {
		t.Fatal("days past the cap should clamp to the last prompt")
	}
}
