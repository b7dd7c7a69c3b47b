package challenge

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %s: %v", value, err)
	}
	return parsed
}

func TestSubmitEntry_FirstSubmission(t *testing.T) {
	state := NewChallengeState()
	now := mustTime(t, "2024-07-01T10:00:00Z")

	next, newBadges, err := SubmitEntry(state, "This is long enough.", "Test Prompt", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(next.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(next.Entries))
	}
	if next.Entries[0].Day != 1 || next.Entries[0].Text != "This is long enough." || next.Entries[0].Prompt != "Test Prompt" {
		t.Fatalf("unexpected entry: %+v", next.Entries[0])
	}
	if next.CurrentDay != 2 {
		t.Fatalf("expected currentDay 2, got %d", next.CurrentDay)
	}
	if next.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", next.Streak)
	}
	if next.Points != 10 {
		t.Fatalf("expected 10 points, got %d", next.Points)
	}
	if !next.HasBadge("entry-1") {
		t.Fatalf("expected entry-1 badge, got %v", next.UnlockedBadges)
	}
	if len(newBadges) != 1 || newBadges[0] != "entry-1" {
		t.Fatalf("expected newly unlocked [entry-1], got %v", newBadges)
	}
	if next.LastEntryDate == nil || !next.LastEntryDate.Equal(now) {
		t.Fatalf("expected lastEntryDate %v, got %v", now, next.LastEntryDate)
	}
}

func TestSubmitEntry_TooShort(t *testing.T) {
	state := NewChallengeState()
	now := mustTime(t, "2024-07-01T10:00:00Z")

	next, newBadges, err := SubmitEntry(state, "short", "P", now)
	if !errors.Is(err, ErrEntryTooShort) {
		t.Fatalf("expected ErrEntryTooShort, got %v", err)
	}
	if next != state {
		t.Fatal("rejection must return the input state untouched")
	}
	if newBadges != nil {
		t.Fatalf("expected no badges, got %v", newBadges)
	}
	// Whitespace padding must not defeat the minimum length.
	if _, _, err := SubmitEntry(state, "   abc def    ", "P", now); !errors.Is(err, ErrEntryTooShort) {
		t.Fatalf("expected ErrEntryTooShort for padded text, got %v", err)
	}
}

func TestSubmitEntry_AlreadySubmittedToday(t *testing.T) {
	first := mustTime(t, "2024-07-05T08:00:00Z")
	state, _, err := SubmitEntry(NewChallengeState(), "A perfectly fine entry.", "P", first)
	if err != nil {
		t.Fatalf("seed submission failed: %v", err)
	}

	later := mustTime(t, "2024-07-05T23:00:00Z")
	before := state.Clone()

	next, _, err := SubmitEntry(state, "Another attempt same day here.", "P", later)
	if !errors.Is(err, ErrAlreadySubmittedToday) {
		t.Fatalf("expected ErrAlreadySubmittedToday, got %v", err)
	}
	if next != state {
		t.Fatal("rejection must return the input state untouched")
	}
	if !reflect.DeepEqual(state, before) {
		t.Fatal("state mutated by a rejected submission")
	}

	// Same inputs, same rejection.
	if _, _, err := SubmitEntry(state, "Another attempt same day here.", "P", later); !errors.Is(err, ErrAlreadySubmittedToday) {
		t.Fatalf("second rejection differs: %v", err)
	}
}

func TestSubmitEntry_StreakContinuesOnAdjacentDay(t *testing.T) {
	last := mustTime(t, "2024-07-01T22:00:00Z")
	state := &ChallengeState{
		Entries:        []Entry{{Day: 1, Date: last, Text: "First entry of the run."}},
		CurrentDay:     2,
		Streak:         1,
		Points:         10,
		UnlockedBadges: []string{"entry-1"},
		LastEntryDate:  &last,
	}

	now := mustTime(t, "2024-07-02T06:00:00Z")
	next, _, err := SubmitEntry(state, "Second day in a row, still writing.", "P", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", next.Streak)
	}
	if next.Points != 10+10+5 {
		t.Fatalf("expected 25 points, got %d", next.Points)
	}
	if next.CurrentDay != 3 {
		t.Fatalf("expected currentDay 3, got %d", next.CurrentDay)
	}
}

func TestSubmitEntry_StreakResetsAfterGap(t *testing.T) {
	last := mustTime(t, "2024-07-01T09:00:00Z")
	state := &ChallengeState{
		Entries:        []Entry{{Day: 1, Date: last, Text: "Before the gap."}},
		CurrentDay:     2,
		Streak:         1,
		UnlockedBadges: []string{"entry-1"},
		LastEntryDate:  &last,
	}

	now := mustTime(t, "2024-07-04T09:00:00Z")
	next, _, err := SubmitEntry(state, "Back after missing two days.", "P", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Streak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", next.Streak)
	}
}

func TestSubmitEntry_DayCapped(t *testing.T) {
	last := mustTime(t, "2024-07-01T09:00:00Z")
	state := &ChallengeState{
		Entries:        []Entry{{Day: 30, Date: last, Text: "At the cap already."}},
		CurrentDay:     ChallengeLength,
		Streak:         1,
		UnlockedBadges: []string{"entry-1"},
		LastEntryDate:  &last,
	}

	now := mustTime(t, "2024-07-02T09:00:00Z")
	next, _, err := SubmitEntry(state, "Entries keep landing past day thirty.", "P", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentDay != ChallengeLength {
		t.Fatalf("expected currentDay pinned at %d, got %d", ChallengeLength, next.CurrentDay)
	}
	if len(next.Entries) != 2 {
		t.Fatalf("expected entry appended at the cap, got %d entries", len(next.Entries))
	}
	if next.Streak != 2 {
		t.Fatalf("expected streak to keep updating at the cap, got %d", next.Streak)
	}
}

func TestSubmitEntry_BadgesAreMonotonic(t *testing.T) {
	state := NewChallengeState()
	now := mustTime(t, "2024-07-01T09:00:00Z")

	for i := 0; i < 12; i++ {
		before := len(state.UnlockedBadges)
		next, _, err := SubmitEntry(state, "A steady daily gratitude entry.", "P", now)
		if err != nil {
			t.Fatalf("day %d: unexpected error: %v", i+1, err)
		}
		if len(next.UnlockedBadges) < before {
			t.Fatalf("day %d: unlockedBadges shrank from %d to %d", i+1, before, len(next.UnlockedBadges))
		}
		for _, id := range state.UnlockedBadges {
			if !next.HasBadge(id) {
				t.Fatalf("day %d: badge %s lost", i+1, id)
			}
		}
		state = next
		now = now.AddDate(0, 0, 1)
	}

	// 12 consecutive days: entries 1 and 10, streaks 3 and 7.
	for _, want := range []string{"entry-1", "streak-3", "streak-7", "entry-10"} {
		if !state.HasBadge(want) {
			t.Fatalf("expected badge %s after 12 days, got %v", want, state.UnlockedBadges)
		}
	}
	if state.HasBadge("share-1") {
		t.Fatal("share badge must not unlock through submissions")
	}
}

func TestSubmitEntry_MidnightBoundary(t *testing.T) {
	// 23:59 and 00:01 the next day are adjacent calendar days; the streak continues.
	last := mustTime(t, "2024-07-01T23:59:00Z")
	state := &ChallengeState{
		Entries:       []Entry{{Day: 1, Date: last, Text: "Late night entry."}},
		CurrentDay:    2,
		Streak:        1,
		LastEntryDate: &last,
	}

	next, _, err := SubmitEntry(state, "Just past midnight, new day.", "P", mustTime(t, "2024-07-02T00:01:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Streak != 2 {
		t.Fatalf("expected streak 2 across midnight, got %d", next.Streak)
	}
}

func TestRepairStreak(t *testing.T) {
	now := mustTime(t, "2024-07-10T12:00:00Z")

	tests := []struct {
		name       string
		last       string
		streak     int
		wantRepair bool
		wantStreak int
	}{
		{"same day", "2024-07-10T08:00:00Z", 5, false, 5},
		{"yesterday", "2024-07-09T23:00:00Z", 5, false, 5},
		{"two days ago", "2024-07-08T08:00:00Z", 5, true, 0},
		{"a week ago", "2024-07-03T08:00:00Z", 9, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := mustTime(t, tt.last)
			state := &ChallengeState{Streak: tt.streak, LastEntryDate: &last}
			if got := RepairStreak(state, now); got != tt.wantRepair {
				t.Fatalf("repair = %v, want %v", got, tt.wantRepair)
			}
			if state.Streak != tt.wantStreak {
				t.Fatalf("streak = %d, want %d", state.Streak, tt.wantStreak)
			}
		})
	}

	t.Run("no last entry", func(t *testing.T) {
		state := NewChallengeState()
		if RepairStreak(state, now) {
			t.Fatal("fresh state must not be repaired")
		}
	})
}

func TestUnlockShareBadges(t *testing.T) {
	state := NewChallengeState()
	now := mustTime(t, "2024-07-10T12:00:00Z")

	newly := UnlockShareBadges(state, now)
	if len(newly) != 1 || newly[0] != "share-1" {
		t.Fatalf("expected [share-1], got %v", newly)
	}
	if again := UnlockShareBadges(state, now); len(again) != 0 {
		t.Fatalf("expected no badges on repeat, got %v", again)
	}
}
