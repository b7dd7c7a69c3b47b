package challenge

import (
	"context"
	"time"
)

// ChallengeLength is the number of daily prompts in one challenge cycle.
const ChallengeLength = 30

// MinEntryLength is the minimum number of characters (after trimming) a
// submission must contain before it is accepted.
const MinEntryLength = 10

// Entry is one gratitude submission tied to a challenge day.
type Entry struct {
	Day    int       `json:"day" firestore:"day"`
	Date   time.Time `json:"date" firestore:"date"`
	Text   string    `json:"text" firestore:"text"`
	Prompt string    `json:"prompt" firestore:"prompt"`
}

// ChallengeState is the persisted record for one user's challenge. Entries
// are append-only, UnlockedBadges only ever grows and CurrentDay is capped
// at ChallengeLength.
type ChallengeState struct {
	Entries        []Entry    `json:"entries" firestore:"entries"`
	CurrentDay     int        `json:"current_day" firestore:"current_day"`
	Streak         int        `json:"streak" firestore:"streak"`
	Points         int        `json:"points" firestore:"points"`
	UnlockedBadges []string   `json:"unlocked_badges" firestore:"unlocked_badges"`
	LastEntryDate  *time.Time `json:"last_entry_date" firestore:"last_entry_date"`
	UpdatedAt      time.Time  `json:"updated_at" firestore:"updated_at"`
}

// NewChallengeState returns the state a user starts with before their
// first-ever submission.
func NewChallengeState() *ChallengeState {
	return &ChallengeState{
		Entries:        []Entry{},
		CurrentDay:     1,
		Streak:         0,
		Points:         0,
		UnlockedBadges: []string{},
		LastEntryDate:  nil,
	}
}

// Clone returns a deep copy so the engine can build the next state without
// mutating the loaded one.
func (s *ChallengeState) Clone() *ChallengeState {
	out := &ChallengeState{
		Entries:        make([]Entry, len(s.Entries)),
		CurrentDay:     s.CurrentDay,
		Streak:         s.Streak,
		Points:         s.Points,
		UnlockedBadges: make([]string, len(s.UnlockedBadges)),
		UpdatedAt:      s.UpdatedAt,
	}
	copy(out.Entries, s.Entries)
	copy(out.UnlockedBadges, s.UnlockedBadges)
	if s.LastEntryDate != nil {
		d := *s.LastEntryDate
		out.LastEntryDate = &d
	}
	return out
}

// HasBadge reports whether the badge id has already been unlocked.
func (s *ChallengeState) HasBadge(id string) bool {
	for _, b := range s.UnlockedBadges {
		if b == id {
			return true
		}
	}
	return false
}

// Valid performs the basic shape validation applied to persisted snapshots.
// A state that fails it is treated as absent and replaced with defaults.
func (s *ChallengeState) Valid() bool {
	if s.CurrentDay < 1 || s.CurrentDay > ChallengeLength {
		return false
	}
	if s.Streak < 0 || s.Points < 0 {
		return false
	}
	for _, e := range s.Entries {
		if e.Day < 1 || e.Day > ChallengeLength || e.Date.IsZero() {
			return false
		}
	}
	return true
}

// Repository defines persistence for challenge state. One record per user;
// the engine itself never touches storage.
type Repository interface {
	Load(ctx context.Context, userID string) (*ChallengeState, error)
	Save(ctx context.Context, userID string, state *ChallengeState) error
	Delete(ctx context.Context, userID string) error
	RecordShare(ctx context.Context, share ShareEvent) error
	CountShares(ctx context.Context, userID string) (int, error)
}

// ShareEvent records one successful share/export action.
type ShareEvent struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	Channel   string    `json:"channel" firestore:"channel"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}

// calendarDay collapses an instant to its UTC (year, month, day) tuple.
// All same-day and adjacent-day comparisons in the engine go through this
// so the day boundary is a single, explicit policy.
func calendarDay(t time.Time) (int, time.Month, int) {
	u := t.UTC()
	return u.Year(), u.Month(), u.Day()
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := calendarDay(a)
	by, bm, bd := calendarDay(b)
	return ay == by && am == bm && ad == bd
}
