package challenge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Service wraps the pure progression engine with persistence. Every call
// loads the user's state, applies the load-time streak repair once, runs
// the transition and writes the result back.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new challenge service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// BadgeStatus is a catalog badge together with its unlocked state for one user.
type BadgeStatus struct {
	Badge
	Unlocked bool `json:"unlocked"`
}

// Overview is the payload backing the main challenge screen.
type Overview struct {
	State          *ChallengeState `json:"state"`
	TodayPrompt    string          `json:"today_prompt"`
	SubmittedToday bool            `json:"submitted_today"`
	Badges         []BadgeStatus   `json:"badges"`
	ShareCount     int             `json:"share_count"`
}

// SubmitResult carries the outcome of an accepted submission. Persisted is
// false when the state transition succeeded but the write-back failed; the
// returned state is still authoritative for the rest of the session.
type SubmitResult struct {
	State     *ChallengeState `json:"state"`
	NewBadges []string        `json:"new_badges"`
	Persisted bool            `json:"persisted"`
}

// ShareResult reports badges unlocked by a share action, plus a caption
// the client can hand to the platform share sheet.
type ShareResult struct {
	NewBadges []string `json:"new_badges"`
	Caption   string   `json:"caption"`
}

// Overview assembles the challenge screen payload, fetching state and the
// user's share count concurrently.
func (s *Service) Overview(ctx context.Context, userID string) (*Overview, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	var (
		state      *ChallengeState
		shareCount int
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		loaded, err := s.loadOrDefault(ctx, userID)
		if err != nil {
			return err
		}
		state = loaded
		return nil
	})

	g.Go(func() error {
		n, err := s.repo.CountShares(ctx, userID)
		if err != nil {
			return err
		}
		shareCount = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	catalog := Catalog()
	badges := make([]BadgeStatus, 0, len(catalog))
	for _, b := range catalog {
		badges = append(badges, BadgeStatus{Badge: b, Unlocked: state.HasBadge(b.ID)})
	}

	return &Overview{
		State:          state,
		TodayPrompt:    PromptForDay(state.CurrentDay),
		SubmittedToday: state.LastEntryDate != nil && sameCalendarDay(*state.LastEntryDate, now),
		Badges:         badges,
		ShareCount:     shareCount,
	}, nil
}

// Submit runs the engine transition for a new entry. Rejections come back
// as ErrEntryTooShort or ErrAlreadySubmittedToday; a failed write-back is
// reported through SubmitResult.Persisted rather than as an error.
func (s *Service) Submit(ctx context.Context, userID, text, prompt string) (*SubmitResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	state, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if prompt == "" {
		prompt = PromptForDay(state.CurrentDay)
	}

	next, newBadges, err := SubmitEntry(state, text, prompt, now)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{State: next, NewBadges: newBadges, Persisted: true}
	if err := s.repo.Save(ctx, userID, next); err != nil {
		result.Persisted = false
	}
	return result, nil
}

// Share records a share action and unlocks share-type badges.
func (s *Service) Share(ctx context.Context, userID, channel string) (*ShareResult, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	state, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.RecordShare(ctx, ShareEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Channel:   channel,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	newBadges := UnlockShareBadges(state, now)
	if len(newBadges) > 0 {
		if err := s.repo.Save(ctx, userID, state); err != nil {
			return nil, err
		}
	}
	return &ShareResult{NewBadges: newBadges, Caption: shareCaption(state)}, nil
}

func shareCaption(state *ChallengeState) string {
	caption := fmt.Sprintf("day %d of my 30-day gratitude challenge, %d entries and a %d-day streak",
		state.CurrentDay, len(state.Entries), state.Streak)
	return cases.Title(language.English).String(caption)
}

// Reset discards the user's challenge state entirely.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	return s.repo.Delete(ctx, userID)
}

// Journal returns the user's entries, newest first.
func (s *Service) Journal(ctx context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	state, err := s.loadOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(state.Entries))
	copy(entries, state.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

// Export returns the state as a portable snapshot.
func (s *Service) Export(ctx context.Context, userID string) (*ChallengeState, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.loadOrDefault(ctx, userID)
}

// Import replaces the user's state with a previously exported snapshot.
// The snapshot must pass shape validation; its streak is repaired against
// the current clock before it is persisted.
func (s *Service) Import(ctx context.Context, userID string, snapshot *ChallengeState) (*ChallengeState, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if snapshot == nil || !snapshot.Valid() {
		return nil, ErrInvalidSnapshot
	}

	state := snapshot.Clone()
	if state.Entries == nil {
		state.Entries = []Entry{}
	}
	if state.UnlockedBadges == nil {
		state.UnlockedBadges = []string{}
	}
	RepairStreak(state, s.now())

	if err := s.repo.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// State returns the repaired state for use by other components.
func (s *Service) State(ctx context.Context, userID string) (*ChallengeState, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	return s.loadOrDefault(ctx, userID)
}

// loadOrDefault loads the persisted state, falling back to defaults when
// nothing is stored or the stored record fails shape validation. The
// streak repair runs here, once per load, so a stale streak is never
// visible downstream.
func (s *Service) loadOrDefault(ctx context.Context, userID string) (*ChallengeState, error) {
	state, err := s.repo.Load(ctx, userID)
	if err == ErrStateNotFound {
		return NewChallengeState(), nil
	}
	if err != nil {
		return nil, err
	}
	if !state.Valid() {
		return NewChallengeState(), nil
	}

	if RepairStreak(state, s.now()) {
		// Best effort: persist the repair so other readers see it too.
		_ = s.repo.Save(ctx, userID, state)
	}
	return state, nil
}
