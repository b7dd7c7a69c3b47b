package challenge

import (
	"strings"
	"time"
)

// SubmitEntry is the single state transition of the challenge. Given the
// loaded state, the submission text, the prompt shown at authoring time and
// the submission instant, it either rejects the submission or returns the
// next state together with the ids of any badges the submission unlocked.
//
// The input state is never mutated; rejections return it untouched so a
// repeated call with the same inputs yields the same rejection.
func SubmitEntry(state *ChallengeState, text, prompt string, now time.Time) (*ChallengeState, []string, error) {
	if len(strings.TrimSpace(text)) < MinEntryLength {
		return state, nil, ErrEntryTooShort
	}
	if state.LastEntryDate != nil && sameCalendarDay(*state.LastEntryDate, now) {
		return state, nil, ErrAlreadySubmittedToday
	}

	next := state.Clone()

	next.Entries = append(next.Entries, Entry{
		Day:    state.CurrentDay,
		Date:   now,
		Text:   text,
		Prompt: prompt,
	})

	// A streak survives only when the previous submission landed exactly on
	// the previous calendar day. Every other case, including the first-ever
	// submission, starts a new streak at 1.
	yesterday := now.AddDate(0, 0, -1)
	if state.LastEntryDate != nil && sameCalendarDay(*state.LastEntryDate, yesterday) {
		next.Streak = state.Streak + 1
	} else {
		next.Streak = 1
	}

	next.Points = state.Points + pointsForSubmission(next.Streak)

	if state.CurrentDay < ChallengeLength {
		next.CurrentDay = state.CurrentDay + 1
	}

	newly := evaluateBadges(next, next.Streak, len(next.Entries))

	submitted := now
	next.LastEntryDate = &submitted
	next.UpdatedAt = now

	return next, newly, nil
}

// pointsForSubmission awards a flat base per entry plus a bonus that grows
// with the running streak.
func pointsForSubmission(streak int) int {
	points := 10
	if streak > 1 {
		points += 5 * (streak - 1)
	}
	return points
}

// RepairStreak zeroes a stale streak on load. When the last submission is
// neither today nor yesterday the streak was already broken while the app
// was closed, and must not be displayed as alive. Returns true when the
// state was changed.
func RepairStreak(state *ChallengeState, now time.Time) bool {
	if state.LastEntryDate == nil || state.Streak == 0 {
		return false
	}
	last := *state.LastEntryDate
	if sameCalendarDay(last, now) {
		return false
	}
	if sameCalendarDay(last, now.AddDate(0, 0, -1)) {
		return false
	}
	state.Streak = 0
	return true
}

// UnlockShareBadges unlocks every share-type catalog badge that is not
// already unlocked. It is driven by an external share action, never by the
// submit path. Returns the newly unlocked ids.
func UnlockShareBadges(state *ChallengeState, now time.Time) []string {
	var newly []string
	for _, badge := range badgeCatalog {
		if badge.Type != BadgeTypeShare || state.HasBadge(badge.ID) {
			continue
		}
		state.UnlockedBadges = append(state.UnlockedBadges, badge.ID)
		newly = append(newly, badge.ID)
	}
	if len(newly) > 0 {
		state.UpdatedAt = now
	}
	return newly
}
