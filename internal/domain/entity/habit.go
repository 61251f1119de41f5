package entity

import (
	"time"
)

// Habit represents a user-defined recurring activity tracked per calendar day.
type Habit struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Completions maps calendar dates ("YYYY-MM-DD", local calendar day)
	// to completion flags. A missing key means not completed.
	Completions map[string]bool `json:"completions"`

	// Streak state, cached on the record and recomputed on every
	// completion change. LongestStreak never decreases over the
	// habit's lifetime.
	CurrentStreak int32 `json:"currentStreak"`
	LongestStreak int32 `json:"longestStreak"`

	// Metadata
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompletedOn returns true if the habit was completed on the given date.
func (h *Habit) CompletedOn(date string) bool {
	return h.Completions[date]
}

// Clone returns a deep copy of the habit. Mutating operations work on a
// copy so that a failed persist leaves the original record untouched.
func (h *Habit) Clone() *Habit {
	clone := *h
	clone.Completions = make(map[string]bool, len(h.Completions))
	for date, done := range h.Completions {
		clone.Completions[date] = done
	}
	return &clone
}
