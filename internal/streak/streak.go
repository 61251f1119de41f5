// Package streak computes completion-streak statistics for a habit.
// It is pure: no clock, no storage, no timezone handling. Callers are
// responsible for producing date strings in a consistent local
// calendar.
package streak

import (
	"sort"
	"time"
)

// DateLayout is the calendar-date format used throughout the service.
const DateLayout = "2006-01-02"

// Result holds the two derived streak values for a completions map.
type Result struct {
	// Current is the number of consecutive completed days ending at
	// the reference date, or 0 if the reference date itself is not
	// completed.
	Current int32

	// Longest is the longest consecutive-completed run anywhere in
	// the map. Always >= Current.
	Longest int32
}

// Compute derives the current and longest streaks from a completions
// map and a reference "today" date. Entries with a false value are
// treated the same as absent entries. Keys that do not parse as
// DateLayout dates are ignored.
func Compute(completions map[string]bool, today string) Result {
	dates := completedDates(completions)
	if len(dates) == 0 {
		return Result{}
	}

	return Result{
		Current: currentStreak(completions, today),
		Longest: longestStreak(dates),
	}
}

// completedDates returns the sorted, valid dates with a true value.
func completedDates(completions map[string]bool) []time.Time {
	dates := make([]time.Time, 0, len(completions))
	for date, done := range completions {
		if !done {
			continue
		}
		day, err := time.Parse(DateLayout, date)
		if err != nil {
			continue
		}
		dates = append(dates, day)
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates
}

// currentStreak walks backward one calendar day at a time from today,
// counting consecutive completed days. The count includes today itself,
// so a lone completion today is a streak of 1.
func currentStreak(completions map[string]bool, today string) int32 {
	if !completions[today] {
		return 0
	}

	day, err := time.Parse(DateLayout, today)
	if err != nil {
		return 0
	}

	streak := int32(1)
	for {
		day = day.AddDate(0, 0, -1)
		if !completions[day.Format(DateLayout)] {
			break
		}
		streak++
	}

	return streak
}

// longestStreak walks the sorted completed dates, extending the running
// streak when consecutive dates are exactly one calendar day apart and
// restarting it otherwise.
func longestStreak(dates []time.Time) int32 {
	var longest, run int32

	for i, date := range dates {
		if i == 0 || daysBetween(dates[i-1], date) != 1 {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}

// daysBetween returns the whole-day difference between two parsed
// dates. Both come from DateLayout parsing, so they are midnight UTC
// and the division is exact across month and year boundaries.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
