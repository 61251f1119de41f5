package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_EmptyMap(t *testing.T) {
	res := Compute(map[string]bool{}, "2024-03-03")
	assert.Equal(t, Result{Current: 0, Longest: 0}, res)
}

func TestCompute_OnlyFalseEntries(t *testing.T) {
	completions := map[string]bool{
		"2024-03-01": false,
		"2024-03-02": false,
	}
	res := Compute(completions, "2024-03-02")
	assert.Equal(t, Result{Current: 0, Longest: 0}, res)
}

func TestCompute_ThreeDayRunEndingToday(t *testing.T) {
	completions := map[string]bool{
		"2024-03-01": true,
		"2024-03-02": true,
		"2024-03-03": true,
	}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 3, Longest: 3}, res)
}

func TestCompute_GapBreaksCurrentStreak(t *testing.T) {
	completions := map[string]bool{
		"2024-03-01": true,
		"2024-03-03": true,
	}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 1, Longest: 1}, res)
}

func TestCompute_TodayNotCompleted(t *testing.T) {
	completions := map[string]bool{
		"2024-03-01": true,
		"2024-03-02": true,
	}
	res := Compute(completions, "2024-03-05")
	assert.Equal(t, Result{Current: 0, Longest: 2}, res)
}

func TestCompute_FalseEntryBreaksRun(t *testing.T) {
	completions := map[string]bool{
		"2024-03-01": true,
		"2024-03-02": false,
		"2024-03-03": true,
	}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 1, Longest: 1}, res)
}

func TestCompute_MonthBoundary(t *testing.T) {
	completions := map[string]bool{
		"2024-02-28": true,
		"2024-02-29": true, // leap year
		"2024-03-01": true,
	}
	res := Compute(completions, "2024-03-01")
	assert.Equal(t, Result{Current: 3, Longest: 3}, res)
}

func TestCompute_YearBoundary(t *testing.T) {
	completions := map[string]bool{
		"2023-12-30": true,
		"2023-12-31": true,
		"2024-01-01": true,
	}
	res := Compute(completions, "2024-01-01")
	assert.Equal(t, Result{Current: 3, Longest: 3}, res)
}

func TestCompute_LongestRunInThePast(t *testing.T) {
	completions := map[string]bool{
		"2024-01-01": true,
		"2024-01-02": true,
		"2024-01-03": true,
		"2024-01-04": true,
		"2024-03-02": true,
		"2024-03-03": true,
	}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 2, Longest: 4}, res)
}

func TestCompute_SingleCompletionToday(t *testing.T) {
	completions := map[string]bool{"2024-03-03": true}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 1, Longest: 1}, res)
}

func TestCompute_MalformedKeysIgnored(t *testing.T) {
	completions := map[string]bool{
		"garbage":    true,
		"2024-03-03": true,
	}
	res := Compute(completions, "2024-03-03")
	assert.Equal(t, Result{Current: 1, Longest: 1}, res)
}

func TestCompute_LongestAlwaysAtLeastCurrent(t *testing.T) {
	cases := []struct {
		name        string
		completions map[string]bool
		today       string
	}{
		{
			name:        "run ending today",
			completions: map[string]bool{"2024-03-02": true, "2024-03-03": true},
			today:       "2024-03-03",
		},
		{
			name: "longer run in the past",
			completions: map[string]bool{
				"2024-01-01": true, "2024-01-02": true, "2024-01-03": true,
				"2024-03-03": true,
			},
			today: "2024-03-03",
		},
		{
			name:        "scattered singles",
			completions: map[string]bool{"2024-01-01": true, "2024-02-01": true, "2024-03-03": true},
			today:       "2024-03-03",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Compute(tc.completions, tc.today)
			assert.GreaterOrEqual(t, res.Longest, res.Current)
		})
	}
}
