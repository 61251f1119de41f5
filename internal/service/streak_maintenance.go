package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"habit-store/internal/domain/repository"
	"habit-store/internal/domain/service"
	"habit-store/internal/streak"
)

type streakMaintenance struct {
	repo repository.StreakRefreshRepository
}

// NewStreakMaintenance creates the maintenance service that keeps
// cached current-streak values in sync with the calendar. The cached
// value is anchored at the day it was written, so a habit that was not
// completed yesterday still shows its old streak until refreshed.
func NewStreakMaintenance(repo repository.StreakRefreshRepository) service.StreakMaintenance {
	return &streakMaintenance{repo: repo}
}

func (m *streakMaintenance) RefreshStreaks(ctx context.Context) error {
	habits, err := m.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list habits for refresh: %w", err)
	}

	today := time.Now().Format(streak.DateLayout)
	refreshed := 0

	for _, habit := range habits {
		res := streak.Compute(habit.Completions, today)

		current := res.Current
		longest := res.Longest
		if habit.LongestStreak > longest {
			longest = habit.LongestStreak
		}

		if current == habit.CurrentStreak && longest == habit.LongestStreak {
			continue
		}

		if err := m.repo.UpdateStreaks(ctx, habit.ID, current, longest); err != nil {
			log.Printf("Failed to refresh streaks for habit %s: %v", habit.ID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("Refreshed streaks for %d habits", refreshed)
	}

	return nil
}
