package service

import (
	"context"

	"habit-store/internal/domain/entity"
)

// HabitService defines the business operations over one habit
// collection. Errors follow the errs package taxonomy: ErrInvalidInput
// for bad caller values, ErrNotFound for missing ids, ErrStorage for
// backend failures. Operations either complete fully or leave the
// collection unchanged.
type HabitService interface {
	// ListHabits retrieves all habits in the collection.
	ListHabits(ctx context.Context) ([]*entity.Habit, error)

	// CreateHabit creates a habit with the given display name, empty
	// completions and zero streaks.
	CreateHabit(ctx context.Context, name string) (*entity.Habit, error)

	// DeleteHabit removes a habit. Removing an absent id is a no-op.
	DeleteHabit(ctx context.Context, id string) error

	// ToggleCompletion flips the completion flag for the given date,
	// recomputes the cached streak values and persists the habit.
	// The date is the caller's local calendar day in "YYYY-MM-DD" form.
	ToggleCompletion(ctx context.Context, id, date string) (*entity.Habit, error)

	// ResetAllData clears the entire habit collection.
	ResetAllData(ctx context.Context) error
}

// SettingsService manages per-user application preferences.
type SettingsService interface {
	// GetPreferences returns the stored preferences, or defaults if
	// the user has never saved any.
	GetPreferences(ctx context.Context) (*entity.Preferences, error)

	// UpdatePreferences validates and persists new preferences.
	UpdatePreferences(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error)
}

// StreakMaintenance recomputes cached streak values that have gone
// stale since they were last written (the current streak is anchored
// at "today", so it decays at midnight without any user action).
type StreakMaintenance interface {
	RefreshStreaks(ctx context.Context) error
}
