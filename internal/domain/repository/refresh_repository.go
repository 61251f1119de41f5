package repository

import (
	"context"

	"habit-store/internal/domain/entity"
)

// StreakRefreshRepository gives the periodic streak refresher access to
// the durable collection across all accounts. Guest collections are not
// refreshed; they die with the session.
type StreakRefreshRepository interface {
	// ListAll retrieves every durable habit regardless of owner.
	ListAll(ctx context.Context) ([]*entity.Habit, error)

	// UpdateStreaks writes back recomputed streak values for one habit.
	UpdateStreaks(ctx context.Context, id string, current, longest int32) error
}
