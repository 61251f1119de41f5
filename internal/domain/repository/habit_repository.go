package repository

import (
	"context"

	"habit-store/internal/domain/entity"
)

// HabitRepository defines the storage capability behind a habit
// collection. Implementations are bound to a single owner (an account
// or a guest session) at construction time, so the interface itself
// carries no owner parameter.
//
// Two realizations exist: an ephemeral key-value backed store for guest
// sessions and a durable per-account PostgreSQL store. The business
// logic is identical over either.
type HabitRepository interface {
	// List retrieves all habits in the collection, in insertion order.
	List(ctx context.Context) ([]*entity.Habit, error)

	// GetByID retrieves a single habit. Returns errs.ErrNotFound if
	// the id is not in the collection.
	GetByID(ctx context.Context, id string) (*entity.Habit, error)

	// Create persists a new habit. If the habit has no ID yet the
	// repository assigns one.
	Create(ctx context.Context, habit *entity.Habit) error

	// Update replaces the stored record for the habit's ID. Returns
	// errs.ErrNotFound if the id is not in the collection.
	Update(ctx context.Context, habit *entity.Habit) error

	// Delete removes the habit with the given id. Deleting an absent
	// id is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// Clear removes every habit in the collection.
	Clear(ctx context.Context) error
}
