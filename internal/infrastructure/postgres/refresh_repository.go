package postgres

import (
	"context"
	"fmt"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

type refreshRepository struct {
	pool *pgxpool.Pool
}

// NewStreakRefreshRepository creates the cross-account repository used
// by the periodic streak refresher.
func NewStreakRefreshRepository(pool *pgxpool.Pool) repository.StreakRefreshRepository {
	return &refreshRepository{pool: pool}
}

func (r *refreshRepository) ListAll(ctx context.Context) ([]*entity.Habit, error) {
	query := `
		SELECT id, name, completions, current_streak, longest_streak, created_at, updated_at
		FROM habits
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list habits: %v", errs.ErrStorage, err)
	}
	defer rows.Close()

	var habits []*entity.Habit
	for rows.Next() {
		habit := &entity.Habit{}
		err := rows.Scan(
			&habit.ID, &habit.Name, &habit.Completions,
			&habit.CurrentStreak, &habit.LongestStreak,
			&habit.CreatedAt, &habit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan habit: %v", errs.ErrStorage, err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate habits: %v", errs.ErrStorage, err)
	}

	return habits, nil
}

func (r *refreshRepository) UpdateStreaks(ctx context.Context, id string, current, longest int32) error {
	query := `
		UPDATE habits SET
			current_streak = $1,
			longest_streak = $2,
			updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, current, longest, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: failed to update streaks: %v", errs.ErrStorage, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: habit %s", errs.ErrNotFound, id)
	}

	return nil
}
