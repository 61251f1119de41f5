package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type habitRepository struct {
	pool   *pgxpool.Pool
	userID string
}

// NewHabitRepository creates the durable habit repository, bound to one
// account. Completions are stored as a JSONB date->bool map.
func NewHabitRepository(pool *pgxpool.Pool, userID string) repository.HabitRepository {
	return &habitRepository{pool: pool, userID: userID}
}

func (r *habitRepository) List(ctx context.Context) ([]*entity.Habit, error) {
	query := `
		SELECT id, name, completions, current_streak, longest_streak, created_at, updated_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, r.userID)
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

func (r *habitRepository) GetByID(ctx context.Context, id string) (*entity.Habit, error) {
	query := `
		SELECT id, name, completions, current_streak, longest_streak, created_at, updated_at
		FROM habits
		WHERE id = $1 AND user_id = $2
	`

	habit := &entity.Habit{}
	err := r.pool.QueryRow(ctx, query, id, r.userID).Scan(
		&habit.ID, &habit.Name, &habit.Completions,
		&habit.CurrentStreak, &habit.LongestStreak,
		&habit.CreatedAt, &habit.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: habit %s", errs.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get habit: %v", errs.ErrStorage, err)
	}

	return habit, nil
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}

	query := `
		INSERT INTO habits (id, user_id, name, completions, current_streak, longest_streak, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		habit.ID, r.userID, habit.Name, habit.Completions,
		habit.CurrentStreak, habit.LongestStreak,
		habit.CreatedAt, habit.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("%w: failed to create habit: %v", errs.ErrStorage, err)
	}

	return nil
}

func (r *habitRepository) Update(ctx context.Context, habit *entity.Habit) error {
	query := `
		UPDATE habits SET
			name = $1,
			completions = $2,
			current_streak = $3,
			longest_streak = $4,
			updated_at = $5
		WHERE id = $6 AND user_id = $7
	`

	result, err := r.pool.Exec(ctx, query,
		habit.Name, habit.Completions,
		habit.CurrentStreak, habit.LongestStreak,
		time.Now().UTC(), habit.ID, r.userID,
	)

	if err != nil {
		return fmt.Errorf("%w: failed to update habit: %v", errs.ErrStorage, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: habit %s", errs.ErrNotFound, habit.ID)
	}

	return nil
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM habits WHERE id = $1 AND user_id = $2`

	// Deleting an absent habit is a no-op, so the affected-row count
	// is intentionally not checked.
	_, err := r.pool.Exec(ctx, query, id, r.userID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete habit: %v", errs.ErrStorage, err)
	}

	return nil
}

func (r *habitRepository) Clear(ctx context.Context) error {
	query := `DELETE FROM habits WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, r.userID)
	if err != nil {
		return fmt.Errorf("%w: failed to clear habits: %v", errs.ErrStorage, err)
	}

	return nil
}
