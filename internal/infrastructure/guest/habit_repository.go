// Package guest implements the ephemeral habit backend for sessions
// without an account. The entire collection is stored as one JSON
// document in a key-value store scoped to the session, so it disappears
// when the session does.
package guest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"
)

const habitsKey = "habits"

var (
	idMu   sync.Mutex
	lastID int64
)

// newHabitID returns a time-based id, strictly increasing within the
// process so two habits created in the same millisecond stay distinct.
func newHabitID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id

	return strconv.FormatInt(id, 10)
}

type habitRepository struct {
	kv repository.KeyValueStore
}

// NewHabitRepository creates a guest habit repository over the given
// session-scoped key-value store.
func NewHabitRepository(kv repository.KeyValueStore) repository.HabitRepository {
	return &habitRepository{kv: kv}
}

func (r *habitRepository) load(ctx context.Context) ([]*entity.Habit, error) {
	data, err := r.kv.Get(ctx, habitsKey)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	var habits []*entity.Habit
	if err := json.Unmarshal([]byte(data), &habits); err != nil {
		return nil, fmt.Errorf("%w: failed to decode habits: %v", errs.ErrStorage, err)
	}

	return habits, nil
}

func (r *habitRepository) save(ctx context.Context, habits []*entity.Habit) error {
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("%w: failed to encode habits: %v", errs.ErrStorage, err)
	}

	if err := r.kv.Set(ctx, habitsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	return nil
}

func (r *habitRepository) List(ctx context.Context) ([]*entity.Habit, error) {
	return r.load(ctx)
}

func (r *habitRepository) GetByID(ctx context.Context, id string) (*entity.Habit, error) {
	habits, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, habit := range habits {
		if habit.ID == id {
			return habit, nil
		}
	}

	return nil, fmt.Errorf("%w: habit %s", errs.ErrNotFound, id)
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	habits, err := r.load(ctx)
	if err != nil {
		return err
	}

	if habit.ID == "" {
		habit.ID = newHabitID()
	}

	return r.save(ctx, append(habits, habit))
}

func (r *habitRepository) Update(ctx context.Context, habit *entity.Habit) error {
	habits, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i, existing := range habits {
		if existing.ID == habit.ID {
			habits[i] = habit
			return r.save(ctx, habits)
		}
	}

	return fmt.Errorf("%w: habit %s", errs.ErrNotFound, habit.ID)
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	habits, err := r.load(ctx)
	if err != nil {
		return err
	}

	kept := habits[:0]
	for _, habit := range habits {
		if habit.ID != id {
			kept = append(kept, habit)
		}
	}

	// Absent id: nothing filtered out, saving is still harmless.
	return r.save(ctx, kept)
}

func (r *habitRepository) Clear(ctx context.Context) error {
	if err := r.kv.Remove(ctx, habitsKey); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	return nil
}
