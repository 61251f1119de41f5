package guest

import (
	"context"
	"testing"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"
	"habit-store/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() (*memory.Store, repository.HabitRepository) {
	store := memory.NewStore()
	repo := NewHabitRepository(store.Scoped("guest:session-1:"))
	return store, repo
}

func newHabit(name string) *entity.Habit {
	now := time.Now().UTC()
	return &entity.Habit{
		Name:        name,
		Completions: map[string]bool{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateAssignsTimeBasedID(t *testing.T) {
	_, repo := newTestRepo()
	ctx := context.Background()

	first := newHabit("Read")
	require.NoError(t, repo.Create(ctx, first))
	second := newHabit("Run")
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	// IDs are monotonic, so creation order is recoverable.
	assert.Less(t, first.ID, second.ID)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	_, repo := newTestRepo()
	ctx := context.Background()

	names := []string{"Read", "Run", "Meditate"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, newHabit(name)))
	}

	habits, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, habits, 3)
	for i, habit := range habits {
		assert.Equal(t, names[i], habit.Name)
	}
}

func TestListEmptySession(t *testing.T) {
	_, repo := newTestRepo()

	habits, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestGetByID(t *testing.T) {
	_, repo := newTestRepo()
	ctx := context.Background()

	habit := newHabit("Read")
	require.NoError(t, repo.Create(ctx, habit))

	got, err := repo.GetByID(ctx, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, habit.Name, got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	_, repo := newTestRepo()
	ctx := context.Background()

	habit := newHabit("Read")
	require.NoError(t, repo.Create(ctx, habit))

	habit.Completions["2024-03-03"] = true
	habit.CurrentStreak = 1
	habit.LongestStreak = 1
	require.NoError(t, repo.Update(ctx, habit))

	got, err := repo.GetByID(ctx, habit.ID)
	require.NoError(t, err)
	assert.True(t, got.Completions["2024-03-03"])
	assert.Equal(t, int32(1), got.CurrentStreak)

	missing := newHabit("Ghost")
	missing.ID = "missing"
	assert.ErrorIs(t, repo.Update(ctx, missing), errs.ErrNotFound)
}

func TestDeleteIsNoOpForAbsentID(t *testing.T) {
	_, repo := newTestRepo()
	ctx := context.Background()

	habit := newHabit("Read")
	require.NoError(t, repo.Create(ctx, habit))

	require.NoError(t, repo.Delete(ctx, habit.ID))
	require.NoError(t, repo.Delete(ctx, habit.ID))

	habits, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestClearRemovesHabitsOnly(t *testing.T) {
	store, repo := newTestRepo()
	ctx := context.Background()

	// Preferences live next to habits under the same session prefix
	// and must survive a habit reset.
	kv := store.Scoped("guest:session-1:")
	require.NoError(t, kv.Set(ctx, "preferences", `{"theme":"dark"}`))

	require.NoError(t, repo.Create(ctx, newHabit("Read")))
	require.NoError(t, repo.Clear(ctx))

	habits, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habits)

	prefs, err := kv.Get(ctx, "preferences")
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, prefs)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	repoA := NewHabitRepository(store.Scoped("guest:a:"))
	repoB := NewHabitRepository(store.Scoped("guest:b:"))

	require.NoError(t, repoA.Create(ctx, newHabit("Read")))

	habitsB, err := repoB.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, habitsB)
}
