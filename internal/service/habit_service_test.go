package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

// fakeHabitRepo is an in-memory HabitRepository with injectable
// failures, used to exercise the service without a real backend.
type fakeHabitRepo struct {
	habits []*entity.Habit
	nextID int

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	clearErr  error
}

func (f *fakeHabitRepo) List(context.Context) ([]*entity.Habit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.habits, nil
}

func (f *fakeHabitRepo) GetByID(_ context.Context, id string) (*entity.Habit, error) {
	for _, h := range f.habits {
		if h.ID == id {
			return h.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: habit %s", errs.ErrNotFound, id)
}

func (f *fakeHabitRepo) Create(_ context.Context, habit *entity.Habit) error {
	if f.createErr != nil {
		return f.createErr
	}
	if habit.ID == "" {
		f.nextID++
		habit.ID = strconv.Itoa(f.nextID)
	}
	f.habits = append(f.habits, habit.Clone())
	return nil
}

func (f *fakeHabitRepo) Update(_ context.Context, habit *entity.Habit) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, h := range f.habits {
		if h.ID == habit.ID {
			f.habits[i] = habit.Clone()
			return nil
		}
	}
	return fmt.Errorf("%w: habit %s", errs.ErrNotFound, habit.ID)
}

func (f *fakeHabitRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.habits[:0]
	for _, h := range f.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	f.habits = kept
	return nil
}

func (f *fakeHabitRepo) Clear(context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.habits = nil
	return nil
}

type publishedEvent struct {
	eventType string
	habitID   string
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishHabitCreated(_ context.Context, _ string, habit *entity.Habit) error {
	f.events = append(f.events, publishedEvent{"created", habit.ID})
	return f.err
}

func (f *fakePublisher) PublishCompletionToggled(_ context.Context, _ string, habit *entity.Habit, _ string, _ bool) error {
	f.events = append(f.events, publishedEvent{"toggled", habit.ID})
	return f.err
}

func (f *fakePublisher) PublishHabitDeleted(_ context.Context, _ string, habitID string) error {
	f.events = append(f.events, publishedEvent{"deleted", habitID})
	return f.err
}

func (f *fakePublisher) PublishDataReset(_ context.Context, _ string) error {
	f.events = append(f.events, publishedEvent{"reset", ""})
	return f.err
}

const testOwner = "user-1"

// --- tests ---

func TestCreateHabit(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, "Read", habit.Name)
	assert.Empty(t, habit.Completions)
	assert.Equal(t, int32(0), habit.CurrentStreak)
	assert.Equal(t, int32(0), habit.LongestStreak)
	assert.False(t, habit.CreatedAt.IsZero())

	habits, err := svc.ListHabits(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, habit.ID, habits[0].ID)
}

func TestCreateHabit_TrimsName(t *testing.T) {
	svc := NewHabitService(&fakeHabitRepo{}, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "  Run  ")
	require.NoError(t, err)
	assert.Equal(t, "Run", habit.Name)
}

func TestCreateHabit_EmptyName(t *testing.T) {
	svc := NewHabitService(&fakeHabitRepo{}, nil, testOwner)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateHabit(context.Background(), name)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	}
}

func TestDeleteHabit(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHabit(context.Background(), habit.ID))

	habits, err := svc.ListHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)

	// Deleting again is a no-op, not an error.
	require.NoError(t, svc.DeleteHabit(context.Background(), habit.ID))
}

func TestToggleCompletion_FirstToggle(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	updated, err := svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.NoError(t, err)

	assert.True(t, updated.Completions["2024-03-03"])
	assert.Equal(t, int32(1), updated.CurrentStreak)
	assert.Equal(t, int32(1), updated.LongestStreak)
}

func TestToggleCompletion_UnknownID(t *testing.T) {
	svc := NewHabitService(&fakeHabitRepo{}, nil, testOwner)

	_, err := svc.ToggleCompletion(context.Background(), "missing", "2024-03-03")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestToggleCompletion_BadDate(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	_, err = svc.ToggleCompletion(context.Background(), habit.ID, "03/03/2024")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestToggleCompletion_Idempotence(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	// Build up a two-day run first.
	_, err = svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-02")
	require.NoError(t, err)
	before, err := svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, int32(2), before.CurrentStreak)

	// Toggle the same date twice: completions return to their prior
	// value and the current streak with them.
	_, err = svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.NoError(t, err)
	after, err := svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.NoError(t, err)

	assert.Equal(t, before.Completions, after.Completions)
	assert.Equal(t, before.CurrentStreak, after.CurrentStreak)
	assert.Equal(t, before.LongestStreak, after.LongestStreak)
}

func TestToggleCompletion_LongestNeverDecreases(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	var longest int32

	for _, date := range dates {
		updated, err := svc.ToggleCompletion(context.Background(), habit.ID, date)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, updated.LongestStreak, longest)
		longest = updated.LongestStreak
	}
	assert.Equal(t, int32(3), longest)

	// Toggling a past day off breaks the run but the recorded longest
	// streak stays at its historical maximum.
	updated, err := svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, int32(3), updated.LongestStreak)
	assert.Equal(t, int32(1), updated.CurrentStreak)
}

func TestToggleCompletion_FailedPersistLeavesStateUnchanged(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)

	repo.updateErr = fmt.Errorf("%w: connection refused", errs.ErrStorage)

	_, err = svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorage)

	repo.updateErr = nil
	stored, err := repo.GetByID(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completions["2024-03-03"])
	assert.Equal(t, int32(0), stored.CurrentStreak)
}

func TestResetAllData(t *testing.T) {
	repo := &fakeHabitRepo{}
	svc := NewHabitService(repo, nil, testOwner)

	_, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)
	_, err = svc.CreateHabit(context.Background(), "Run")
	require.NoError(t, err)

	require.NoError(t, svc.ResetAllData(context.Background()))

	habits, err := svc.ListHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestEventsPublished(t *testing.T) {
	repo := &fakeHabitRepo{}
	pub := &fakePublisher{}
	svc := NewHabitService(repo, pub, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)
	_, err = svc.ToggleCompletion(context.Background(), habit.ID, "2024-03-03")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteHabit(context.Background(), habit.ID))
	require.NoError(t, svc.ResetAllData(context.Background()))

	require.Len(t, pub.events, 4)
	assert.Equal(t, "created", pub.events[0].eventType)
	assert.Equal(t, "toggled", pub.events[1].eventType)
	assert.Equal(t, "deleted", pub.events[2].eventType)
	assert.Equal(t, "reset", pub.events[3].eventType)
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	repo := &fakeHabitRepo{}
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewHabitService(repo, pub, testOwner)

	habit, err := svc.CreateHabit(context.Background(), "Read")
	require.NoError(t, err)
	assert.NotEmpty(t, habit.ID)
}
