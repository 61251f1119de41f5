package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"
	"habit-store/internal/domain/service"
	"habit-store/internal/streak"
)

// EventPublisher publishes habit lifecycle events for downstream
// consumers (notification pipeline). Publishing is best-effort: the
// service logs failures and never fails the user operation over them.
type EventPublisher interface {
	PublishHabitCreated(ctx context.Context, ownerID string, habit *entity.Habit) error
	PublishCompletionToggled(ctx context.Context, ownerID string, habit *entity.Habit, date string, completed bool) error
	PublishHabitDeleted(ctx context.Context, ownerID, habitID string) error
	PublishDataReset(ctx context.Context, ownerID string) error
}

type habitService struct {
	repo    repository.HabitRepository
	events  EventPublisher
	ownerID string
}

// NewHabitService creates a habit service over the given backend.
// events may be nil when no event pipeline is configured.
func NewHabitService(repo repository.HabitRepository, events EventPublisher, ownerID string) service.HabitService {
	return &habitService{
		repo:    repo,
		events:  events,
		ownerID: ownerID,
	}
}

func (s *habitService) ListHabits(ctx context.Context) ([]*entity.Habit, error) {
	habits, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	return habits, nil
}

func (s *habitService) CreateHabit(ctx context.Context, name string) (*entity.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: habit name must not be empty", errs.ErrInvalidInput)
	}

	now := time.Now().UTC()
	habit := &entity.Habit{
		Name:          name,
		Completions:   map[string]bool{},
		CurrentStreak: 0,
		LongestStreak: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishHabitCreated(ctx, s.ownerID, habit); err != nil {
			log.Printf("Failed to publish habit created event: %v", err)
		}
	}

	return habit, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishHabitDeleted(ctx, s.ownerID, id); err != nil {
			log.Printf("Failed to publish habit deleted event: %v", err)
		}
	}

	return nil
}

func (s *habitService) ToggleCompletion(ctx context.Context, id, date string) (*entity.Habit, error) {
	if _, err := time.Parse(streak.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", errs.ErrInvalidInput, date)
	}

	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	// Work on a copy so a failed persist leaves no observable change.
	updated := habit.Clone()
	completed := !updated.Completions[date]
	updated.Completions[date] = completed

	res := streak.Compute(updated.Completions, date)
	updated.CurrentStreak = res.Current

	// The longest streak is monotonic: toggling a past day off never
	// lowers a previously recorded maximum.
	updated.LongestStreak = res.Longest
	if habit.LongestStreak > updated.LongestStreak {
		updated.LongestStreak = habit.LongestStreak
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishCompletionToggled(ctx, s.ownerID, updated, date, completed); err != nil {
			log.Printf("Failed to publish completion toggled event: %v", err)
		}
	}

	return updated, nil
}

func (s *habitService) ResetAllData(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishDataReset(ctx, s.ownerID); err != nil {
			log.Printf("Failed to publish data reset event: %v", err)
		}
	}

	return nil
}
