package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/repository"
	"habit-store/internal/domain/service"
)

const preferencesKey = "preferences"

type settingsService struct {
	kv repository.KeyValueStore
}

// NewSettingsService creates a settings service persisting preferences
// through the given key-value store.
func NewSettingsService(kv repository.KeyValueStore) service.SettingsService {
	return &settingsService{kv: kv}
}

func (s *settingsService) GetPreferences(ctx context.Context) (*entity.Preferences, error) {
	data, err := s.kv.Get(ctx, preferencesKey)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return entity.DefaultPreferences(), nil
		}
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	var prefs entity.Preferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode preferences: %v", errs.ErrStorage, err)
	}

	return &prefs, nil
}

func (s *settingsService) UpdatePreferences(ctx context.Context, prefs *entity.Preferences) (*entity.Preferences, error) {
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode preferences: %v", errs.ErrStorage, err)
	}

	if err := s.kv.Set(ctx, preferencesKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return prefs, nil
}

func validatePreferences(prefs *entity.Preferences) error {
	switch prefs.Theme {
	case entity.ThemeSystem, entity.ThemeLight, entity.ThemeDark:
	default:
		return fmt.Errorf("%w: unknown theme %q", errs.ErrInvalidInput, prefs.Theme)
	}

	if _, err := time.Parse("15:04", prefs.ReminderTime); err != nil {
		return fmt.Errorf("%w: reminder time must be HH:MM, got %q", errs.ErrInvalidInput, prefs.ReminderTime)
	}

	return nil
}
