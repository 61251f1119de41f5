package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"habit-store/internal/domain/entity"
	"habit-store/internal/domain/errs"
	"habit-store/internal/domain/service"
	"habit-store/internal/streak"
	"habit-store/internal/transport/http/middleware"
)

// ServiceResolver binds the caller identity to the services backed by
// the right store: durable for authenticated users, ephemeral for
// guests. The binding happens once per request; handlers never branch
// on the identity themselves.
type ServiceResolver interface {
	HabitService(identity middleware.Identity) service.HabitService
	SettingsService(identity middleware.Identity) service.SettingsService
}

// HabitHandler handles habit-related HTTP requests.
type HabitHandler struct {
	resolver ServiceResolver
}

// NewHabitHandler creates a new habit handler.
func NewHabitHandler(resolver ServiceResolver) *HabitHandler {
	return &HabitHandler{
		resolver: resolver,
	}
}

func (h *HabitHandler) habits(r *http.Request) (service.HabitService, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		return nil, false
	}
	return h.resolver.HabitService(identity), true
}

func (h *HabitHandler) settings(r *http.Request) (service.SettingsService, bool) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		return nil, false
	}
	return h.resolver.SettingsService(identity), true
}

// ListHabits returns every habit in the caller's collection.
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.habits(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	habits, err := svc.ListHabits(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if habits == nil {
		habits = []*entity.Habit{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"habits": habits,
		"total":  len(habits),
	})
}

// CreateHabit creates a new habit from {"name": ...}.
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.habits(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	habit, err := svc.CreateHabit(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"habit": habit,
	})
}

// DeleteHabit removes a habit by id. Deleting an unknown id succeeds.
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.habits(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := svc.DeleteHabit(r.Context(), req.ID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "habit deleted",
	})
}

// ToggleCompletion flips today's completion flag for a habit. The
// request may carry an explicit date so clients apply their own local
// calendar; it defaults to the server's local day.
func (h *HabitHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.habits(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ID   string `json:"id"`
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		req.Date = time.Now().Format(streak.DateLayout)
	}

	habit, err := svc.ToggleCompletion(r.Context(), req.ID, req.Date)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"habit": habit,
	})
}

// ResetData clears the caller's entire habit collection.
func (h *HabitHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.habits(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := svc.ResetAllData(r.Context()); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "all data reset",
	})
}

// GetPreferences returns the caller's preferences, defaults included.
func (h *HabitHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.settings(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prefs, err := svc.GetPreferences(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
	})
}

// UpdatePreferences validates and stores new preferences.
func (h *HabitHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.settings(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var prefs entity.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := svc.UpdatePreferences(r.Context(), &prefs)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"preferences": updated,
	})
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrStorage):
		writeError(w, http.StatusBadGateway, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]interface{}{
		"error": err.Error(),
	})
}
