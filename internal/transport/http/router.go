package http

import (
	"net/http"

	"habit-store/internal/transport/http/middleware"

	"github.com/gorilla/mux"
)

// Router sets up HTTP routes.
type Router struct {
	habitHandler *HabitHandler
	identity     *middleware.IdentityMiddleware
	rpm          int
}

// NewRouter creates a new router.
func NewRouter(habitHandler *HabitHandler, identity *middleware.IdentityMiddleware, requestsPerMinute int) *Router {
	return &Router{
		habitHandler: habitHandler,
		identity:     identity,
		rpm:          requestsPerMinute,
	}
}

// Setup configures all routes.
func (r *Router) Setup() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/habits", r.identity.Resolve(r.habitHandler.ListHabits)).Methods(http.MethodGet)
	api.HandleFunc("/habits", r.identity.Resolve(r.habitHandler.CreateHabit)).Methods(http.MethodPost)
	api.HandleFunc("/habits/toggle", r.identity.Resolve(r.habitHandler.ToggleCompletion)).Methods(http.MethodPost)
	api.HandleFunc("/habits/delete", r.identity.Resolve(r.habitHandler.DeleteHabit)).Methods(http.MethodPost)
	api.HandleFunc("/data/reset", r.identity.Resolve(r.habitHandler.ResetData)).Methods(http.MethodPost)

	api.HandleFunc("/preferences", r.identity.Resolve(r.habitHandler.GetPreferences)).Methods(http.MethodGet)
	api.HandleFunc("/preferences", r.identity.Resolve(r.habitHandler.UpdatePreferences)).Methods(http.MethodPut)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = router

	handler = middleware.Logging(handler)

	handler = middleware.RateLimit(r.rpm)(handler)

	return handler
}
