// Package httpapi binds the task and note stores to a JSON REST surface
// under /api.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// Handler serves the REST surface over one backend.
type Handler struct {
	backend types.Backend
	logger  *slog.Logger
}

// NewHandler returns the routed handler with request ID, panic recovery and
// access logging applied. A nil logger uses slog.Default.
func NewHandler(backend types.Backend, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{backend: backend, logger: logger}

	router := mux.NewRouter()
	router.Use(WithRequestID, WithRecover(logger), WithAccessLog(logger))
	RegisterRoutes(router.PathPrefix("/api").Subrouter(), h)
	return router
}

// RegisterRoutes sets up all routes on router.
func RegisterRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	router.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/stats", h.TaskStats).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", h.UpdateTask).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id}", h.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id}/toggle", h.ToggleTask).Methods(http.MethodPatch)

	router.HandleFunc("/notes", h.ListNotes).Methods(http.MethodGet)
	router.HandleFunc("/notes", h.CreateNote).Methods(http.MethodPost)
	router.HandleFunc("/notes/{id}", h.UpdateNote).Methods(http.MethodPut)
	router.HandleFunc("/notes/{id}", h.DeleteNote).Methods(http.MethodDelete)
}

// Health handles GET /health. It always answers 200; the status field
// carries the probe result.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.backend.Health(r.Context()))
}

// Serve runs an HTTP server on addr until ctx is done, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
