package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/taskdesk/internal/view"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// ListTasks handles GET /tasks. The view filter parameters (category,
// status, priority, order) narrow and sort the result.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	tasks, err := store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filter := view.FilterFromValues(r.URL.Query())
	writeJSON(w, http.StatusOK, view.Apply(tasks, filter))
}

// TaskStats handles GET /tasks/stats.
func (h *Handler) TaskStats(w http.ResponseWriter, r *http.Request) {
	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	tasks, err := store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.Summarize(tasks))
}

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in types.TaskInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, err)
		return
	}

	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := store.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id} with a partial body.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var patch types.TaskPatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, err)
		return
	}

	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := store.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ToggleTask handles PATCH /tasks/{id}/toggle with body {"completed": bool}.
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Completed *bool `json:"completed"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Completed == nil {
		writeError(w, &types.ValidationError{Field: "completed", Message: "completed is required"})
		return
	}

	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := store.SetCompleted(r.Context(), mux.Vars(r)["id"], *body.Completed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	store, err := h.backend.Tasks()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := store.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
