package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// ListNotes handles GET /notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	store, err := h.backend.Notes()
	if err != nil {
		writeError(w, err)
		return
	}
	notes, err := store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// CreateNote handles POST /notes. Every field is optional.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var in types.NoteInput
	if err := decode(r, &in); err != nil {
		writeError(w, err)
		return
	}
	if err := in.Validate(); err != nil {
		writeError(w, err)
		return
	}

	store, err := h.backend.Notes()
	if err != nil {
		writeError(w, err)
		return
	}
	note, err := store.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /notes/{id} with a partial body.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var patch types.NotePatch
	if err := decode(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, err)
		return
	}

	store, err := h.backend.Notes()
	if err != nil {
		writeError(w, err)
		return
	}
	note, err := store.Update(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /notes/{id}.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	store, err := h.backend.Notes()
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
