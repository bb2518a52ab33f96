package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/starlove/together/internal/api/respond"
	"github.com/starlove/together/internal/services"
)

type NoteHandler struct {
	svc *services.NoteService
}

func NewNoteHandler(svc *services.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// ListNotes GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	out := h.svc.Snapshot()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": out, "count": len(out)})
}

// CreateNote POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	var req services.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.svc.Create(r.Context(), session, req); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
}

// UpdateNote PATCH /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	var req services.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.svc.Update(r.Context(), session, mux.Vars(r)["id"], req); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
}

// DeleteNote DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	if err := h.svc.Delete(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
}
