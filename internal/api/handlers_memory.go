package api

import (
	"encoding/json"
	"net/http"

	"github.com/starlove/together/internal/api/respond"
	"github.com/starlove/together/internal/services"
)

type MemoryHandler struct {
	svc *services.MemoryService
}

func NewMemoryHandler(svc *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{svc: svc}
}

// ListMemories GET /api/memories
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	out := h.svc.Snapshot()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"memories": out, "count": len(out)})
}

// CreateMemory POST /api/memories
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	var req services.CreateMemoryRequest
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
