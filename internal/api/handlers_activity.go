package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/starlove/together/internal/api/respond"
	"github.com/starlove/together/internal/services"
	"github.com/starlove/together/internal/views"
)

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// ListActivities GET /api/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	out := h.svc.Snapshot()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"activities": out, "count": len(out)})
}

// CreateActivity POST /api/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	var req services.CreateActivityRequest
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

// DeleteActivity DELETE /api/activities/{id}
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
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

// ToggleFavorite POST /api/activities/{id}/favorite
func (h *ActivityHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	if err := h.svc.ToggleFavorite(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		respond.FromError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
}

// Upcoming GET /api/activities/upcoming
func (h *ActivityHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	out := views.Upcoming(h.svc.Snapshot(), time.Now())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"activities": out, "count": len(out)})
}

// Timeline GET /api/activities/timeline
func (h *ActivityHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	out := views.Timeline(h.svc.Snapshot())
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"activities": out, "count": len(out)})
}

// Feed GET /api/feed
func (h *ActivityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFrom(r.Context())
	if !ok {
		respond.WriteUnauthorized(w, "no session")
		return
	}
	out := views.SharedFeed(h.svc.Snapshot(), session)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"feed": out, "count": len(out)})
}
