package api

import (
	"github.com/gorilla/mux"

	"github.com/starlove/together/internal/api/recovery"
	"github.com/starlove/together/internal/api/ws"
	"github.com/starlove/together/internal/auth"
	"github.com/starlove/together/internal/services"
	"github.com/starlove/together/internal/theme"
)

// Deps carries everything the router wires together.
type Deps struct {
	Activities *services.ActivityService
	Notes      *services.NoteService
	Memories   *services.MemoryService
	Theme      *theme.Manager
	Authorizer auth.Authorizer
	Hub        *ws.Hub
}

// NewRouter wires HTTP routes to handlers.
func NewRouter(d Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Health and the live stream sit outside the session middleware; the
	// stream authorizes during the upgrade.
	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	root.HandleFunc("/ws", ws.ServeWS(d.Hub, d.Authorizer)).Methods("GET")

	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(SessionMiddleware(d.Authorizer))

	activity := NewActivityHandler(d.Activities)
	authed.HandleFunc("/activities", activity.ListActivities).Methods("GET")
	authed.HandleFunc("/activities", activity.CreateActivity).Methods("POST")
	authed.HandleFunc("/activities/upcoming", activity.Upcoming).Methods("GET")
	authed.HandleFunc("/activities/timeline", activity.Timeline).Methods("GET")
	authed.HandleFunc("/activities/{id}", activity.DeleteActivity).Methods("DELETE")
	authed.HandleFunc("/activities/{id}/favorite", activity.ToggleFavorite).Methods("POST")
	authed.HandleFunc("/feed", activity.Feed).Methods("GET")

	note := NewNoteHandler(d.Notes)
	authed.HandleFunc("/notes", note.ListNotes).Methods("GET")
	authed.HandleFunc("/notes", note.CreateNote).Methods("POST")
	authed.HandleFunc("/notes/{id}", note.UpdateNote).Methods("PATCH")
	authed.HandleFunc("/notes/{id}", note.DeleteNote).Methods("DELETE")

	memory := NewMemoryHandler(d.Memories)
	authed.HandleFunc("/memories", memory.ListMemories).Methods("GET")
	authed.HandleFunc("/memories", memory.CreateMemory).Methods("POST")

	th := NewThemeHandler(d.Theme)
	authed.HandleFunc("/theme", th.GetTheme).Methods("GET")
	authed.HandleFunc("/theme/toggle", th.ToggleTheme).Methods("POST")

	return root
}
