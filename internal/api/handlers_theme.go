package api

import (
	"net/http"

	"github.com/starlove/together/internal/api/respond"
	"github.com/starlove/together/internal/theme"
)

type ThemeHandler struct {
	mgr *theme.Manager
}

func NewThemeHandler(mgr *theme.Manager) *ThemeHandler {
	return &ThemeHandler{mgr: mgr}
}

// GetTheme GET /api/theme
func (h *ThemeHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"theme":  h.mgr.Current(),
		"isDark": h.mgr.IsDark(),
	})
}

// ToggleTheme POST /api/theme/toggle
func (h *ThemeHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	next, err := h.mgr.Toggle()
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"theme":  next,
		"isDark": next.IsDark(),
	})
}
