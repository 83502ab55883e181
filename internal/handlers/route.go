package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/magcp/community/internal/state"
)

// RouteHandler persists which page the client is on so a reload resumes
// there.
type RouteHandler struct {
	App *state.State
}

func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"route": h.App.Route()})
}

func (h *RouteHandler) SetRoute(w http.ResponseWriter, r *http.Request) {
	type SetRouteRequest struct {
		Route string `json:"route"`
	}

	var req SetRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Route == "" {
		http.Error(w, "Route required", http.StatusBadRequest)
		return
	}

	h.App.SetRoute(req.Route)
	w.WriteHeader(http.StatusNoContent)
}
