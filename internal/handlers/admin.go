package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/magcp/community/internal/models"
	"github.com/magcp/community/internal/state"
)

type AdminHandler struct {
	App *state.State
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.App.Users())
}

func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Unknown ids are a silent no-op, like the original.
	h.App.EditUser(id, patch)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser removes an account and its messages. The facade enforces that
// only the main admin session may do this.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.App.DeleteUser(id); err != nil {
		writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
