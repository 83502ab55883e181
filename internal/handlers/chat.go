package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/magcp/community/internal/middleware"
	"github.com/magcp/community/internal/models"
	"github.com/magcp/community/internal/state"
)

type ChatHandler struct {
	App *state.State
}

type SendMessageRequest struct {
	Text string          `json:"text"`
	File *models.FileRef `json:"file,omitempty"`
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.App.Messages())
}

// SendMessage appends a chat message authored by the cookie's user. The
// facade re-checks that this matches the active session.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := h.App.SendMessage(req.Text, req.File, userID)
	if err != nil {
		writeStateError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}
