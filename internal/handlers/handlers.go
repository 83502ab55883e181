// Package handlers adapts the HTTP surface onto the state facade. Handlers
// decode JSON bodies, call the facade, and map its sentinel errors onto
// status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/magcp/community/internal/state"
)

func writeStateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, state.ErrUserNotFound):
		http.Error(w, "User not found", http.StatusNotFound)
	case errors.Is(err, state.ErrInvalidPassword):
		http.Error(w, "Invalid password", http.StatusUnauthorized)
	case errors.Is(err, state.ErrUsernameTaken):
		http.Error(w, "Username taken", http.StatusConflict)
	case errors.Is(err, state.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
