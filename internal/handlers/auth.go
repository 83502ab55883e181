package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/magcp/community/internal/auth"
	"github.com/magcp/community/internal/state"
)

type AuthHandler struct {
	App *state.State
}

type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	type SignupRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Avatar   string `json:"avatar"`
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		http.Error(w, "Username required", http.StatusBadRequest)
		return
	}

	user, err := h.App.Signup(req.Username, req.Email, req.Avatar)
	if err != nil {
		writeStateError(w, err)
		return
	}

	setSessionCookie(w, user.ID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.App.Login(creds.Identifier, creds.Password)
	if err != nil {
		writeStateError(w, err)
		return
	}

	setSessionCookie(w, user.ID)
	json.NewEncoder(w).Encode(user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.App.Logout()
	http.SetCookie(w, &http.Cookie{
		Name:   auth.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// OAuth is the mocked provider signup: it only needs the provider name.
func (h *AuthHandler) OAuth(w http.ResponseWriter, r *http.Request) {
	type OAuthRequest struct {
		Provider string `json:"provider"`
	}

	var req OAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Provider == "" {
		http.Error(w, "Provider required", http.StatusBadRequest)
		return
	}

	user, err := h.App.MockOAuth(req.Provider)
	if err != nil {
		writeStateError(w, err)
		return
	}

	setSessionCookie(w, user.ID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Session reports the signed-in user, or JSON null when anonymous.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.App.Session())
}

func setSessionCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    auth.SignSession(userID),
		Path:     "/",
		HttpOnly: true,
	})
}
