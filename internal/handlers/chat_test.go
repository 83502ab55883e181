package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/magcp/community/internal/auth"
	"github.com/magcp/community/internal/middleware"
)

func TestSendMessage(t *testing.T) {
	app := newTestApp(t)
	user, err := app.Signup("alice", "a@x.com", "")
	if err != nil {
		t.Fatal(err)
	}

	handler := &ChatHandler{App: app}

	body, _ := json.Marshal(SendMessageRequest{Text: "hello"})
	req, _ := http.NewRequest("POST", "/messages", bytes.NewBuffer(body))
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: auth.SignSession(user.ID)})

	rr := httptest.NewRecorder()
	middleware.AuthMiddleware(http.HandlerFunc(handler.SendMessage)).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusCreated)
	}

	msgs := app.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Text != "hello" {
		t.Errorf("Expected text 'hello', got '%s'", msgs[0].Text)
	}
	if msgs[0].AuthorID != user.ID {
		t.Errorf("Expected author %s, got %s", user.ID, msgs[0].AuthorID)
	}
}

func TestSendMessageUnauthorized(t *testing.T) {
	handler := &ChatHandler{App: newTestApp(t)}

	body, _ := json.Marshal(SendMessageRequest{Text: "hello"})
	req, _ := http.NewRequest("POST", "/messages", bytes.NewBuffer(body))

	rr := httptest.NewRecorder()
	middleware.AuthMiddleware(http.HandlerFunc(handler.SendMessage)).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusUnauthorized)
	}
}

func TestSendMessageStaleCookie(t *testing.T) {
	// A signed cookie for a user who is no longer the active session is
	// rejected by the facade, not just the middleware.
	app := newTestApp(t)
	alice, _ := app.Signup("alice", "a@x.com", "")
	app.Signup("bob", "b@x.com", "") // session is now bob

	handler := &ChatHandler{App: app}

	body, _ := json.Marshal(SendMessageRequest{Text: "hello"})
	req, _ := http.NewRequest("POST", "/messages", bytes.NewBuffer(body))
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: auth.SignSession(alice.ID)})

	rr := httptest.NewRecorder()
	middleware.AuthMiddleware(http.HandlerFunc(handler.SendMessage)).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusForbidden {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusForbidden)
	}
	if len(app.Messages()) != 0 {
		t.Error("Expected no message to be appended")
	}
}

func TestGetMessages(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.Signup("alice", "a@x.com", "")
	app.SendMessage("one", nil, user.ID)
	app.SendMessage("two", nil, user.ID)

	handler := &ChatHandler{App: app}

	req, _ := http.NewRequest("GET", "/messages", nil)
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.GetMessages).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}

	var msgs []map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&msgs)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0]["text"] != "one" || msgs[1]["text"] != "two" {
		t.Error("Expected messages in insertion order")
	}
}
