package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/magcp/community/internal/attachments"
	"github.com/magcp/community/internal/models"
)

func TestUploadAndServeAttachment(t *testing.T) {
	handler := &AttachmentHandler{Registry: attachments.NewRegistry()}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("hello attachment"))
	mw.Close()

	req, _ := http.NewRequest("POST", "/attachments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Upload).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v want %v",
			status, http.StatusCreated)
	}

	var ref models.FileRef
	if err := json.NewDecoder(rr.Body).Decode(&ref); err != nil {
		t.Fatal(err)
	}
	if ref.Name != "notes.txt" {
		t.Errorf("Expected name 'notes.txt', got '%s'", ref.Name)
	}
	if ref.Size != int64(len("hello attachment")) {
		t.Errorf("Expected size %d, got %d", len("hello attachment"), ref.Size)
	}
	if !strings.HasPrefix(ref.URL, "/attachments/") {
		t.Fatalf("Expected attachment URL, got '%s'", ref.URL)
	}

	id := strings.TrimPrefix(ref.URL, "/attachments/")
	req, _ = http.NewRequest("GET", ref.URL, nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	rr = httptest.NewRecorder()
	http.HandlerFunc(handler.Serve).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusOK)
	}
	if rr.Body.String() != "hello attachment" {
		t.Errorf("Expected stored bytes back, got '%s'", rr.Body.String())
	}
}

func TestServeUnknownAttachment(t *testing.T) {
	handler := &AttachmentHandler{Registry: attachments.NewRegistry()}

	req, _ := http.NewRequest("GET", "/attachments/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nope"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(handler.Serve).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v",
			status, http.StatusNotFound)
	}
}
