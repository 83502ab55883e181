package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/magcp/community/internal/attachments"
)

// maxAttachmentSize caps uploads at 10 MB, enough for the images, audio, and
// archives the chat passes around.
const maxAttachmentSize = 10 << 20

type AttachmentHandler struct {
	Registry *attachments.Registry
}

// Upload accepts a multipart "file" field and returns a transient FileRef the
// client attaches to a message. Content lives in memory only and is gone
// after a restart.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		http.Error(w, "Failed to parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to get file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ref := h.Registry.Put(header.Filename, contentType, data)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ref)
}

func (h *AttachmentHandler) Serve(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	name, contentType, data, ok := h.Registry.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Write(data)
}
