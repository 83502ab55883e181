// Package attachments keeps uploaded file content in process memory, the way
// the browser build kept object URLs. References it hands out are only valid
// until the process exits; durable blob storage is deliberately not simulated.
package attachments

import (
	"sync"

	"github.com/google/uuid"

	"github.com/magcp/community/internal/models"
)

const urlPrefix = "/attachments/"

type blob struct {
	name        string
	contentType string
	data        []byte
}

type Registry struct {
	mu    sync.Mutex
	blobs map[string]blob
}

func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string]blob)}
}

// Put stores the bytes and returns a transient reference to them.
func (r *Registry) Put(name, contentType string, data []byte) models.FileRef {
	id := uuid.NewString()
	r.mu.Lock()
	r.blobs[id] = blob{name: name, contentType: contentType, data: data}
	r.mu.Unlock()
	return models.FileRef{
		Name: name,
		URL:  urlPrefix + id,
		Size: int64(len(data)),
		Type: contentType,
	}
}

// Get returns the stored content for an id handed out by Put.
func (r *Registry) Get(id string) (name, contentType string, data []byte, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[id]
	if !ok {
		return "", "", nil, false
	}
	return b.name, b.contentType, b.data, true
}
