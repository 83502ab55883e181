package store

// Keys for the namespaced snapshots.
const (
	KeyUsers    = "users"
	KeyMessages = "messages"
	KeyAuth     = "auth"
	KeyRoute    = "route"
)

// KV is the persistence surface the application state writes through. Values
// are full JSON snapshots of a store (plain string for the route). Writes are
// synchronous and last-write-wins.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
