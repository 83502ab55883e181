package models

// Role of a user account. The main admin is seeded; admin_pending accounts
// are admins awaiting approval by the main admin.
const (
	RoleMainAdmin    = "main_admin"
	RoleAdmin        = "admin"
	RoleAdminPending = "admin_pending"
	RoleUser         = "user"
)

// Routes the client can be on. Persisted so a reload resumes the last page.
const (
	RouteAuth          = "auth"
	RouteHome          = "home"
	RouteCommunity     = "community"
	RouteNotifications = "notifications"
	RouteImportant     = "important"
	RouteSettings      = "settings"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
	Avatar   string `json:"avatar,omitempty"`
}

// IsAdmin reports whether the user gets the verified tick in the UI.
func (u *User) IsAdmin() bool {
	return u.Role == RoleMainAdmin || u.Role == RoleAdmin
}

// FileRef points at a transient, process-local attachment. The URL is only
// valid for the lifetime of the current process; it does not survive restart.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type Message struct {
	ID   string   `json:"id"`
	Text string   `json:"text"`
	File *FileRef `json:"file,omitempty"`
	// AuthorID may reference a deleted user; renderers show "Unknown".
	AuthorID  string `json:"authorId"`
	Timestamp int64  `json:"ts"` // unix milliseconds, non-decreasing
}

// UserPatch carries the fields an edit may change. Nil fields are left
// untouched. Username uniqueness is not re-checked on edit.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Verified *bool   `json:"verified,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
