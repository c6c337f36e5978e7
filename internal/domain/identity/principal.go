package identity

import "github.com/google/uuid"

// Principal is the acting account for an operation. Every core operation
// receives it explicitly; nothing reads the current user from ambient
// request state.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Admin    bool
}

// IsAdmin returns true when the principal is an administrator
func (p Principal) IsAdmin() bool {
	return p.Admin
}
