package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll returns all users ordered by username
	FindAll(ctx context.Context) ([]User, error)

	// ExistsByUsername checks if a username already exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user by ID. Ownership references on prospects are
	// nulled out, interactions created by the user are removed, and project
	// notes keep their text with the creator reference cleared.
	Delete(ctx context.Context, id uuid.UUID) error
}
