package crm

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// Tag is a label attached to prospects. Names are unique.
type Tag struct {
	shared.BaseEntity
	Name string
}

// NewTag creates a new tag
func NewTag(name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if len(name) > 50 {
		return nil, shared.NewDomainError("INVALID_NAME", "Tag name cannot exceed 50 characters")
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}
