package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Attachment is a file stored in the blob store and linked to a prospect.
// UploadedAt is immutable; deleting the record must also delete the blob.
type Attachment struct {
	shared.BaseEntity
	ProspectID  uuid.UUID
	DisplayName string
	StorageKey  string
	UploadedAt  time.Time
}

// NewAttachment records an uploaded file for a prospect
func NewAttachment(prospectID uuid.UUID, displayName, storageKey string) (*Attachment, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attachment name cannot be empty")
	}
	if len(displayName) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attachment name cannot exceed 200 characters")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Attachment storage key cannot be empty")
	}

	return &Attachment{
		BaseEntity:  shared.NewBaseEntity(),
		ProspectID:  prospectID,
		DisplayName: displayName,
		StorageKey:  storageKey,
		UploadedAt:  time.Now(),
	}, nil
}
