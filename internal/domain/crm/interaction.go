package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InteractionType represents the kind of contact made with a prospect
type InteractionType string

const (
	InteractionCall    InteractionType = "CALL"
	InteractionEmail   InteractionType = "EMAIL"
	InteractionMeeting InteractionType = "MEETING"
	InteractionOther   InteractionType = "OTHER"
)

// Interaction records a single touch point with a prospect. The creating
// account is required; removing that account removes its interactions.
type Interaction struct {
	shared.BaseEntity
	ProspectID uuid.UUID
	Type       InteractionType
	OccurredAt time.Time
	Notes      string
	CreatedBy  uuid.UUID
}

// NewInteraction records a new interaction with a prospect, timestamped now
func NewInteraction(prospectID, createdBy uuid.UUID, interactionType InteractionType, notes string) (*Interaction, error) {
	if err := validateInteractionType(interactionType); err != nil {
		return nil, err
	}
	if strings.TrimSpace(notes) == "" {
		return nil, shared.NewDomainError("INVALID_NOTES", "Interaction notes cannot be empty")
	}

	return &Interaction{
		BaseEntity: shared.NewBaseEntity(),
		ProspectID: prospectID,
		Type:       interactionType,
		OccurredAt: time.Now(),
		Notes:      notes,
		CreatedBy:  createdBy,
	}, nil
}

// Update changes the interaction's type and notes
func (i *Interaction) Update(interactionType InteractionType, notes string) error {
	if err := validateInteractionType(interactionType); err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		return shared.NewDomainError("INVALID_NOTES", "Interaction notes cannot be empty")
	}

	i.Type = interactionType
	i.Notes = notes
	i.Touch()

	return nil
}

func validateInteractionType(t InteractionType) error {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting, InteractionOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Invalid interaction type")
	}
}
