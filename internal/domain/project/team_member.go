package project

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TeamMember assigns a worker to a project with a role on that project
type TeamMember struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	WorkerID  uuid.UUID
	Role      string
	JoinedAt  time.Time
}

// NewTeamMember assigns a worker to a project
func NewTeamMember(projectID, workerID uuid.UUID, role string) (*TeamMember, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT_ID", "Project ID is required")
	}
	if workerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORKER_ID", "Worker ID is required")
	}
	role = strings.TrimSpace(role)
	if len(role) > 100 {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role cannot exceed 100 characters")
	}
	return &TeamMember{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		WorkerID:   workerID,
		Role:       role,
		JoinedAt:   time.Now(),
	}, nil
}

// SetRole changes the member's role on the project
func (m *TeamMember) SetRole(role string) error {
	role = strings.TrimSpace(role)
	if len(role) > 100 {
		return shared.NewDomainError("INVALID_ROLE", "Role cannot exceed 100 characters")
	}
	m.Role = role
	m.Touch()
	return nil
}
