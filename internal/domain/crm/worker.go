package crm

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// Worker represents a named contact/employee who can be linked to prospects
// as a contact point or assigned to project teams.
type Worker struct {
	shared.BaseAggregateRoot
	Name  string
	Role  string
	Email string
	Phone string
}

// NewWorker creates a new worker
func NewWorker(name, role, email, phone string) (*Worker, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Worker name cannot be empty")
	}
	if len(name) > 150 {
		return nil, shared.NewDomainError("INVALID_NAME", "Worker name cannot exceed 150 characters")
	}
	if email != "" && !prospectEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if len(phone) > 20 {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}

	return &Worker{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Role:              role,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Phone:             phone,
	}, nil
}

// Update updates the worker's fields
func (w *Worker) Update(name, role, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Worker name cannot be empty")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Worker name cannot exceed 150 characters")
	}
	if email != "" && !prospectEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}

	w.Name = name
	w.Role = role
	w.Email = strings.ToLower(strings.TrimSpace(email))
	w.Phone = phone
	w.Touch()
	w.IncrementVersion()

	return nil
}
