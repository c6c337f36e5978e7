package crm

import (
	"regexp"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProspectState represents the pipeline state of a prospect
type ProspectState string

const (
	ProspectStateNew         ProspectState = "NEW"
	ProspectStateContacted   ProspectState = "CONTACTED"
	ProspectStateNegotiating ProspectState = "NEGOTIATING"
	ProspectStateWon         ProspectState = "WON"
	ProspectStateLost        ProspectState = "LOST"
)

// ProspectInterest represents the prospect's primary interest
type ProspectInterest string

const (
	InterestImport ProspectInterest = "IMPORT"
	InterestExport ProspectInterest = "EXPORT"
	InterestBoth   ProspectInterest = "BOTH"
	InterestOther  ProspectInterest = "OTHER"
)

var prospectEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Prospect represents a sales lead tracked through the pipeline.
// It is the aggregate root for prospect-related operations; its email is
// unique across all prospects.
type Prospect struct {
	shared.OwnedAggregateRoot
	FullName        string
	Email           string
	Phone           string
	Company         string
	Role            string
	State           ProspectState
	Interest        ProspectInterest
	ReferredBy      string
	ReferralContact string
	InterestDetail  string
	Tags            []Tag `gorm:"-"` // loaded by the repository
}

// NewProspect creates a new prospect in the NEW state, assigned to the
// creating account
func NewProspect(ownerID uuid.UUID, fullName, email string) (*Prospect, error) {
	if err := validateProspectName(fullName); err != nil {
		return nil, err
	}
	if err := validateProspectEmail(email); err != nil {
		return nil, err
	}

	prospect := &Prospect{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		FullName:           fullName,
		Email:              strings.ToLower(strings.TrimSpace(email)),
		State:              ProspectStateNew,
		Interest:           InterestImport,
	}

	prospect.AddDomainEvent(NewProspectCreatedEvent(prospect))

	return prospect, nil
}

// Update updates the prospect's identity fields
func (p *Prospect) Update(fullName, email, phone, company, role string) error {
	if err := validateProspectName(fullName); err != nil {
		return err
	}
	if err := validateProspectEmail(email); err != nil {
		return err
	}
	if phone != "" && len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}
	if len(company) > 100 {
		return shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 100 characters")
	}
	if len(role) > 100 {
		return shared.NewDomainError("INVALID_ROLE", "Role cannot exceed 100 characters")
	}

	p.FullName = fullName
	p.Email = strings.ToLower(strings.TrimSpace(email))
	p.Phone = phone
	p.Company = company
	p.Role = role
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetState moves the prospect to a new pipeline state
func (p *Prospect) SetState(state ProspectState) error {
	if err := validateProspectState(state); err != nil {
		return err
	}

	if p.State == state {
		return nil
	}

	oldState := p.State
	p.State = state
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProspectStateChangedEvent(p, oldState, state))

	return nil
}

// SetInterest sets the prospect's primary interest
func (p *Prospect) SetInterest(interest ProspectInterest) error {
	if err := validateProspectInterest(interest); err != nil {
		return err
	}
	p.Interest = interest
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetReferral records who referred this prospect
func (p *Prospect) SetReferral(referredBy, referralContact string) error {
	if len(referredBy) > 150 {
		return shared.NewDomainError("INVALID_REFERRAL", "Referred-by cannot exceed 150 characters")
	}
	if len(referralContact) > 150 {
		return shared.NewDomainError("INVALID_REFERRAL", "Referral contact cannot exceed 150 characters")
	}
	p.ReferredBy = referredBy
	p.ReferralContact = referralContact
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetInterestDetail records free-text notes on what the prospect wants
func (p *Prospect) SetInterestDetail(detail string) {
	p.InterestDetail = detail
	p.Touch()
	p.IncrementVersion()
}

// IsWon returns true when the prospect has become a client
func (p *Prospect) IsWon() bool {
	return p.State == ProspectStateWon
}

// IsClosed returns true when the prospect left the active pipeline
func (p *Prospect) IsClosed() bool {
	return p.State == ProspectStateWon || p.State == ProspectStateLost
}

// StateColor returns the UI badge color for the prospect's state
func (p *Prospect) StateColor() string {
	switch p.State {
	case ProspectStateNew:
		return "secondary"
	case ProspectStateContacted:
		return "warning"
	case ProspectStateNegotiating:
		return "primary"
	case ProspectStateWon:
		return "success"
	case ProspectStateLost:
		return "danger"
	default:
		return "light"
	}
}

// ProspectStates lists all pipeline states in pipeline order
func ProspectStates() []ProspectState {
	return []ProspectState{
		ProspectStateNew,
		ProspectStateContacted,
		ProspectStateNegotiating,
		ProspectStateWon,
		ProspectStateLost,
	}
}

func validateProspectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Prospect name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Prospect name cannot exceed 200 characters")
	}
	return nil
}

func validateProspectEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Prospect email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !prospectEmailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateProspectState(state ProspectState) error {
	switch state {
	case ProspectStateNew, ProspectStateContacted, ProspectStateNegotiating, ProspectStateWon, ProspectStateLost:
		return nil
	default:
		return shared.NewDomainError("INVALID_STATE", "Invalid prospect state")
	}
}

func validateProspectInterest(interest ProspectInterest) error {
	switch interest {
	case InterestImport, InterestExport, InterestBoth, InterestOther:
		return nil
	default:
		return shared.NewDomainError("INVALID_INTEREST", "Invalid prospect interest")
	}
}
