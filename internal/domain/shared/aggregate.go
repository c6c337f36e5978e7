package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// OwnedAggregateRoot extends BaseAggregateRoot with per-user ownership.
// OwnerID is the account accountable for the record; nil means nobody
// currently owns it.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	OwnerID *uuid.UUID `gorm:"type:uuid;index"`
}

// NewOwnedAggregateRoot creates a new aggregate root owned by the given user
func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		OwnerID:           &ownerID,
	}
}

// NewUnownedAggregateRoot creates a new aggregate root with no owner
func NewUnownedAggregateRoot() OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
	}
}

// SetOwner assigns the owning account
func (o *OwnedAggregateRoot) SetOwner(userID uuid.UUID) {
	o.OwnerID = &userID
}

// ClearOwner removes the owning account reference
func (o *OwnedAggregateRoot) ClearOwner() {
	o.OwnerID = nil
}

// GetOwnerID returns the owning account, or nil when unowned
func (o *OwnedAggregateRoot) GetOwnerID() *uuid.UUID {
	return o.OwnerID
}
