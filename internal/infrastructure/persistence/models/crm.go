package models

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// ProspectModel is the persistence model for the Prospect aggregate.
type ProspectModel struct {
	OwnedAggregateModel
	FullName        string               `gorm:"type:varchar(150);not null"`
	Email           string               `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone           string               `gorm:"type:varchar(50)"`
	Company         string               `gorm:"type:varchar(100)"`
	Role            string               `gorm:"type:varchar(100)"`
	State           crm.ProspectState    `gorm:"type:varchar(20);not null;default:'NEW';index"`
	Interest        crm.ProspectInterest `gorm:"type:varchar(20)"`
	ReferredBy      string               `gorm:"type:varchar(150)"`
	ReferralContact string               `gorm:"type:varchar(150)"`
	InterestDetail  string               `gorm:"type:text"`
	Tags            []TagModel           `gorm:"many2many:prospect_tags;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProspectModel) TableName() string {
	return "prospects"
}

// ToDomain converts the persistence model to a domain Prospect entity.
func (m *ProspectModel) ToDomain() *crm.Prospect {
	tags := make([]crm.Tag, len(m.Tags))
	for i := range m.Tags {
		tags[i] = *m.Tags[i].ToDomain()
	}
	return &crm.Prospect{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		FullName:           m.FullName,
		Email:              m.Email,
		Phone:              m.Phone,
		Company:            m.Company,
		Role:               m.Role,
		State:              m.State,
		Interest:           m.Interest,
		ReferredBy:         m.ReferredBy,
		ReferralContact:    m.ReferralContact,
		InterestDetail:     m.InterestDetail,
		Tags:               tags,
	}
}

// FromDomain populates the persistence model from a domain Prospect
// entity. Tags are not copied: the tag association is replaced
// explicitly by SaveTags.
func (m *ProspectModel) FromDomain(p *crm.Prospect) {
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	m.FullName = p.FullName
	m.Email = p.Email
	m.Phone = p.Phone
	m.Company = p.Company
	m.Role = p.Role
	m.State = p.State
	m.Interest = p.Interest
	m.ReferredBy = p.ReferredBy
	m.ReferralContact = p.ReferralContact
	m.InterestDetail = p.InterestDetail
}

// ProspectModelFromDomain creates a new persistence model from a domain Prospect entity.
func ProspectModelFromDomain(p *crm.Prospect) *ProspectModel {
	m := &ProspectModel{}
	m.FromDomain(p)
	return m
}

// TagModel is the persistence model for the Tag entity.
type TagModel struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag entity.
func (m *TagModel) ToDomain() *crm.Tag {
	return &crm.Tag{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// FromDomain populates the persistence model from a domain Tag entity.
func (m *TagModel) FromDomain(t *crm.Tag) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
}

// TagModelFromDomain creates a new persistence model from a domain Tag entity.
func TagModelFromDomain(t *crm.Tag) *TagModel {
	m := &TagModel{}
	m.FromDomain(t)
	return m
}

// WorkerModel is the persistence model for the Worker aggregate.
type WorkerModel struct {
	AggregateModel
	Name  string `gorm:"type:varchar(150);not null"`
	Role  string `gorm:"type:varchar(100)"`
	Email string `gorm:"type:varchar(200)"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (WorkerModel) TableName() string {
	return "workers"
}

// ToDomain converts the persistence model to a domain Worker entity.
func (m *WorkerModel) ToDomain() *crm.Worker {
	return &crm.Worker{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Role:              m.Role,
		Email:             m.Email,
		Phone:             m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Worker entity.
func (m *WorkerModel) FromDomain(w *crm.Worker) {
	m.FromDomainAggregateRoot(w.BaseAggregateRoot)
	m.Name = w.Name
	m.Role = w.Role
	m.Email = w.Email
	m.Phone = w.Phone
}

// WorkerModelFromDomain creates a new persistence model from a domain Worker entity.
func WorkerModelFromDomain(w *crm.Worker) *WorkerModel {
	m := &WorkerModel{}
	m.FromDomain(w)
	return m
}

// ProspectWorkerModel is the persistence model for the rated link
// between a prospect and a worker. The pair is unique.
type ProspectWorkerModel struct {
	BaseModel
	ProspectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_prospect_worker,priority:1;constraint:OnDelete:CASCADE"`
	WorkerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_prospect_worker,priority:2;constraint:OnDelete:CASCADE"`
	Rating     int       `gorm:"not null;default:3;check:rating >= 1 AND rating <= 5"`
}

// TableName returns the table name for GORM
func (ProspectWorkerModel) TableName() string {
	return "prospect_workers"
}

// ToDomain converts the persistence model to a domain ProspectWorker entity.
func (m *ProspectWorkerModel) ToDomain() *crm.ProspectWorker {
	return &crm.ProspectWorker{
		BaseEntity: m.BaseModel.ToDomain(),
		ProspectID: m.ProspectID,
		WorkerID:   m.WorkerID,
		Rating:     m.Rating,
	}
}

// FromDomain populates the persistence model from a domain ProspectWorker entity.
func (m *ProspectWorkerModel) FromDomain(pw *crm.ProspectWorker) {
	m.FromDomainBaseEntity(pw.BaseEntity)
	m.ProspectID = pw.ProspectID
	m.WorkerID = pw.WorkerID
	m.Rating = pw.Rating
}

// ProspectWorkerModelFromDomain creates a new persistence model from a domain ProspectWorker entity.
func ProspectWorkerModelFromDomain(pw *crm.ProspectWorker) *ProspectWorkerModel {
	m := &ProspectWorkerModel{}
	m.FromDomain(pw)
	return m
}

// InteractionModel is the persistence model for the Interaction entity.
// CreatedBy cascades: removing the account removes its interactions.
type InteractionModel struct {
	BaseModel
	ProspectID uuid.UUID           `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Type       crm.InteractionType `gorm:"type:varchar(20);not null"`
	OccurredAt time.Time           `gorm:"not null;index"`
	Notes      string              `gorm:"type:text;not null"`
	CreatedBy  uuid.UUID           `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (InteractionModel) TableName() string {
	return "interactions"
}

// ToDomain converts the persistence model to a domain Interaction entity.
func (m *InteractionModel) ToDomain() *crm.Interaction {
	return &crm.Interaction{
		BaseEntity: m.BaseModel.ToDomain(),
		ProspectID: m.ProspectID,
		Type:       m.Type,
		OccurredAt: m.OccurredAt,
		Notes:      m.Notes,
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Interaction entity.
func (m *InteractionModel) FromDomain(i *crm.Interaction) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ProspectID = i.ProspectID
	m.Type = i.Type
	m.OccurredAt = i.OccurredAt
	m.Notes = i.Notes
	m.CreatedBy = i.CreatedBy
}

// InteractionModelFromDomain creates a new persistence model from a domain Interaction entity.
func InteractionModelFromDomain(i *crm.Interaction) *InteractionModel {
	m := &InteractionModel{}
	m.FromDomain(i)
	return m
}

// ReminderModel is the persistence model for the Reminder entity.
type ReminderModel struct {
	BaseModel
	ProspectID uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Title      string    `gorm:"type:varchar(200);not null"`
	DueAt      time.Time `gorm:"not null;index"`
	Completed  bool      `gorm:"not null;default:false"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (ReminderModel) TableName() string {
	return "reminders"
}

// ToDomain converts the persistence model to a domain Reminder entity.
func (m *ReminderModel) ToDomain() *crm.Reminder {
	return &crm.Reminder{
		BaseEntity: m.BaseModel.ToDomain(),
		ProspectID: m.ProspectID,
		Title:      m.Title,
		DueAt:      m.DueAt,
		Completed:  m.Completed,
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Reminder entity.
func (m *ReminderModel) FromDomain(r *crm.Reminder) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProspectID = r.ProspectID
	m.Title = r.Title
	m.DueAt = r.DueAt
	m.Completed = r.Completed
	m.CreatedBy = r.CreatedBy
}

// ReminderModelFromDomain creates a new persistence model from a domain Reminder entity.
func ReminderModelFromDomain(r *crm.Reminder) *ReminderModel {
	m := &ReminderModel{}
	m.FromDomain(r)
	return m
}

// AttachmentModel is the persistence model for the Attachment entity.
type AttachmentModel struct {
	BaseModel
	ProspectID  uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	DisplayName string    `gorm:"type:varchar(200);not null"`
	StorageKey  string    `gorm:"type:varchar(500);not null;uniqueIndex"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts the persistence model to a domain Attachment entity.
func (m *AttachmentModel) ToDomain() *crm.Attachment {
	return &crm.Attachment{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProspectID:  m.ProspectID,
		DisplayName: m.DisplayName,
		StorageKey:  m.StorageKey,
		UploadedAt:  m.UploadedAt,
	}
}

// FromDomain populates the persistence model from a domain Attachment entity.
func (m *AttachmentModel) FromDomain(a *crm.Attachment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ProspectID = a.ProspectID
	m.DisplayName = a.DisplayName
	m.StorageKey = a.StorageKey
	m.UploadedAt = a.UploadedAt
}

// AttachmentModelFromDomain creates a new persistence model from a domain Attachment entity.
func AttachmentModelFromDomain(a *crm.Attachment) *AttachmentModel {
	m := &AttachmentModel{}
	m.FromDomain(a)
	return m
}
