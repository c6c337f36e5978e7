package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
)

// CreateProspectRequest represents a request to create a prospect
type CreateProspectRequest struct {
	FullName        string   `json:"full_name" binding:"required,max=200"`
	Email           string   `json:"email" binding:"required,email,max=200"`
	Phone           string   `json:"phone" binding:"max=50"`
	Company         string   `json:"company" binding:"max=200"`
	Role            string   `json:"role" binding:"max=100"`
	State           string   `json:"state" binding:"omitempty,oneof=NEW CONTACTED NEGOTIATING WON LOST"`
	Interest        string   `json:"interest" binding:"omitempty,oneof=IMPORT EXPORT BOTH OTHER"`
	ReferredBy      string   `json:"referred_by" binding:"max=200"`
	ReferralContact string   `json:"referral_contact" binding:"max=200"`
	InterestDetail  string   `json:"interest_detail"`
	Tags            []string `json:"tags"`
}

// UpdateProspectRequest represents a request to update a prospect
type UpdateProspectRequest struct {
	FullName        string    `json:"full_name" binding:"required,max=200"`
	Email           string    `json:"email" binding:"required,email,max=200"`
	Phone           string    `json:"phone" binding:"max=50"`
	Company         string    `json:"company" binding:"max=200"`
	Role            string    `json:"role" binding:"max=100"`
	Interest        string    `json:"interest" binding:"omitempty,oneof=IMPORT EXPORT BOTH OTHER"`
	ReferredBy      string    `json:"referred_by" binding:"max=200"`
	ReferralContact string    `json:"referral_contact" binding:"max=200"`
	InterestDetail  string    `json:"interest_detail"`
	Tags            *[]string `json:"tags"`
}

// ChangeStateRequest represents a prospect state change
type ChangeStateRequest struct {
	State string `json:"state" binding:"required,oneof=NEW CONTACTED NEGOTIATING WON LOST"`
}

// AssignProspectRequest reassigns a prospect's owner. A nil owner
// leaves the prospect unowned.
type AssignProspectRequest struct {
	OwnerID *uuid.UUID `json:"owner_id"`
}

// ProspectListQuery carries list filtering options
type ProspectListQuery struct {
	State    string `form:"state" binding:"omitempty,oneof=NEW CONTACTED NEGOTIATING WON LOST"`
	Search   string `form:"q"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// TagResponse is the API view of a tag
type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProspectResponse is the API view of a prospect
type ProspectResponse struct {
	ID              uuid.UUID     `json:"id"`
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Company         string        `json:"company"`
	Role            string        `json:"role"`
	State           string        `json:"state"`
	StateColor      string        `json:"state_color"`
	Interest        string        `json:"interest"`
	ReferredBy      string        `json:"referred_by"`
	ReferralContact string        `json:"referral_contact"`
	InterestDetail  string        `json:"interest_detail"`
	OwnerID         *uuid.UUID    `json:"owner_id"`
	Tags            []TagResponse `json:"tags"`
	AverageRating   float64       `json:"average_rating"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProspectListMeta accompanies prospect lists with per-state counts
type ProspectListMeta struct {
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	StateCounts map[string]int64 `json:"state_counts"`
}

// CreateWorkerRequest represents a request to create a worker
type CreateWorkerRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Role  string `json:"role" binding:"max=100"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// UpdateWorkerRequest represents a request to update a worker
type UpdateWorkerRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Role  string `json:"role" binding:"max=100"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"max=50"`
}

// WorkerResponse is the API view of a worker
type WorkerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkWorkerRequest attaches a worker to a prospect with a rating
type LinkWorkerRequest struct {
	WorkerID uuid.UUID `json:"worker_id" binding:"required"`
	Rating   *int      `json:"rating" binding:"omitempty,min=1,max=5"`
}

// UpdateLinkRequest changes the rating on a prospect-worker link
type UpdateLinkRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// ProspectWorkerResponse is the API view of a prospect-worker link
type ProspectWorkerResponse struct {
	ID         uuid.UUID `json:"id"`
	ProspectID uuid.UUID `json:"prospect_id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	WorkerName string    `json:"worker_name,omitempty"`
	Rating     int       `json:"rating"`
}

// CreateInteractionRequest records a touch point with a prospect
type CreateInteractionRequest struct {
	Type  string `json:"type" binding:"required,oneof=CALL EMAIL MEETING OTHER"`
	Notes string `json:"notes" binding:"required"`
}

// UpdateInteractionRequest edits an interaction
type UpdateInteractionRequest struct {
	Type  string `json:"type" binding:"required,oneof=CALL EMAIL MEETING OTHER"`
	Notes string `json:"notes" binding:"required"`
}

// InteractionResponse is the API view of an interaction
type InteractionResponse struct {
	ID         uuid.UUID `json:"id"`
	ProspectID uuid.UUID `json:"prospect_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Notes      string    `json:"notes"`
	CreatedBy  uuid.UUID `json:"created_by"`
}

// CreateReminderRequest schedules a reminder on a prospect
type CreateReminderRequest struct {
	Title string    `json:"title" binding:"required,max=200"`
	DueAt time.Time `json:"due_at" binding:"required"`
}

// UpdateReminderRequest edits a reminder
type UpdateReminderRequest struct {
	Title string    `json:"title" binding:"required,max=200"`
	DueAt time.Time `json:"due_at" binding:"required"`
}

// ReminderResponse is the API view of a reminder
type ReminderResponse struct {
	ID         uuid.UUID `json:"id"`
	ProspectID uuid.UUID `json:"prospect_id"`
	Title      string    `json:"title"`
	DueAt      time.Time `json:"due_at"`
	Completed  bool      `json:"completed"`
	CreatedBy  uuid.UUID `json:"created_by"`
}

// AttachmentResponse is the API view of an attachment
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ProspectID  uuid.UUID `json:"prospect_id"`
	DisplayName string    `json:"display_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// AttachmentURLResponse carries a presigned download URL
type AttachmentURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CalendarEvent is one entry of the reminder calendar feed
type CalendarEvent struct {
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	URL    string    `json:"url"`
	Color  string    `json:"color"`
	Status string    `json:"status"`
}

// DashboardStateCount pairs a pipeline state with its prospect count
type DashboardStateCount struct {
	State string `json:"state"`
	Color string `json:"color"`
	Count int64  `json:"count"`
}

// DashboardWorkerRating is a worker's average rating across links
type DashboardWorkerRating struct {
	WorkerID   uuid.UUID `json:"worker_id"`
	WorkerName string    `json:"worker_name"`
	Average    float64   `json:"average"`
	Links      int64     `json:"links"`
}

// DashboardInactiveProspect flags a prospect with no recent interaction
type DashboardInactiveProspect struct {
	ProspectID    uuid.UUID  `json:"prospect_id"`
	FullName      string     `json:"full_name"`
	Company       string     `json:"company"`
	LastContactAt *time.Time `json:"last_contact_at"`
	DaysInactive  int        `json:"days_inactive"`
}

// DashboardResponse aggregates the home screen figures
type DashboardResponse struct {
	TotalProspects    int64                       `json:"total_prospects"`
	NewLast15Days     int64                       `json:"new_last_15_days"`
	WonProspects      int64                       `json:"won_prospects"`
	StateCounts       []DashboardStateCount       `json:"state_counts"`
	TopWorkers        []DashboardWorkerRating     `json:"top_workers"`
	InactiveProspects []DashboardInactiveProspect `json:"inactive_prospects"`
	UpcomingReminders []ReminderResponse          `json:"upcoming_reminders"`
	OverdueReminders  []ReminderResponse          `json:"overdue_reminders"`
}

// ToTagResponse converts a domain tag
func ToTagResponse(t *crm.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

// ToProspectResponse converts a domain prospect
func ToProspectResponse(p *crm.Prospect) ProspectResponse {
	tags := make([]TagResponse, len(p.Tags))
	for i := range p.Tags {
		tags[i] = ToTagResponse(&p.Tags[i])
	}
	return ProspectResponse{
		ID:              p.ID,
		FullName:        p.FullName,
		Email:           p.Email,
		Phone:           p.Phone,
		Company:         p.Company,
		Role:            p.Role,
		State:           string(p.State),
		StateColor:      p.StateColor(),
		Interest:        string(p.Interest),
		ReferredBy:      p.ReferredBy,
		ReferralContact: p.ReferralContact,
		InterestDetail:  p.InterestDetail,
		OwnerID:         p.GetOwnerID(),
		Tags:            tags,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToWorkerResponse converts a domain worker
func ToWorkerResponse(w *crm.Worker) WorkerResponse {
	return WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Role:      w.Role,
		Email:     w.Email,
		Phone:     w.Phone,
		CreatedAt: w.CreatedAt,
	}
}

// ToProspectWorkerResponse converts a domain prospect-worker link
func ToProspectWorkerResponse(link *crm.ProspectWorker) ProspectWorkerResponse {
	return ProspectWorkerResponse{
		ID:         link.ID,
		ProspectID: link.ProspectID,
		WorkerID:   link.WorkerID,
		Rating:     link.Rating,
	}
}

// ToInteractionResponse converts a domain interaction
func ToInteractionResponse(i *crm.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:         i.ID,
		ProspectID: i.ProspectID,
		Type:       string(i.Type),
		OccurredAt: i.OccurredAt,
		Notes:      i.Notes,
		CreatedBy:  i.CreatedBy,
	}
}

// ToReminderResponse converts a domain reminder
func ToReminderResponse(r *crm.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:         r.ID,
		ProspectID: r.ProspectID,
		Title:      r.Title,
		DueAt:      r.DueAt,
		Completed:  r.Completed,
		CreatedBy:  r.CreatedBy,
	}
}

// ToAttachmentResponse converts a domain attachment
func ToAttachmentResponse(a *crm.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		ProspectID:  a.ProspectID,
		DisplayName: a.DisplayName,
		UploadedAt:  a.UploadedAt,
	}
}
