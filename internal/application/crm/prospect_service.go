package crm

import (
	"context"
	"strings"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ownerScope translates the acting principal into the repository scope:
// admins see everything (nil), everyone else sees their own records plus
// unowned ones.
func ownerScope(principal identity.Principal) *uuid.UUID {
	if principal.Admin {
		return nil
	}
	id := principal.UserID
	return &id
}

// ProspectService handles prospect business operations
type ProspectService struct {
	prospectRepo crm.ProspectRepository
	tagRepo      crm.TagRepository
	linkRepo     crm.ProspectWorkerRepository
	logger       *zap.Logger
}

// NewProspectService creates a new ProspectService
func NewProspectService(
	prospectRepo crm.ProspectRepository,
	tagRepo crm.TagRepository,
	linkRepo crm.ProspectWorkerRepository,
	logger *zap.Logger,
) *ProspectService {
	return &ProspectService{
		prospectRepo: prospectRepo,
		tagRepo:      tagRepo,
		linkRepo:     linkRepo,
		logger:       logger,
	}
}

// Create creates a new prospect owned by the acting principal
func (s *ProspectService) Create(ctx context.Context, principal identity.Principal, req CreateProspectRequest) (*ProspectResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.prospectRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A prospect with this email already exists")
	}

	prospect, err := crm.NewProspect(principal.UserID, req.FullName, req.Email)
	if err != nil {
		return nil, err
	}

	if err := prospect.Update(req.FullName, req.Email, req.Phone, req.Company, req.Role); err != nil {
		return nil, err
	}
	if req.State != "" {
		if err := prospect.SetState(crm.ProspectState(req.State)); err != nil {
			return nil, err
		}
	}
	if req.Interest != "" {
		if err := prospect.SetInterest(crm.ProspectInterest(req.Interest)); err != nil {
			return nil, err
		}
	}
	if req.ReferredBy != "" || req.ReferralContact != "" {
		if err := prospect.SetReferral(req.ReferredBy, req.ReferralContact); err != nil {
			return nil, err
		}
	}
	if req.InterestDetail != "" {
		prospect.SetInterestDetail(req.InterestDetail)
	}

	if err := s.prospectRepo.Save(ctx, prospect); err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		if err := s.applyTags(ctx, prospect, req.Tags); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Prospect created",
		zap.String("prospect_id", prospect.ID.String()),
		zap.String("created_by", principal.Username))

	response := ToProspectResponse(prospect)
	return &response, nil
}

// GetByID retrieves a prospect, enforcing the ownership policy
func (s *ProspectService) GetByID(ctx context.Context, principal identity.Principal, id uuid.UUID) (*ProspectResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	response := ToProspectResponse(prospect)
	if ratings, err := s.linkRepo.AverageRatings(ctx, []uuid.UUID{prospect.ID}); err == nil {
		response.AverageRating = ratings[prospect.ID]
	}
	return &response, nil
}

// List returns the prospects visible to the principal, newest first,
// with per-state counts for the pipeline cards
func (s *ProspectService) List(ctx context.Context, principal identity.Principal, query ProspectListQuery) ([]ProspectResponse, *ProspectListMeta, error) {
	scope := ownerScope(principal)

	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	filter.Search = strings.TrimSpace(query.Search)

	var prospects []crm.Prospect
	var err error
	if query.State != "" {
		prospects, err = s.prospectRepo.FindByState(ctx, scope, crm.ProspectState(query.State), filter)
	} else {
		prospects, err = s.prospectRepo.FindAll(ctx, scope, filter)
	}
	if err != nil {
		return nil, nil, err
	}

	total, err := s.prospectRepo.Count(ctx, scope, filter)
	if err != nil {
		return nil, nil, err
	}
	stateCounts, err := s.prospectRepo.CountByState(ctx, scope)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, len(prospects))
	for i := range prospects {
		ids[i] = prospects[i].ID
	}
	ratings, err := s.linkRepo.AverageRatings(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]ProspectResponse, len(prospects))
	for i := range prospects {
		responses[i] = ToProspectResponse(&prospects[i])
		responses[i].AverageRating = ratings[prospects[i].ID]
	}

	meta := &ProspectListMeta{
		Total:       total,
		Page:        filter.Page,
		PageSize:    filter.PageSize,
		StateCounts: make(map[string]int64, len(stateCounts)),
	}
	for state, count := range stateCounts {
		meta.StateCounts[string(state)] = count
	}
	return responses, meta, nil
}

// Update updates a prospect's fields and tags
func (s *ProspectService) Update(ctx context.Context, principal identity.Principal, id uuid.UUID, req UpdateProspectRequest) (*ProspectResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != prospect.Email {
		exists, err := s.prospectRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A prospect with this email already exists")
		}
	}

	if err := prospect.Update(req.FullName, req.Email, req.Phone, req.Company, req.Role); err != nil {
		return nil, err
	}
	if req.Interest != "" {
		if err := prospect.SetInterest(crm.ProspectInterest(req.Interest)); err != nil {
			return nil, err
		}
	}
	if err := prospect.SetReferral(req.ReferredBy, req.ReferralContact); err != nil {
		return nil, err
	}
	prospect.SetInterestDetail(req.InterestDetail)

	if err := s.prospectRepo.Save(ctx, prospect); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.applyTags(ctx, prospect, *req.Tags); err != nil {
			return nil, err
		}
	}

	response := ToProspectResponse(prospect)
	return &response, nil
}

// ChangeState moves a prospect through the pipeline
func (s *ProspectService) ChangeState(ctx context.Context, principal identity.Principal, id uuid.UUID, req ChangeStateRequest) (*ProspectResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	if err := prospect.SetState(crm.ProspectState(req.State)); err != nil {
		return nil, err
	}
	if err := s.prospectRepo.Save(ctx, prospect); err != nil {
		return nil, err
	}

	s.logger.Info("Prospect state changed",
		zap.String("prospect_id", prospect.ID.String()),
		zap.String("state", req.State))

	response := ToProspectResponse(prospect)
	return &response, nil
}

// Assign reassigns a prospect's owner. Admin only; a nil owner leaves
// the prospect unowned.
func (s *ProspectService) Assign(ctx context.Context, principal identity.Principal, id uuid.UUID, req AssignProspectRequest) (*ProspectResponse, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	prospect, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != nil {
		prospect.SetOwner(*req.OwnerID)
	} else {
		prospect.ClearOwner()
	}
	if err := s.prospectRepo.Save(ctx, prospect); err != nil {
		return nil, err
	}

	response := ToProspectResponse(prospect)
	return &response, nil
}

// Delete removes a prospect. Interactions, reminders, worker links and
// attachments go with it.
func (s *ProspectService) Delete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	prospect, err := s.prospectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return err
	}

	if err := s.prospectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Prospect deleted",
		zap.String("prospect_id", id.String()),
		zap.String("deleted_by", principal.Username))
	return nil
}

// ListTags returns all tags ordered by name
func (s *ProspectService) ListTags(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = ToTagResponse(&tags[i])
	}
	return responses, nil
}

// applyTags replaces the prospect's tag set with the named tags,
// creating any that do not exist yet
func (s *ProspectService) applyTags(ctx context.Context, prospect *crm.Prospect, names []string) error {
	seen := make(map[string]bool, len(names))
	tags := make([]crm.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		tag, err := s.tagRepo.FindByName(ctx, name)
		if err != nil {
			created, err := crm.NewTag(name)
			if err != nil {
				return err
			}
			if err := s.tagRepo.Save(ctx, created); err != nil {
				return err
			}
			tag = created
		}
		tags = append(tags, *tag)
	}

	prospect.Tags = tags
	return s.prospectRepo.SaveTags(ctx, prospect)
}
