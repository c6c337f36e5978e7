package crm

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkerService handles workers and their rated links to prospects
type WorkerService struct {
	workerRepo   crm.WorkerRepository
	prospectRepo crm.ProspectRepository
	linkRepo     crm.ProspectWorkerRepository
	logger       *zap.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(
	workerRepo crm.WorkerRepository,
	prospectRepo crm.ProspectRepository,
	linkRepo crm.ProspectWorkerRepository,
	logger *zap.Logger,
) *WorkerService {
	return &WorkerService{
		workerRepo:   workerRepo,
		prospectRepo: prospectRepo,
		linkRepo:     linkRepo,
		logger:       logger,
	}
}

// Create creates a new worker
func (s *WorkerService) Create(ctx context.Context, req CreateWorkerRequest) (*WorkerResponse, error) {
	worker, err := crm.NewWorker(req.Name, req.Role, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.workerRepo.Save(ctx, worker); err != nil {
		return nil, err
	}

	s.logger.Info("Worker created", zap.String("worker_id", worker.ID.String()))

	response := ToWorkerResponse(worker)
	return &response, nil
}

// GetByID retrieves a worker
func (s *WorkerService) GetByID(ctx context.Context, id uuid.UUID) (*WorkerResponse, error) {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWorkerResponse(worker)
	return &response, nil
}

// List returns workers ordered by name
func (s *WorkerService) List(ctx context.Context, filter shared.Filter) ([]WorkerResponse, int64, error) {
	workers, err := s.workerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.workerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WorkerResponse, len(workers))
	for i := range workers {
		responses[i] = ToWorkerResponse(&workers[i])
	}
	return responses, total, nil
}

// Update updates a worker's fields
func (s *WorkerService) Update(ctx context.Context, id uuid.UUID, req UpdateWorkerRequest) (*WorkerResponse, error) {
	worker, err := s.workerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := worker.Update(req.Name, req.Role, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if err := s.workerRepo.Save(ctx, worker); err != nil {
		return nil, err
	}

	response := ToWorkerResponse(worker)
	return &response, nil
}

// Delete removes a worker and its prospect links
func (s *WorkerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.workerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.workerRepo.Delete(ctx, id)
}

// LinkToProspect attaches a worker to a prospect with a rating. The
// (prospect, worker) pair is unique; a second link is a conflict.
func (s *WorkerService) LinkToProspect(ctx context.Context, principal identity.Principal, prospectID uuid.UUID, req LinkWorkerRequest) (*ProspectWorkerResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}
	worker, err := s.workerRepo.FindByID(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.linkRepo.FindLink(ctx, prospectID, req.WorkerID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Worker is already linked to this prospect")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	rating := crm.DefaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	link, err := crm.NewProspectWorker(prospectID, req.WorkerID, rating)
	if err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	response := ToProspectWorkerResponse(link)
	response.WorkerName = worker.Name
	return &response, nil
}

// ProspectWorkers lists a prospect's linked workers with their ratings
func (s *WorkerService) ProspectWorkers(ctx context.Context, principal identity.Principal, prospectID uuid.UUID) ([]ProspectWorkerResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByProspect(ctx, prospectID)
	if err != nil {
		return nil, err
	}

	responses := make([]ProspectWorkerResponse, len(links))
	for i := range links {
		responses[i] = ToProspectWorkerResponse(&links[i])
		if worker, err := s.workerRepo.FindByID(ctx, links[i].WorkerID); err == nil {
			responses[i].WorkerName = worker.Name
		}
	}
	return responses, nil
}

// UpdateLink changes the rating on a prospect-worker link
func (s *WorkerService) UpdateLink(ctx context.Context, principal identity.Principal, linkID uuid.UUID, req UpdateLinkRequest) (*ProspectWorkerResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLink(ctx, principal, link); err != nil {
		return nil, err
	}

	if err := link.SetRating(req.Rating); err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	response := ToProspectWorkerResponse(link)
	return &response, nil
}

// RemoveLink detaches a worker from a prospect
func (s *WorkerService) RemoveLink(ctx context.Context, principal identity.Principal, linkID uuid.UUID) error {
	link, err := s.linkRepo.FindByID(ctx, linkID)
	if err != nil {
		return err
	}
	if err := s.authorizeLink(ctx, principal, link); err != nil {
		return err
	}
	return s.linkRepo.Delete(ctx, linkID)
}

// The link itself carries no owner; authorization runs against the
// parent prospect.
func (s *WorkerService) authorizeLink(ctx context.Context, principal identity.Principal, link *crm.ProspectWorker) error {
	prospect, err := s.prospectRepo.FindByID(ctx, link.ProspectID)
	if err != nil {
		return err
	}
	return crm.Authorize(principal, prospect.GetOwnerID())
}
