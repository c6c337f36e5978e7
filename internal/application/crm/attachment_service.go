package crm

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorage is the blob store the attachment workflow depends on.
// Implemented by the S3 adapter in the infrastructure layer and by an
// in-memory stub for development and tests.
type ObjectStorage interface {
	// Upload stores the given bytes under the key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL returns a presigned URL for the key
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes the object under the key
	DeleteObject(ctx context.Context, key string) error
}

// AttachmentServiceConfig holds limits for the attachment workflow
type AttachmentServiceConfig struct {
	// MaxUploadSize is the largest accepted file, in bytes
	MaxUploadSize int64
	// DownloadURLExpiry is the lifetime of presigned download URLs
	DownloadURLExpiry time.Duration
}

// DefaultAttachmentServiceConfig returns the default configuration
func DefaultAttachmentServiceConfig() AttachmentServiceConfig {
	return AttachmentServiceConfig{
		MaxUploadSize:     25 << 20,
		DownloadURLExpiry: 1 * time.Hour,
	}
}

// AttachmentService handles prospect file attachments
type AttachmentService struct {
	attachmentRepo crm.AttachmentRepository
	prospectRepo   crm.ProspectRepository
	storage        ObjectStorage
	config         AttachmentServiceConfig
	logger         *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	attachmentRepo crm.AttachmentRepository,
	prospectRepo crm.ProspectRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		prospectRepo:   prospectRepo,
		storage:        storage,
		config:         DefaultAttachmentServiceConfig(),
		logger:         logger,
	}
}

// SetConfig overrides the service limits
func (s *AttachmentService) SetConfig(config AttachmentServiceConfig) {
	s.config = config
}

// Upload stores the file in the blob store and records the attachment.
// The blob goes first: a storage failure aborts the operation and no
// record is created.
func (s *AttachmentService) Upload(ctx context.Context, principal identity.Principal, prospectID uuid.UUID, fileName, contentType string, data []byte) (*AttachmentResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	if int64(len(data)) > s.config.MaxUploadSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the maximum upload size of %d bytes", s.config.MaxUploadSize))
	}

	key := fmt.Sprintf("prospects/%s/%s%s", prospectID, uuid.New(), filepath.Ext(fileName))
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("Blob upload failed",
			zap.String("prospect_id", prospectID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "File storage failed: "+err.Error())
	}

	attachment, err := crm.NewAttachment(prospectID, fileName, key)
	if err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	s.logger.Info("Attachment uploaded",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("prospect_id", prospectID.String()))

	response := ToAttachmentResponse(attachment)
	return &response, nil
}

// List returns a prospect's attachments, newest upload first
func (s *AttachmentService) List(ctx context.Context, principal identity.Principal, prospectID uuid.UUID) ([]AttachmentResponse, error) {
	prospect, err := s.prospectRepo.FindByID(ctx, prospectID)
	if err != nil {
		return nil, err
	}
	if err := crm.Authorize(principal, prospect.GetOwnerID()); err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.FindByProspect(ctx, prospectID)
	if err != nil {
		return nil, err
	}

	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = ToAttachmentResponse(&attachments[i])
	}
	return responses, nil
}

// DownloadURL returns a presigned URL for an attachment's blob
func (s *AttachmentService) DownloadURL(ctx context.Context, principal identity.Principal, id uuid.UUID) (*AttachmentURLResponse, error) {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAttachment(ctx, principal, attachment); err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, attachment.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "File storage failed: "+err.Error())
	}
	return &AttachmentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// Delete removes an attachment. The backing blob is deleted first; a
// storage failure leaves the record in place.
func (s *AttachmentService) Delete(ctx context.Context, principal identity.Principal, id uuid.UUID) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeAttachment(ctx, principal, attachment); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, attachment.StorageKey); err != nil {
		s.logger.Error("Blob delete failed",
			zap.String("attachment_id", id.String()),
			zap.Error(err))
		return shared.NewDomainError("EXTERNAL_SERVICE_ERROR", "File storage failed: "+err.Error())
	}
	return s.attachmentRepo.Delete(ctx, id)
}

func (s *AttachmentService) authorizeAttachment(ctx context.Context, principal identity.Principal, attachment *crm.Attachment) error {
	prospect, err := s.prospectRepo.FindByID(ctx, attachment.ProspectID)
	if err != nil {
		return err
	}
	return crm.Authorize(principal, prospect.GetOwnerID())
}
