package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAttachmentService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores blob then record", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		prospectRepo := new(MockProspectRepository)
		storage := newFakeObjectStorage()
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)
		attachmentRepo.On("Save", ctx, mock.AnythingOfType("*crm.Attachment")).Return(nil)

		service := NewAttachmentService(attachmentRepo, prospectRepo, storage, zap.NewNop())

		resp, err := service.Upload(ctx, principal, prospect.ID, "contract.pdf", "application/pdf", []byte("%PDF-"))

		require.NoError(t, err)
		assert.Equal(t, "contract.pdf", resp.DisplayName)
		assert.Len(t, storage.objects, 1)
		attachmentRepo.AssertExpectations(t)
	})

	t.Run("storage failure aborts before any record", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		prospectRepo := new(MockProspectRepository)
		storage := newFakeObjectStorage()
		storage.failing = true
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := NewAttachmentService(attachmentRepo, prospectRepo, storage, zap.NewNop())

		resp, err := service.Upload(ctx, principal, prospect.ID, "contract.pdf", "application/pdf", []byte("%PDF-"))

		require.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", domainErr.Code)
		attachmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		prospectRepo := new(MockProspectRepository)
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := NewAttachmentService(attachmentRepo, prospectRepo, newFakeObjectStorage(), zap.NewNop())
		service.SetConfig(AttachmentServiceConfig{MaxUploadSize: 4, DownloadURLExpiry: DefaultAttachmentServiceConfig().DownloadURLExpiry})

		resp, err := service.Upload(ctx, principal, prospect.ID, "contract.pdf", "application/pdf", []byte("too large"))

		require.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "FILE_TOO_LARGE", domainErr.Code)
	})
}

func TestAttachmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes blob first, then record", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		prospectRepo := new(MockProspectRepository)
		storage := newFakeObjectStorage()
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		attachment, err := crm.NewAttachment(prospect.ID, "contract.pdf", "prospects/key.pdf")
		require.NoError(t, err)
		storage.objects["prospects/key.pdf"] = []byte("%PDF-")

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		attachmentRepo.On("Delete", ctx, attachment.ID).Return(nil)
		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := NewAttachmentService(attachmentRepo, prospectRepo, storage, zap.NewNop())

		require.NoError(t, service.Delete(ctx, principal, attachment.ID))
		assert.Empty(t, storage.objects)
		attachmentRepo.AssertExpectations(t)
	})

	t.Run("keeps record when blob delete fails", func(t *testing.T) {
		attachmentRepo := new(MockAttachmentRepository)
		prospectRepo := new(MockProspectRepository)
		storage := newFakeObjectStorage()
		storage.failing = true
		principal := userPrincipal()
		prospect := ownedProspect(t, principal.UserID)

		attachment, err := crm.NewAttachment(prospect.ID, "contract.pdf", "prospects/key.pdf")
		require.NoError(t, err)

		attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
		prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

		service := NewAttachmentService(attachmentRepo, prospectRepo, storage, zap.NewNop())

		err = service.Delete(ctx, principal, attachment.ID)

		require.Error(t, err)
		attachmentRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAttachmentService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	attachmentRepo := new(MockAttachmentRepository)
	prospectRepo := new(MockProspectRepository)
	principal := userPrincipal()
	prospect := ownedProspect(t, principal.UserID)

	attachment, err := crm.NewAttachment(prospect.ID, "contract.pdf", "prospects/key.pdf")
	require.NoError(t, err)

	attachmentRepo.On("FindByID", ctx, attachment.ID).Return(attachment, nil)
	prospectRepo.On("FindByID", ctx, prospect.ID).Return(prospect, nil)

	service := NewAttachmentService(attachmentRepo, prospectRepo, newFakeObjectStorage(), zap.NewNop())

	resp, err := service.DownloadURL(ctx, principal, attachment.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/prospects/key.pdf", resp.URL)
	assert.False(t, resp.ExpiresAt.IsZero())
}
