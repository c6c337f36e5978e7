package handler

import (
	"io"
	"mime"
	"path/filepath"

	"github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler handles prospect attachment HTTP requests
type AttachmentHandler struct {
	BaseHandler
	attachmentService *crm.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService *crm.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload stores a multipart file against a prospect. The blob is
// written to object storage before any database row exists.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.attachmentService.Upload(c.Request.Context(), principal, prospectID, fileHeader.Filename, contentType, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns a prospect's attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	prospectID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.attachmentService.List(c.Request.Context(), principal, prospectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// DownloadURL returns a short-lived presigned URL for the blob
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.attachmentService.DownloadURL(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an attachment record and its blob
func (h *AttachmentHandler) Delete(c *gin.Context) {
	principal, ok := h.getPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers all attachment routes
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prospects := rg.Group("/prospects")
	{
		prospects.GET(":id/attachments", h.List)
		prospects.POST(":id/attachments", h.Upload)
	}

	attachments := rg.Group("/attachments")
	{
		attachments.GET(":id/url", h.DownloadURL)
		attachments.DELETE(":id", h.Delete)
	}
}
