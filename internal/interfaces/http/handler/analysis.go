package handler

import (
	"fmt"
	"io"

	legalapp "github.com/esquire/backend/internal/application/legal"
	"github.com/esquire/backend/internal/infrastructure/storage"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles document analysis HTTP requests
type AnalysisHandler struct {
	BaseHandler
	service *legalapp.AnalysisService
	store   storage.ObjectStorage
	logger  *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *legalapp.AnalysisService, store storage.ObjectStorage, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// CreateAnalysisRequest represents the request body for starting an analysis
type CreateAnalysisRequest struct {
	ClientID     *uuid.UUID `json:"clientId" binding:"omitempty"`
	Title        string     `json:"title" binding:"required,max=300"`
	DocumentType string     `json:"documentType" binding:"required,max=100"`
	DocumentURL  string     `json:"documentUrl" binding:"omitempty,max=2000"`
	DocumentText string     `json:"documentText" binding:"omitempty"`
}

// Create stores a pending analysis and starts the background review. The
// response carries the pending record; clients poll Get for the outcome.
func (h *AnalysisHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	view, err := h.service.Create(c.Request.Context(), legalapp.CreateAnalysisInput{
		UserID:       userID,
		ClientID:     req.ClientID,
		Title:        req.Title,
		DocumentType: req.DocumentType,
		DocumentURL:  req.DocumentURL,
		DocumentText: req.DocumentText,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, view)
}

// Upload accepts a multipart document, stores it, extracts its text, and
// starts the background review. Only plain text files yield extractable
// text; other accepted types get a placeholder so the record still carries
// the stored document's URL.
func (h *AnalysisHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	title := c.PostForm("title")
	documentType := c.PostForm("documentType")
	if title == "" || documentType == "" {
		h.BadRequest(c, "Both title and documentType are required")
		return
	}

	var clientID *uuid.UUID
	if raw := c.PostForm("clientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		clientID = &id
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}
	if fileHeader.Size > MaxUploadSize {
		h.PayloadTooLarge(c, "File exceeds the 10 MB upload limit")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedUploadTypes[contentType]; !ok {
		h.UnsupportedMedia(c, "Only PDF, JPEG, PNG, and plain text uploads are accepted")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	if int64(len(data)) > MaxUploadSize {
		h.PayloadTooLarge(c, "File exceeds the 10 MB upload limit")
		return
	}

	documentText := extractDocumentText(data, contentType, fileHeader.Filename)

	key := storage.BuildKey("analyses", fileHeader.Filename)
	stored, err := h.store.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		h.logger.Error("Document upload failed", zap.String("key", key), zap.Error(err))
		h.InternalError(c, "Failed to store document")
		return
	}

	view, err := h.service.Create(c.Request.Context(), legalapp.CreateAnalysisInput{
		UserID:       userID,
		ClientID:     clientID,
		Title:        title,
		DocumentType: documentType,
		DocumentURL:  stored.URL,
		DocumentText: documentText,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Accepted(c, view)
}

// extractDocumentText returns the document body for plain text uploads and
// a placeholder for binary formats
func extractDocumentText(data []byte, contentType, filename string) string {
	if contentType == "text/plain" {
		return string(data)
	}
	return fmt.Sprintf("[Document uploaded: %s (%s). Text extraction is not available for this format.]", filename, contentType)
}

// Get returns one of the caller's analyses with any suggested precedents
func (h *AnalysisHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid analysis ID")
		return
	}

	view, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// List returns the caller's analyses, newest first
func (h *AnalysisHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	views, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// Delete removes one of the caller's analyses
func (h *AnalysisHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid analysis ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
