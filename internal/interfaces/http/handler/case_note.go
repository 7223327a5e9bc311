package handler

import (
	legalapp "github.com/esquire/backend/internal/application/legal"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaseNoteHandler handles case note HTTP requests
type CaseNoteHandler struct {
	BaseHandler
	service *legalapp.CaseNoteService
}

// NewCaseNoteHandler creates a new case note handler
func NewCaseNoteHandler(service *legalapp.CaseNoteService) *CaseNoteHandler {
	return &CaseNoteHandler{
		service: service,
	}
}

// CaseNoteRequest represents the request body for creating or updating a note
type CaseNoteRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

// Create adds a note to the caller's casebook
func (h *CaseNoteHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CaseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	note, err := h.service.Create(c.Request.Context(), legalapp.CaseNoteInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// Update modifies one of the caller's notes
func (h *CaseNoteHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case note ID")
		return
	}

	var req CaseNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	note, err := h.service.Update(c.Request.Context(), id, legalapp.CaseNoteInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// List returns the caller's notes, newest first
func (h *CaseNoteHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notes, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notes)
}

// Delete removes one of the caller's notes
func (h *CaseNoteHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid case note ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
