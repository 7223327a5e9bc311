package handler

import (
	legalapp "github.com/esquire/backend/internal/application/legal"
	"github.com/gin-gonic/gin"
)

// CaseLawHandler handles precedent corpus HTTP requests
type CaseLawHandler struct {
	BaseHandler
	service *legalapp.CaseLawService
}

// NewCaseLawHandler creates a new case law handler
func NewCaseLawHandler(service *legalapp.CaseLawService) *CaseLawHandler {
	return &CaseLawHandler{
		service: service,
	}
}

// Search finds precedents matching a query, category, or jurisdiction
func (h *CaseLawHandler) Search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), legalapp.CaseLawSearchInput{
		Query:        c.Query("q"),
		Category:     c.Query("category"),
		Jurisdiction: c.Query("jurisdiction"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
