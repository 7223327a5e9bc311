package handler

import (
	"github.com/esquire/backend/internal/application/social"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SocialHandler handles follow graph and profile HTTP requests
type SocialHandler struct {
	BaseHandler
	followService *social.FollowService
	searchService *social.SearchService
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(followService *social.FollowService, searchService *social.SearchService) *SocialHandler {
	return &SocialHandler{
		followService: followService,
		searchService: searchService,
	}
}

// Follow subscribes the caller to another user's posts
func (h *SocialHandler) Follow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.followService.Follow(c.Request.Context(), userID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unfollow removes the caller's subscription to another user
func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), userID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Followers lists the users following the given user
func (h *SocialHandler) Followers(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	profiles, err := h.followService.Followers(c.Request.Context(), viewerID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profiles)
}

// Following lists the users the given user follows
func (h *SocialHandler) Following(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	profiles, err := h.followService.Following(c.Request.Context(), viewerID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profiles)
}

// Profile returns a user's public profile with social counts
func (h *SocialHandler) Profile(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	profile, err := h.followService.Profile(c.Request.Context(), viewerID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

// Search finds users and posts matching a free-text query
func (h *SocialHandler) Search(c *gin.Context) {
	viewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	query := c.Query("q")

	result, err := h.searchService.Search(c.Request.Context(), viewerID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
