package handler

import (
	"github.com/esquire/backend/internal/application/feed"
	"github.com/esquire/backend/internal/interfaces/http/dto"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeedHandler handles feed and post HTTP requests
type FeedHandler struct {
	BaseHandler
	feedService *feed.Service
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Content string             `json:"content" binding:"required,max=5000"`
	Media   []PostMediaRequest `json:"media" binding:"omitempty,dive"`
}

// PostMediaRequest references an uploaded object to attach to a post
type PostMediaRequest struct {
	URL      string `json:"url" binding:"required,max=2000"`
	Filename string `json:"filename" binding:"required,max=255"`
	MimeType string `json:"mimeType" binding:"required,max=100"`
	Size     int64  `json:"size" binding:"required,gt=0"`
}

// AddCommentRequest represents the request body for commenting on a post
type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// GetFeed returns a page of posts from the user and the people they follow
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	take, skip := page.Window(feed.DefaultTake, feed.MaxTake)

	posts, err := h.feedService.Compose(c.Request.Context(), feed.ComposeInput{
		ViewerID: userID,
		Take:     take,
		Skip:     skip,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, posts)
}

// CreatePost creates a post authored by the caller
func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	media := make([]feed.MediaInput, 0, len(req.Media))
	for _, m := range req.Media {
		media = append(media, feed.MediaInput{
			URL:      m.URL,
			Filename: m.Filename,
			MimeType: m.MimeType,
			Size:     m.Size,
		})
	}

	post, err := h.feedService.CreatePost(c.Request.Context(), feed.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
		Media:   media,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, post)
}

// GetPost returns a single post with comments and like state
func (h *FeedHandler) GetPost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.feedService.GetPost(c.Request.Context(), userID, postID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, post)
}

// DeletePost removes one of the caller's posts
func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.feedService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// LikePost records the caller's like on a post
func (h *FeedHandler) LikePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.feedService.LikePost(c.Request.Context(), userID, postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UnlikePost removes the caller's like from a post
func (h *FeedHandler) UnlikePost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.feedService.UnlikePost(c.Request.Context(), userID, postID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddComment adds a comment to a post
func (h *FeedHandler) AddComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid post ID")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	comment, err := h.feedService.AddComment(c.Request.Context(), feed.AddCommentInput{
		UserID:  userID,
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, comment)
}

// DeleteComment removes a comment the caller may delete
func (h *FeedHandler) DeleteComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	if err := h.feedService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
