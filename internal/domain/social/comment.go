package social

import (
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment represents a comment on a post
type Comment struct {
	shared.BaseEntity
	UserID  uuid.UUID
	PostID  uuid.UUID
	Content string
}

// NewComment creates a new comment after validating the content bounds
func NewComment(userID, postID uuid.UUID, content string) (*Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment content cannot be empty")
	}
	if len(content) > MaxCommentContentLength {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Comment content cannot exceed 1000 characters")
	}

	return &Comment{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		PostID:     postID,
		Content:    content,
	}, nil
}

// IsAuthoredBy reports whether the comment belongs to the given user
func (c *Comment) IsAuthoredBy(userID uuid.UUID) bool {
	return c.UserID == userID
}
