package social

import (
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Content length bounds
const (
	MaxPostContentLength    = 5000
	MaxCommentContentLength = 1000
)

// Post represents a feed post authored by a user.
// Like and comment counts are derived from child rows at read time and are
// never stored on the post itself.
type Post struct {
	shared.BaseEntity
	UserID  uuid.UUID
	Content string
}

// NewPost creates a new post after validating the content bounds
func NewPost(userID uuid.UUID, content string) (*Post, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Post content cannot be empty")
	}
	if len(content) > MaxPostContentLength {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Post content cannot exceed 5000 characters")
	}

	return &Post{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Content:    content,
	}, nil
}

// IsAuthoredBy reports whether the post belongs to the given user
func (p *Post) IsAuthoredBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// PostMedia is a media attachment stored alongside a post
type PostMedia struct {
	shared.BaseEntity
	UserID   uuid.UUID
	PostID   uuid.UUID
	URL      string
	Filename string
	MimeType string
	Size     int64
}

// NewPostMedia creates a media attachment record
func NewPostMedia(userID, postID uuid.UUID, url, filename, mimeType string, size int64) (*PostMedia, error) {
	if url == "" {
		return nil, shared.NewDomainError("INVALID_MEDIA", "Media URL cannot be empty")
	}
	return &PostMedia{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		PostID:     postID,
		URL:        url,
		Filename:   filename,
		MimeType:   mimeType,
		Size:       size,
	}, nil
}
