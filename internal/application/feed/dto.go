package feed

import (
	"time"

	"github.com/google/uuid"
)

// Feed pagination bounds
const (
	DefaultTake = 20
	MaxTake     = 50
)

// AuthorView is the public slice of a user shown alongside posts
type AuthorView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State string    `json:"state"`
}

// MediaView describes an attachment on a post
type MediaView struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url"`
	Filename string    `json:"filename"`
	MimeType string    `json:"mimeType"`
	Size     int64     `json:"size"`
}

// CommentView is a comment with its author resolved
type CommentView struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	Author    AuthorView `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PostView is a fully composed post for the feed
type PostView struct {
	ID           uuid.UUID     `json:"id"`
	Content      string        `json:"content"`
	Author       AuthorView    `json:"author"`
	Media        []MediaView   `json:"media"`
	Comments     []CommentView `json:"comments"`
	LikeCount    int64         `json:"likeCount"`
	CommentCount int64         `json:"commentCount"`
	LikedByMe    bool          `json:"likedByMe"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ComposeInput selects a page of the viewer's feed
type ComposeInput struct {
	ViewerID uuid.UUID
	Take     int
	Skip     int
}

// MediaInput references an already uploaded object to attach to a post
type MediaInput struct {
	URL      string
	Filename string
	MimeType string
	Size     int64
}

// CreatePostInput contains the input for creating a post
type CreatePostInput struct {
	UserID  uuid.UUID
	Content string
	Media   []MediaInput
}

// AddCommentInput contains the input for commenting on a post
type AddCommentInput struct {
	UserID  uuid.UUID
	PostID  uuid.UUID
	Content string
}
