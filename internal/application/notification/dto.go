package notification

import (
	"time"

	"github.com/esquire/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// List pagination bounds
const (
	DefaultTake = 20
	MaxTake     = 100
)

// View is a notification as returned to callers
type View struct {
	ID        uuid.UUID         `json:"id"`
	Type      notification.Type `json:"type"`
	Content   string            `json:"content"`
	Read      bool              `json:"read"`
	ActorID   *uuid.UUID        `json:"actorId,omitempty"`
	PostID    *uuid.UUID        `json:"postId,omitempty"`
	CommentID *uuid.UUID        `json:"commentId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ListInput selects a page of a user's notifications
type ListInput struct {
	UserID uuid.UUID
	Take   int
	Skip   int
}

// NewView maps a domain notification to the transport representation
func NewView(n *notification.Notification) View {
	return View{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		Read:      n.Read,
		ActorID:   n.ActorID,
		PostID:    n.PostID,
		CommentID: n.CommentID,
		CreatedAt: n.CreatedAt,
	}
}
