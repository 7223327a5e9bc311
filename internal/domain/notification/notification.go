package notification

import (
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies what triggered a notification
type Type string

const (
	TypeLike    Type = "like"
	TypeComment Type = "comment"
	TypeFollow  Type = "follow"
	TypeMention Type = "mention"
)

// IsValid reports whether the type is one of the known kinds
func (t Type) IsValid() bool {
	switch t {
	case TypeLike, TypeComment, TypeFollow, TypeMention:
		return true
	}
	return false
}

// Notification is a message delivered to a user about activity on their
// content or profile. Actors never receive notifications about their own
// actions; the notification service drops those on delivery.
type Notification struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Type      Type
	Content   string
	Read      bool
	ActorID   *uuid.UUID
	PostID    *uuid.UUID
	CommentID *uuid.UUID
}

// New creates an unread notification for a recipient
func New(userID uuid.UUID, kind Type, content string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_NOTIFICATION_TYPE", "Unknown notification type")
	}
	if content == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Notification content cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Type:       kind,
		Content:    content,
	}, nil
}

// WithActor records who triggered the notification
func (n *Notification) WithActor(actorID uuid.UUID) *Notification {
	n.ActorID = &actorID
	return n
}

// WithPost links the notification to a post
func (n *Notification) WithPost(postID uuid.UUID) *Notification {
	n.PostID = &postID
	return n
}

// WithComment links the notification to a comment
func (n *Notification) WithComment(commentID uuid.UUID) *Notification {
	n.CommentID = &commentID
	return n
}

// MarkRead flips the notification to read. Idempotent.
func (n *Notification) MarkRead() {
	if !n.Read {
		n.Read = true
		n.Touch()
	}
}

// BelongsTo reports whether the notification is addressed to the given user
func (n *Notification) BelongsTo(userID uuid.UUID) bool {
	return n.UserID == userID
}
