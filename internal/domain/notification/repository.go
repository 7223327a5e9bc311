package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// ListByUser returns the user's notifications, newest first,
	// paginated with limit/offset.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Broadcaster pushes a notification to any live connections the recipient
// has open. Implementations must never block the caller.
type Broadcaster interface {
	Publish(userID uuid.UUID, n *Notification)
}
