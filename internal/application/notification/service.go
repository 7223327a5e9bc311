// Package notification persists notifications and pushes them to live
// subscribers.
package notification

import (
	"context"

	"github.com/esquire/backend/internal/domain/notification"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service stores notifications and fans them out to connected clients
type Service struct {
	repo        notification.Repository
	broadcaster notification.Broadcaster
	logger      *zap.Logger
}

// NewService creates a new notification service
func NewService(repo notification.Repository, broadcaster notification.Broadcaster, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Notify persists the notification and publishes it to the recipient's open
// connections. Activity a user performed on their own content is dropped
// here, so callers never have to check.
func (s *Service) Notify(ctx context.Context, n *notification.Notification) error {
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return nil
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to persist notification", zap.Error(err))
		return err
	}
	s.broadcaster.Publish(n.UserID, n)
	return nil
}

// List returns a page of the user's notifications, newest first
func (s *Service) List(ctx context.Context, input ListInput) ([]View, error) {
	// Zero means unspecified; anything else is clamped, never rejected
	take := input.Take
	switch {
	case take == 0:
		take = DefaultTake
	case take < 1:
		take = 1
	case take > MaxTake:
		take = MaxTake
	}
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}

	notifications, err := s.repo.ListByUser(ctx, input.UserID, take, skip)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NewView(n))
	}
	return views, nil
}

// UnreadCount returns how many unread notifications the user has
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead marks a single notification as read. A notification that does
// not belong to the caller is indistinguishable from one that does not
// exist.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !n.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	if n.Read {
		return nil
	}
	n.MarkRead()
	return s.repo.Update(ctx, n)
}

// MarkAllRead marks every notification of the user as read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete removes a notification. As with MarkRead, someone else's
// notification reads as not found.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !n.BelongsTo(userID) {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
