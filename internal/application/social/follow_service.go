// Package social provides follow management and user/post search use cases.
package social

import (
	"context"

	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/domain/notification"
	"github.com/esquire/backend/internal/domain/social"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a notification to its recipient. Delivery failures must
// not fail the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, n *notification.Notification) error
}

// FollowService manages follow edges between users
type FollowService struct {
	followRepo social.FollowRepository
	userRepo   identity.UserRepository
	notifier   Notifier
	logger     *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(
	followRepo social.FollowRepository,
	userRepo identity.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Follow creates a follow edge and notifies the followed user
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	// The target must exist before an edge is created
	if _, err := s.userRepo.FindByID(ctx, followingID); err != nil {
		return err
	}

	follow, err := social.NewFollow(followerID, followingID)
	if err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return err
	}

	follower, err := s.userRepo.FindByID(ctx, followerID)
	if err != nil {
		s.logger.Warn("Failed to resolve follower for notification", zap.Error(err))
		return nil
	}
	n, err := notification.New(followingID, notification.TypeFollow, follower.DisplayName()+" started following you")
	if err != nil {
		s.logger.Warn("Failed to build follow notification", zap.Error(err))
		return nil
	}
	n.WithActor(followerID)
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to deliver follow notification", zap.Error(err))
	}
	return nil
}

// Unfollow removes the follow edge
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	return s.followRepo.Delete(ctx, followerID, followingID)
}

// Followers returns the profiles following the given user
func (s *FollowService) Followers(ctx context.Context, viewerID, userID uuid.UUID) ([]ProfileView, error) {
	ids, err := s.followRepo.ListFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, viewerID, ids)
}

// Following returns the profiles the given user follows
func (s *FollowService) Following(ctx context.Context, viewerID, userID uuid.UUID) ([]ProfileView, error) {
	ids, err := s.followRepo.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.profiles(ctx, viewerID, ids)
}

// Profile returns a single profile with its social counts
func (s *FollowService) Profile(ctx context.Context, viewerID, userID uuid.UUID) (*ProfileView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := newProfileView(user)
	if view.FollowerCount, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if view.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}
	if viewerID != userID {
		if view.FollowedByMe, err = s.followRepo.Exists(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}
	return &view, nil
}

func (s *FollowService) profiles(ctx context.Context, viewerID uuid.UUID, ids []uuid.UUID) ([]ProfileView, error) {
	if len(ids) == 0 {
		return []ProfileView{}, nil
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProfileView, 0, len(users))
	for _, u := range users {
		view := newProfileView(u)
		if u.ID != viewerID {
			followed, err := s.followRepo.Exists(ctx, viewerID, u.ID)
			if err != nil {
				return nil, err
			}
			view.FollowedByMe = followed
		}
		views = append(views, view)
	}
	return views, nil
}
