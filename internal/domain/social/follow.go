package social

import (
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Follow is a directed edge in the social graph: follower -> following.
// Unique per ordered pair, no self-edges.
type Follow struct {
	shared.BaseEntity
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
}

// NewFollow creates a follow edge, rejecting self-follows
func NewFollow(followerID, followingID uuid.UUID) (*Follow, error) {
	if followerID == followingID {
		return nil, shared.NewDomainError("SELF_FOLLOW", "Cannot follow yourself")
	}
	return &Follow{
		BaseEntity:  shared.NewBaseEntity(),
		FollowerID:  followerID,
		FollowingID: followingID,
	}, nil
}
