package social

import (
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Like records that a user liked a post. At most one like may exist per
// (user, post) pair; the uniqueness is enforced by the store.
type Like struct {
	shared.BaseEntity
	UserID uuid.UUID
	PostID uuid.UUID
}

// NewLike creates a like for a post
func NewLike(userID, postID uuid.UUID) *Like {
	return &Like{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		PostID:     postID,
	}
}
