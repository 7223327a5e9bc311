package social

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository defines the persistence interface for posts
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	// ListByAuthors returns posts by any of the given authors, newest first,
	// paginated with limit/offset.
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*Post, error)
	// SearchByContent finds posts whose content contains the query,
	// case-insensitive, newest first, up to limit results.
	SearchByContent(ctx context.Context, query string, limit int) ([]*Post, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// CommentRepository defines the persistence interface for comments
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListByPosts returns all comments for the given posts keyed by post ID,
	// oldest first within each post.
	ListByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]*Comment, error)
	CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

// LikeRepository defines the persistence interface for likes
type LikeRepository interface {
	// Create inserts a like; returns shared.ErrAlreadyExists when the user
	// already liked the post.
	Create(ctx context.Context, like *Like) error
	// Delete removes the like for the (user, post) pair; returns
	// shared.ErrNotFound when no such like exists.
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// LikedByUser reports which of the given posts the user has liked
	LikedByUser(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// FollowRepository defines the persistence interface for follow edges
type FollowRepository interface {
	// Create inserts a follow edge; returns shared.ErrAlreadyExists when the
	// edge is already present.
	Create(ctx context.Context, follow *Follow) error
	// Delete removes the follower -> following edge; returns
	// shared.ErrNotFound when no such edge exists.
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	// ListFollowingIDs returns the IDs of everyone the user follows
	ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	ListFollowerIDs(ctx context.Context, followingID uuid.UUID) ([]uuid.UUID, error)
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

// MediaRepository defines the persistence interface for post media
type MediaRepository interface {
	Create(ctx context.Context, media *PostMedia) error
	// ListByPosts returns media attachments for the given posts keyed by post ID
	ListByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]*PostMedia, error)
}
