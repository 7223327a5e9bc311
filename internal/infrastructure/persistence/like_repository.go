package persistence

import (
	"context"
	"errors"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/domain/social"
	"github.com/esquire/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLikeRepository implements social.LikeRepository using GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// Create inserts a like; the unique (user_id, post_id) index rejects duplicates
func (r *GormLikeRepository) Create(ctx context.Context, like *social.Like) error {
	var model models.LikeModel
	model.FromDomain(like)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes the like for the (user, post) pair
func (r *GormLikeRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.LikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByPosts counts likes per post
func (r *GormLikeRepository) CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByPosts(ctx, r.db, &models.LikeModel{}, postIDs)
}

// LikedByUser reports which of the given posts the user has liked
func (r *GormLikeRepository) LikedByUser(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var likedPostIDs []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.LikeModel{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &likedPostIDs).Error; err != nil {
		return nil, err
	}
	for _, id := range likedPostIDs {
		liked[id] = true
	}
	return liked, nil
}

var _ social.LikeRepository = (*GormLikeRepository)(nil)
