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

// GormCommentRepository implements social.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *social.Comment) error {
	var model models.CommentModel
	model.FromDomain(comment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByPosts returns all comments for the given posts keyed by post ID,
// newest first within each post.
func (r *GormCommentRepository) ListByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]*social.Comment, error) {
	if len(postIDs) == 0 {
		return map[uuid.UUID][]*social.Comment{}, nil
	}
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}
	grouped := make(map[uuid.UUID][]*social.Comment, len(postIDs))
	for i := range commentModels {
		c := commentModels[i].ToDomain()
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	return grouped, nil
}

// CountByPosts counts comments per post
func (r *GormCommentRepository) CountByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return countByPosts(ctx, r.db, &models.CommentModel{}, postIDs)
}

var _ social.CommentRepository = (*GormCommentRepository)(nil)

// postCount is the scan target for grouped count queries
type postCount struct {
	PostID uuid.UUID
	Count  int64
}

// countByPosts runs a grouped count over any model with a post_id column
func countByPosts(ctx context.Context, db *gorm.DB, model any, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []postCount
	if err := db.WithContext(ctx).Model(model).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}
