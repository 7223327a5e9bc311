package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/domain/social"
	"github.com/esquire/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPostRepository implements social.PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create inserts a new post
func (r *GormPostRepository) Create(ctx context.Context, post *social.Post) error {
	var model models.PostModel
	model.FromDomain(post)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes a post. Child rows (likes, comments, media) are removed
// by ON DELETE CASCADE constraints.
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a post by ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Post, error) {
	var model models.PostModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByAuthors returns posts by any of the given authors, newest first
func (r *GormPostRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*social.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var postModels []models.PostModel
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	posts := make([]*social.Post, len(postModels))
	for i := range postModels {
		posts[i] = postModels[i].ToDomain()
	}
	return posts, nil
}

// SearchByContent finds posts whose content contains the query, case-insensitive
func (r *GormPostRepository) SearchByContent(ctx context.Context, query string, limit int) ([]*social.Post, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var postModels []models.PostModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(content) LIKE ?", pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	posts := make([]*social.Post, len(postModels))
	for i := range postModels {
		posts[i] = postModels[i].ToDomain()
	}
	return posts, nil
}

// CountByAuthor counts posts written by the given author
func (r *GormPostRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostModel{}).
		Where("user_id = ?", authorID).
		Count(&count).Error
	return count, err
}

var _ social.PostRepository = (*GormPostRepository)(nil)
