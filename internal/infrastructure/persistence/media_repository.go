package persistence

import (
	"context"

	"github.com/esquire/backend/internal/domain/social"
	"github.com/esquire/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMediaRepository implements social.MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// Create inserts a media attachment record
func (r *GormMediaRepository) Create(ctx context.Context, media *social.PostMedia) error {
	var model models.PostMediaModel
	model.FromDomain(media)
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListByPosts returns media attachments for the given posts keyed by post ID
func (r *GormMediaRepository) ListByPosts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]*social.PostMedia, error) {
	grouped := make(map[uuid.UUID][]*social.PostMedia, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}
	var mediaModels []models.PostMediaModel
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&mediaModels).Error; err != nil {
		return nil, err
	}
	for i := range mediaModels {
		m := mediaModels[i].ToDomain()
		grouped[m.PostID] = append(grouped[m.PostID], m)
	}
	return grouped, nil
}

var _ social.MediaRepository = (*GormMediaRepository)(nil)
