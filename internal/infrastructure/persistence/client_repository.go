package persistence

import (
	"context"
	"errors"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements legal.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Create inserts a client
func (r *GormClientRepository) Create(ctx context.Context, client *legal.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update saves changes to an existing client
func (r *GormClientRepository) Update(ctx context.Context, client *legal.Client) error {
	var model models.ClientModel
	model.FromDomain(client)
	result := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"name":       model.Name,
			"email":      model.Email,
			"phone":      model.Phone,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindOwned finds a client by ID scoped to its owning user
func (r *GormClientRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByUser returns all clients owned by the user
func (r *GormClientRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.Client, error) {
	var clientModels []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]*legal.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return clients, nil
}

var _ legal.ClientRepository = (*GormClientRepository)(nil)
