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

// GormAnalysisRepository implements legal.AnalysisRepository using GORM
type GormAnalysisRepository struct {
	db *gorm.DB
}

// NewGormAnalysisRepository creates a new GormAnalysisRepository
func NewGormAnalysisRepository(db *gorm.DB) *GormAnalysisRepository {
	return &GormAnalysisRepository{db: db}
}

// Create inserts a document analysis
func (r *GormAnalysisRepository) Create(ctx context.Context, analysis *legal.DocumentAnalysis) error {
	var model models.AnalysisModel
	if err := model.FromDomain(analysis); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update saves the analysis state and any recorded findings
func (r *GormAnalysisRepository) Update(ctx context.Context, analysis *legal.DocumentAnalysis) error {
	var model models.AnalysisModel
	if err := model.FromDomain(analysis); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.AnalysisModel{}).
		Where("id = ?", analysis.ID).
		Updates(map[string]any{
			"status":                model.Status,
			"inconsistencies":       model.Inconsistencies,
			"constitutional_issues": model.ConstitutionalIssues,
			"legal_arguments":       model.LegalArguments,
			"suggested_case_laws":   model.SuggestedCaseLaws,
			"summary":               model.Summary,
			"updated_at":            model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an analysis
func (r *GormAnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AnalysisModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an analysis by ID
func (r *GormAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*legal.DocumentAnalysis, error) {
	var model models.AnalysisModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindOwned finds an analysis by ID scoped to its owning user
func (r *GormAnalysisRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.DocumentAnalysis, error) {
	var model models.AnalysisModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// ListByUser returns the user's analyses, newest first
func (r *GormAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.DocumentAnalysis, error) {
	var analysisModels []models.AnalysisModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&analysisModels).Error; err != nil {
		return nil, err
	}
	analyses := make([]*legal.DocumentAnalysis, len(analysisModels))
	for i := range analysisModels {
		a, err := analysisModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		analyses[i] = a
	}
	return analyses, nil
}

var _ legal.AnalysisRepository = (*GormAnalysisRepository)(nil)
