package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultCaseLawSearchLimit = 50

// GormCaseLawRepository implements legal.CaseLawRepository using GORM
type GormCaseLawRepository struct {
	db *gorm.DB
}

// NewGormCaseLawRepository creates a new GormCaseLawRepository
func NewGormCaseLawRepository(db *gorm.DB) *GormCaseLawRepository {
	return &GormCaseLawRepository{db: db}
}

// Create inserts a corpus entry; citations are unique
func (r *GormCaseLawRepository) Create(ctx context.Context, caseLaw *legal.CaseLaw) error {
	var model models.CaseLawModel
	model.FromDomain(caseLaw)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindAll returns the whole corpus
func (r *GormCaseLawRepository) FindAll(ctx context.Context) ([]*legal.CaseLaw, error) {
	var caseLawModels []models.CaseLawModel
	if err := r.db.WithContext(ctx).Find(&caseLawModels).Error; err != nil {
		return nil, err
	}
	return toDomainCaseLaws(caseLawModels), nil
}

// FindByIDs returns corpus entries with the given IDs
func (r *GormCaseLawRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*legal.CaseLaw, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var caseLawModels []models.CaseLawModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&caseLawModels).Error; err != nil {
		return nil, err
	}
	return toDomainCaseLaws(caseLawModels), nil
}

// Search matches the query against case name, summary, and keywords,
// ordered by year descending.
func (r *GormCaseLawRepository) Search(ctx context.Context, filter legal.CaseLawFilter) ([]*legal.CaseLaw, error) {
	query := r.db.WithContext(ctx).Model(&models.CaseLawModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(case_name) LIKE ? OR LOWER(summary) LIKE ? OR ? = ANY(keywords)",
			pattern, pattern, strings.ToLower(filter.Search),
		)
	}
	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}
	if filter.Jurisdiction != "" {
		query = query.Where("jurisdiction = ?", filter.Jurisdiction)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultCaseLawSearchLimit
	}

	var caseLawModels []models.CaseLawModel
	if err := query.Order("year DESC").Limit(limit).Find(&caseLawModels).Error; err != nil {
		return nil, err
	}
	return toDomainCaseLaws(caseLawModels), nil
}

// Count returns the corpus size
func (r *GormCaseLawRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CaseLawModel{}).Count(&count).Error
	return count, err
}

func toDomainCaseLaws(caseLawModels []models.CaseLawModel) []*legal.CaseLaw {
	caseLaws := make([]*legal.CaseLaw, len(caseLawModels))
	for i := range caseLawModels {
		caseLaws[i] = caseLawModels[i].ToDomain()
	}
	return caseLaws
}

var _ legal.CaseLawRepository = (*GormCaseLawRepository)(nil)
