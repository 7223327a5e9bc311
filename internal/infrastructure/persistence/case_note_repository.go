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

// GormCaseNoteRepository implements legal.CaseNoteRepository using GORM
type GormCaseNoteRepository struct {
	db *gorm.DB
}

// NewGormCaseNoteRepository creates a new GormCaseNoteRepository
func NewGormCaseNoteRepository(db *gorm.DB) *GormCaseNoteRepository {
	return &GormCaseNoteRepository{db: db}
}

// Create inserts a case note
func (r *GormCaseNoteRepository) Create(ctx context.Context, note *legal.CaseNote) error {
	var model models.CaseNoteModel
	model.FromDomain(note)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update saves changes to an existing case note
func (r *GormCaseNoteRepository) Update(ctx context.Context, note *legal.CaseNote) error {
	var model models.CaseNoteModel
	model.FromDomain(note)
	result := r.db.WithContext(ctx).Model(&models.CaseNoteModel{}).
		Where("id = ?", note.ID).
		Updates(map[string]any{
			"content":    model.Content,
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

// Delete removes a case note
func (r *GormCaseNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CaseNoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindOwned finds a case note by ID scoped to its owning user
func (r *GormCaseNoteRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.CaseNote, error) {
	var model models.CaseNoteModel
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

// ListByUser returns the user's notes, newest first
func (r *GormCaseNoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.CaseNote, error) {
	var noteModels []models.CaseNoteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&noteModels).Error; err != nil {
		return nil, err
	}
	notes := make([]*legal.CaseNote, len(noteModels))
	for i := range noteModels {
		notes[i] = noteModels[i].ToDomain()
	}
	return notes, nil
}

var _ legal.CaseNoteRepository = (*GormCaseNoteRepository)(nil)
