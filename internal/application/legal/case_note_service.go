package legal

import (
	"context"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseNoteService manages an attorney's private case notes
type CaseNoteService struct {
	repo   legal.CaseNoteRepository
	logger *zap.Logger
}

// NewCaseNoteService creates a new case note service
func NewCaseNoteService(repo legal.CaseNoteRepository, logger *zap.Logger) *CaseNoteService {
	return &CaseNoteService{repo: repo, logger: logger}
}

// Create adds a note for the caller
func (s *CaseNoteService) Create(ctx context.Context, input CaseNoteInput) (*legal.CaseNote, error) {
	note, err := legal.NewCaseNote(input.UserID, input.Content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("Failed to create case note", zap.Error(err))
		return nil, err
	}
	return note, nil
}

// Update replaces the content of one of the caller's notes
func (s *CaseNoteService) Update(ctx context.Context, id uuid.UUID, input CaseNoteInput) (*legal.CaseNote, error) {
	note, err := s.repo.FindOwned(ctx, id, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := note.UpdateContent(input.Content); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error("Failed to update case note", zap.Error(err))
		return nil, err
	}
	return note, nil
}

// List returns the caller's notes, newest first
func (s *CaseNoteService) List(ctx context.Context, userID uuid.UUID) ([]*legal.CaseNote, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes one of the caller's notes
func (s *CaseNoteService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	note, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, note.ID)
}
