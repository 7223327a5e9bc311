// Package legal provides client management, case notes, the precedent
// corpus, and the AI document analysis pipeline.
package legal

import (
	"context"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService manages an attorney's client roster
type ClientService struct {
	repo   legal.ClientRepository
	logger *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(repo legal.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// Create adds a client to the caller's roster
func (s *ClientService) Create(ctx context.Context, input ClientInput) (*legal.Client, error) {
	client, err := legal.NewClient(input.UserID, input.Name)
	if err != nil {
		return nil, err
	}
	if err := client.UpdateDetails(input.Name, input.Email, input.Phone, input.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, client); err != nil {
		s.logger.Error("Failed to create client", zap.Error(err))
		return nil, err
	}
	return client, nil
}

// Update modifies one of the caller's clients
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input ClientInput) (*legal.Client, error) {
	client, err := s.repo.FindOwned(ctx, id, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := client.UpdateDetails(input.Name, input.Email, input.Phone, input.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, client); err != nil {
		s.logger.Error("Failed to update client", zap.Error(err))
		return nil, err
	}
	return client, nil
}

// Get returns one of the caller's clients
func (s *ClientService) Get(ctx context.Context, id, userID uuid.UUID) (*legal.Client, error) {
	return s.repo.FindOwned(ctx, id, userID)
}

// List returns the caller's clients
func (s *ClientService) List(ctx context.Context, userID uuid.UUID) ([]*legal.Client, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete removes one of the caller's clients
func (s *ClientService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	client, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, client.ID)
}
