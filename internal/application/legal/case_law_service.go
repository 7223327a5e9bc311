package legal

import (
	"context"

	"github.com/esquire/backend/internal/domain/legal"
	"go.uber.org/zap"
)

// CaseLawService exposes search over the precedent corpus
type CaseLawService struct {
	repo   legal.CaseLawRepository
	logger *zap.Logger
}

// NewCaseLawService creates a new case law service
func NewCaseLawService(repo legal.CaseLawRepository, logger *zap.Logger) *CaseLawService {
	return &CaseLawService{repo: repo, logger: logger}
}

// Search matches the query against the corpus, optionally narrowed by
// category and jurisdiction, most recent cases first.
func (s *CaseLawService) Search(ctx context.Context, input CaseLawSearchInput) ([]*legal.CaseLaw, error) {
	return s.repo.Search(ctx, legal.CaseLawFilter{
		Search:       input.Query,
		Category:     input.Category,
		Jurisdiction: input.Jurisdiction,
	})
}
