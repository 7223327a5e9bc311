package legal

import (
	"context"
	"sync"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentAnalyzer reviews a document's text and produces structured findings
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, documentText, documentType string) (*legal.AnalysisFindings, error)
}

// AnalysisService runs the document analysis pipeline. Creation returns
// immediately with a pending record; the AI review and precedent scoring
// run in the background and callers poll for the result.
type AnalysisService struct {
	analysisRepo legal.AnalysisRepository
	caseLawRepo  legal.CaseLawRepository
	clientRepo   legal.ClientRepository
	analyzer     DocumentAnalyzer
	logger       *zap.Logger

	// tracks in-flight analyses so Shutdown can wait for them
	inflight sync.WaitGroup
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	analysisRepo legal.AnalysisRepository,
	caseLawRepo legal.CaseLawRepository,
	clientRepo legal.ClientRepository,
	analyzer DocumentAnalyzer,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		analysisRepo: analysisRepo,
		caseLawRepo:  caseLawRepo,
		clientRepo:   clientRepo,
		analyzer:     analyzer,
		logger:       logger,
	}
}

// Create stores a pending analysis and kicks off the background review
func (s *AnalysisService) Create(ctx context.Context, input CreateAnalysisInput) (*AnalysisView, error) {
	analysis, err := legal.NewDocumentAnalysis(
		input.UserID, input.Title, input.DocumentType, input.DocumentURL, input.DocumentText)
	if err != nil {
		return nil, err
	}
	if input.ClientID != nil {
		// The referenced client must belong to the caller
		if _, err := s.clientRepo.FindOwned(ctx, *input.ClientID, input.UserID); err != nil {
			return nil, err
		}
		analysis.AttachClient(*input.ClientID)
	}

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		s.logger.Error("Failed to create analysis", zap.Error(err))
		return nil, err
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		// The request context ends when the response is sent; the pipeline
		// outlives it.
		s.run(context.Background(), analysis)
	}()

	view := NewAnalysisView(analysis)
	return &view, nil
}

// run executes the AI review and precedent scoring for one analysis
func (s *AnalysisService) run(ctx context.Context, analysis *legal.DocumentAnalysis) {
	log := s.logger.With(zap.String("analysis_id", analysis.ID.String()))

	if err := analysis.Start(); err != nil {
		log.Error("Failed to start analysis", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}
	if err := s.analysisRepo.Update(ctx, analysis); err != nil {
		log.Error("Failed to persist analyzing state", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}

	findings, err := s.analyzer.Analyze(ctx, analysis.DocumentText, analysis.DocumentType)
	if err != nil {
		log.Error("Document analysis failed", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}

	corpus, err := s.caseLawRepo.FindAll(ctx)
	if err != nil {
		log.Error("Failed to load precedent corpus", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}
	suggested := ScoreCaseLaws(corpus, findings.SuggestedKeywords)

	if err := analysis.Complete(*findings, suggested); err != nil {
		log.Error("Failed to complete analysis", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}
	if err := s.analysisRepo.Update(ctx, analysis); err != nil {
		log.Error("Failed to persist analysis results", zap.Error(err))
		s.fail(ctx, analysis, log)
		return
	}
	log.Info("Analysis completed",
		zap.Int("inconsistencies", len(analysis.Inconsistencies)),
		zap.Int("suggested_cases", len(suggested)),
	)
}

// fail moves the record to failed, best effort. Abort rather than Fail:
// the in-memory copy may already be completed when the completed write
// never reached the store.
func (s *AnalysisService) fail(ctx context.Context, analysis *legal.DocumentAnalysis, log *zap.Logger) {
	analysis.Abort()
	if err := s.analysisRepo.Update(ctx, analysis); err != nil {
		log.Error("Failed to persist failed state", zap.Error(err))
	}
}

// Get returns one of the caller's analyses. Completed analyses include the
// full precedent records for their suggestions.
func (s *AnalysisService) Get(ctx context.Context, id, userID uuid.UUID) (*AnalysisView, error) {
	analysis, err := s.analysisRepo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	view := NewAnalysisView(analysis)
	if analysis.Status == legal.AnalysisCompleted && len(analysis.SuggestedCaseLaws) > 0 {
		ids := make([]uuid.UUID, len(analysis.SuggestedCaseLaws))
		for i, ref := range analysis.SuggestedCaseLaws {
			ids[i] = ref.ID
		}
		details, err := s.caseLawRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		view.CaseLawDetails = details
	}
	return &view, nil
}

// List returns the caller's analyses, newest first, without document text
func (s *AnalysisService) List(ctx context.Context, userID uuid.UUID) ([]AnalysisView, error) {
	analyses, err := s.analysisRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]AnalysisView, 0, len(analyses))
	for _, a := range analyses {
		views = append(views, NewAnalysisView(a))
	}
	return views, nil
}

// Delete removes one of the caller's analyses
func (s *AnalysisService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	analysis, err := s.analysisRepo.FindOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.analysisRepo.Delete(ctx, analysis.ID)
}

// Wait blocks until all in-flight analyses have finished. Used during
// shutdown.
func (s *AnalysisService) Wait() {
	s.inflight.Wait()
}
