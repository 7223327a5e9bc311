package legal

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines the persistence interface for clients.
// All lookups are scoped to the owning user.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*Client, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Client, error)
}

// CaseNoteRepository defines the persistence interface for case notes
type CaseNoteRepository interface {
	Create(ctx context.Context, note *CaseNote) error
	Update(ctx context.Context, note *CaseNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*CaseNote, error)
	// ListByUser returns the user's notes, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CaseNote, error)
}

// CaseLawFilter narrows a corpus search. Zero values mean no constraint.
type CaseLawFilter struct {
	Search       string
	Category     string
	Jurisdiction string
	Limit        int
}

// CaseLawRepository defines read access to the precedent corpus plus the
// insert path used by the seeder.
type CaseLawRepository interface {
	Create(ctx context.Context, caseLaw *CaseLaw) error
	FindAll(ctx context.Context) ([]*CaseLaw, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*CaseLaw, error)
	// Search matches the query against case name, summary, and keywords,
	// case-insensitive, ordered by year descending.
	Search(ctx context.Context, filter CaseLawFilter) ([]*CaseLaw, error)
	Count(ctx context.Context) (int64, error)
}

// AnalysisRepository defines the persistence interface for document analyses
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *DocumentAnalysis) error
	Update(ctx context.Context, analysis *DocumentAnalysis) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentAnalysis, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*DocumentAnalysis, error)
	// ListByUser returns the user's analyses, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*DocumentAnalysis, error)
}
