package legal

import (
	"time"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/google/uuid"
)

// ClientInput contains the mutable fields of a client record
type ClientInput struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Phone   string
	Address string
}

// CaseNoteInput contains the input for creating or updating a case note
type CaseNoteInput struct {
	UserID  uuid.UUID
	Content string
}

// CaseLawSearchInput narrows a corpus search
type CaseLawSearchInput struct {
	Query        string
	Category     string
	Jurisdiction string
}

// CreateAnalysisInput contains the input for starting a document analysis
type CreateAnalysisInput struct {
	UserID       uuid.UUID
	ClientID     *uuid.UUID
	Title        string
	DocumentType string
	DocumentURL  string
	DocumentText string
}

// AnalysisView is an analysis with its suggested precedents resolved
type AnalysisView struct {
	ID           uuid.UUID            `json:"id"`
	ClientID     *uuid.UUID           `json:"clientId,omitempty"`
	Title        string               `json:"title"`
	DocumentType string               `json:"documentType"`
	DocumentURL  string               `json:"documentUrl,omitempty"`
	Status       legal.AnalysisStatus `json:"status"`

	Inconsistencies      []legal.Inconsistency       `json:"inconsistencies,omitempty"`
	ConstitutionalIssues []legal.ConstitutionalIssue `json:"constitutionalIssues,omitempty"`
	LegalArguments       []legal.LegalArgument       `json:"legalArguments,omitempty"`
	Summary              string                      `json:"summary,omitempty"`

	SuggestedCaseLaws []legal.CaseLawRef `json:"suggestedCaseLaws,omitempty"`
	CaseLawDetails    []*legal.CaseLaw   `json:"caseLawDetails,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAnalysisView maps a domain analysis to the transport representation
func NewAnalysisView(a *legal.DocumentAnalysis) AnalysisView {
	return AnalysisView{
		ID:                   a.ID,
		ClientID:             a.ClientID,
		Title:                a.Title,
		DocumentType:         a.DocumentType,
		DocumentURL:          a.DocumentURL,
		Status:               a.Status,
		Inconsistencies:      a.Inconsistencies,
		ConstitutionalIssues: a.ConstitutionalIssues,
		LegalArguments:       a.LegalArguments,
		Summary:              a.Summary,
		SuggestedCaseLaws:    a.SuggestedCaseLaws,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
