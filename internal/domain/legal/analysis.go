package legal

import (
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AnalysisStatus tracks a document analysis through its lifecycle:
// pending -> analyzing -> completed | failed. No other transitions exist.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisAnalyzing AnalysisStatus = "analyzing"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// IsTerminal reports whether the status admits no further transitions
func (s AnalysisStatus) IsTerminal() bool {
	return s == AnalysisCompleted || s == AnalysisFailed
}

// Severity levels reported by the analyzer
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Inconsistency is a contradiction or questionable statement found in
// the document text.
type Inconsistency struct {
	Text        string `json:"text"`
	Issue       string `json:"issue"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
}

// ConstitutionalIssue flags a potential constitutional violation
type ConstitutionalIssue struct {
	Amendment   string `json:"amendment"`
	Violation   string `json:"violation"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
}

// LegalArgument is a potential defense argument surfaced by the analyzer
type LegalArgument struct {
	Argument    string `json:"argument"`
	Strength    string `json:"strength"`
	Explanation string `json:"explanation"`
}

// CaseLawRef is a scored pointer into the precedent corpus attached to a
// completed analysis.
type CaseLawRef struct {
	ID             uuid.UUID `json:"id"`
	CaseName       string    `json:"caseName"`
	Citation       string    `json:"citation"`
	RelevanceScore int       `json:"relevanceScore"`
}

// AnalysisFindings is the full result set produced by the analyzer
type AnalysisFindings struct {
	Inconsistencies      []Inconsistency       `json:"inconsistencies"`
	ConstitutionalIssues []ConstitutionalIssue `json:"constitutionalIssues"`
	SuggestedKeywords    []string              `json:"suggestedKeywords"`
	LegalArguments       []LegalArgument       `json:"legalArguments"`
	Summary              string                `json:"summary"`
}

// DocumentAnalysis is an uploaded document together with the state and
// results of its AI review. Results are only present once the analysis
// has completed.
type DocumentAnalysis struct {
	shared.BaseEntity
	UserID       uuid.UUID
	ClientID     *uuid.UUID
	Title        string
	DocumentType string
	DocumentURL  string
	DocumentText string
	Status       AnalysisStatus

	Inconsistencies      []Inconsistency
	ConstitutionalIssues []ConstitutionalIssue
	LegalArguments       []LegalArgument
	SuggestedCaseLaws    []CaseLawRef
	Summary              string
}

// NewDocumentAnalysis creates a pending analysis for an uploaded document
func NewDocumentAnalysis(userID uuid.UUID, title, documentType, documentURL, documentText string) (*DocumentAnalysis, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_ANALYSIS", "Title is required")
	}
	if documentType == "" {
		return nil, shared.NewDomainError("INVALID_ANALYSIS", "Document type is required")
	}
	return &DocumentAnalysis{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		Title:        title,
		DocumentType: documentType,
		DocumentURL:  documentURL,
		DocumentText: documentText,
		Status:       AnalysisPending,
	}, nil
}

// AttachClient links the analysis to one of the user's clients
func (a *DocumentAnalysis) AttachClient(clientID uuid.UUID) {
	a.ClientID = &clientID
}

// Start moves the analysis from pending to analyzing
func (a *DocumentAnalysis) Start() error {
	if a.Status != AnalysisPending {
		return shared.NewDomainError("INVALID_STATE", "Analysis can only start from pending state")
	}
	a.Status = AnalysisAnalyzing
	a.Touch()
	return nil
}

// Complete records the findings and moves the analysis to completed
func (a *DocumentAnalysis) Complete(findings AnalysisFindings, caseLaws []CaseLawRef) error {
	if a.Status != AnalysisAnalyzing {
		return shared.NewDomainError("INVALID_STATE", "Analysis can only complete while analyzing")
	}
	a.Status = AnalysisCompleted
	a.Inconsistencies = findings.Inconsistencies
	a.ConstitutionalIssues = findings.ConstitutionalIssues
	a.LegalArguments = findings.LegalArguments
	a.SuggestedCaseLaws = caseLaws
	a.Summary = findings.Summary
	a.Touch()
	return nil
}

// Fail moves the analysis to failed without recording results
func (a *DocumentAnalysis) Fail() error {
	if a.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Analysis already finished")
	}
	a.Status = AnalysisFailed
	a.Touch()
	return nil
}

// Abort forces the analysis into the failed state regardless of where it
// is. The pipeline uses it when a result could not be persisted, so a
// record never stays stuck in a non-terminal state.
func (a *DocumentAnalysis) Abort() {
	a.Status = AnalysisFailed
	a.Touch()
}

// IsOwnedBy reports whether the analysis belongs to the given user
func (a *DocumentAnalysis) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
