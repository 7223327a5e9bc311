package legal

import (
	"github.com/esquire/backend/internal/domain/shared"
)

// CaseLaw is an entry in the shared precedent corpus. The corpus is
// read-only at runtime; entries are loaded by the seeder.
type CaseLaw struct {
	shared.BaseEntity
	CaseName     string
	Citation     string
	Year         int
	Court        string
	Jurisdiction string
	Category     string
	Summary      string
	RelevantText string
	Keywords     []string
}

// NewCaseLaw creates a corpus entry
func NewCaseLaw(caseName, citation string, year int, court, jurisdiction, category, summary, relevantText string, keywords []string) (*CaseLaw, error) {
	if caseName == "" {
		return nil, shared.NewDomainError("INVALID_CASE_LAW", "Case name cannot be empty")
	}
	if citation == "" {
		return nil, shared.NewDomainError("INVALID_CASE_LAW", "Citation cannot be empty")
	}
	return &CaseLaw{
		BaseEntity:   shared.NewBaseEntity(),
		CaseName:     caseName,
		Citation:     citation,
		Year:         year,
		Court:        court,
		Jurisdiction: jurisdiction,
		Category:     category,
		Summary:      summary,
		RelevantText: relevantText,
		Keywords:     keywords,
	}, nil
}
