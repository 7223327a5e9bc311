package legal

import (
	"sort"
	"strings"

	"github.com/esquire/backend/internal/domain/legal"
)

// Relevance weights per matching field
const (
	keywordWeight      = 10
	caseNameWeight     = 8
	summaryWeight      = 5
	relevantTextWeight = 3

	maxSuggestedCases = 5
)

// ScoreCaseLaws ranks the corpus against the suggested keywords from an
// analysis. A case scores per keyword: matching one of its own keywords
// counts most, then the case name, the summary, and finally the relevant
// text excerpt. Only scoring cases are returned, best first, capped at five.
func ScoreCaseLaws(corpus []*legal.CaseLaw, keywords []string) []legal.CaseLawRef {
	refs := make([]legal.CaseLawRef, 0, maxSuggestedCases)

	for _, c := range corpus {
		score := scoreCase(c, keywords)
		if score <= 0 {
			continue
		}
		refs = append(refs, legal.CaseLawRef{
			ID:             c.ID,
			CaseName:       c.CaseName,
			Citation:       c.Citation,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].RelevanceScore > refs[j].RelevanceScore
	})
	if len(refs) > maxSuggestedCases {
		refs = refs[:maxSuggestedCases]
	}
	return refs
}

func scoreCase(c *legal.CaseLaw, keywords []string) int {
	caseName := strings.ToLower(c.CaseName)
	summary := strings.ToLower(c.Summary)
	relevantText := strings.ToLower(c.RelevantText)

	score := 0
	for _, keyword := range keywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		for _, own := range c.Keywords {
			if strings.Contains(strings.ToLower(own), kw) {
				score += keywordWeight
				break
			}
		}
		if strings.Contains(caseName, kw) {
			score += caseNameWeight
		}
		if strings.Contains(summary, kw) {
			score += summaryWeight
		}
		if strings.Contains(relevantText, kw) {
			score += relevantTextWeight
		}
	}
	return score
}
