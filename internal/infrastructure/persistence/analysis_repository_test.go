package persistence

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/esquire/backend/internal/domain/legal"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAnalysisRepository_FindOwned(t *testing.T) {
	t.Run("unmarshals jsonb findings", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAnalysisRepository(db)

		analysisID := uuid.New()
		userID := uuid.New()

		inconsistencies, err := json.Marshal([]legal.Inconsistency{
			{Text: "fled north", Issue: "contradiction", Severity: legal.SeverityHigh, Explanation: "earlier says south"},
		})
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{
			"id", "user_id", "client_id", "title", "document_type", "document_url", "document_text",
			"status", "inconsistencies", "constitutional_issues", "legal_arguments", "suggested_case_laws", "summary",
		}).AddRow(
			analysisID, userID, nil, "Arrest Report", "police report", "/uploads/documents/r1.pdf", "text",
			"completed", inconsistencies, nil, nil, nil, "Overall assessment",
		)

		mock.ExpectQuery(`SELECT \* FROM "document_analyses" WHERE id = \$1 AND user_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(analysisID, userID, 1).
			WillReturnRows(rows)

		analysis, err := repo.FindOwned(context.Background(), analysisID, userID)

		assert.NoError(t, err)
		require.NotNil(t, analysis)
		assert.Equal(t, legal.AnalysisCompleted, analysis.Status)
		require.Len(t, analysis.Inconsistencies, 1)
		assert.Equal(t, "contradiction", analysis.Inconsistencies[0].Issue)
		assert.Empty(t, analysis.ConstitutionalIssues)
		assert.Equal(t, "Overall assessment", analysis.Summary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when owned by another user", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAnalysisRepository(db)

		analysisID := uuid.New()
		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "document_analyses" WHERE id = \$1 AND user_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(analysisID, userID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		analysis, err := repo.FindOwned(context.Background(), analysisID, userID)

		assert.Nil(t, analysis)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCaseLawRepository_Search(t *testing.T) {
	t.Run("applies search and jurisdiction filters", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCaseLawRepository(db)

		rows := sqlmock.NewRows([]string{"id", "case_name", "citation", "year", "jurisdiction", "keywords"}).
			AddRow(uuid.New(), "Miranda v. Arizona", "384 U.S. 436", 1966, "Federal", "{miranda rights,custodial interrogation}")

		mock.ExpectQuery(`SELECT \* FROM "case_laws" WHERE \(LOWER\(case_name\) LIKE \$1 OR LOWER\(summary\) LIKE \$2 OR \$3 = ANY\(keywords\)\) AND jurisdiction = \$4 ORDER BY year DESC LIMIT .*`).
			WithArgs("%miranda%", "%miranda%", "miranda", "Federal", 50).
			WillReturnRows(rows)

		results, err := repo.Search(context.Background(), legal.CaseLawFilter{
			Search:       "Miranda",
			Jurisdiction: "Federal",
		})

		assert.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Miranda v. Arizona", results[0].CaseName)
		assert.Contains(t, results[0].Keywords, "miranda rights")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
