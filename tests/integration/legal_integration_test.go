// This file contains tests for clients, case notes, the precedent corpus,
// and the document analysis pipeline against PostgreSQL.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	legalapp "github.com/esquire/backend/internal/application/legal"
	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/domain/legal"
	"github.com/esquire/backend/internal/infrastructure/auth"
	"github.com/esquire/backend/internal/infrastructure/config"
	"github.com/esquire/backend/internal/infrastructure/persistence"
	"github.com/esquire/backend/internal/infrastructure/storage"
	"github.com/esquire/backend/internal/interfaces/http/handler"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAnalyzer returns fixed findings so the pipeline can run without an
// OpenAI key
type stubAnalyzer struct {
	findings *legal.AnalysisFindings
	err      error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, documentText, documentType string) (*legal.AnalysisFindings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.findings, nil
}

// LegalTestServer wires the legal services against a real database
type LegalTestServer struct {
	DB              *TestDB
	Engine          *gin.Engine
	UserRepo        *persistence.GormUserRepository
	CaseLawRepo     *persistence.GormCaseLawRepository
	JWTService      *auth.JWTService
	AnalysisService *legalapp.AnalysisService
}

// NewLegalTestServer creates a test server with the client, case note,
// case law, and analysis services backed by real repositories
func NewLegalTestServer(t *testing.T, analyzer legalapp.DocumentAnalyzer) *LegalTestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	testDB := NewSharedTestDB(t)

	logger := zap.NewNop()
	userRepo := persistence.NewGormUserRepository(testDB.DB)
	clientRepo := persistence.NewGormClientRepository(testDB.DB)
	caseNoteRepo := persistence.NewGormCaseNoteRepository(testDB.DB)
	caseLawRepo := persistence.NewGormCaseLawRepository(testDB.DB)
	analysisRepo := persistence.NewGormAnalysisRepository(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-legal-testing-1234567890",
		TokenExpiration: 15 * time.Minute,
		Issuer:          "esquire-test",
	})

	clientService := legalapp.NewClientService(clientRepo, logger)
	caseNoteService := legalapp.NewCaseNoteService(caseNoteRepo, logger)
	caseLawService := legalapp.NewCaseLawService(caseLawRepo, logger)
	analysisService := legalapp.NewAnalysisService(analysisRepo, caseLawRepo, clientRepo, analyzer, logger)

	objectStore, err := storage.NewLocalObjectStorage(t.TempDir(), "http://localhost:8080/media")
	require.NoError(t, err)

	clientHandler := handler.NewClientHandler(clientService)
	caseNoteHandler := handler.NewCaseNoteHandler(caseNoteService)
	caseLawHandler := handler.NewCaseLawHandler(caseLawService)
	analysisHandler := handler.NewAnalysisHandler(analysisService, objectStore, logger)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService))

	api.POST("/clients", clientHandler.Create)
	api.GET("/clients", clientHandler.List)
	api.GET("/clients/:id", clientHandler.Get)
	api.PUT("/clients/:id", clientHandler.Update)
	api.DELETE("/clients/:id", clientHandler.Delete)
	api.POST("/case-notes", caseNoteHandler.Create)
	api.GET("/case-notes", caseNoteHandler.List)
	api.PUT("/case-notes/:id", caseNoteHandler.Update)
	api.DELETE("/case-notes/:id", caseNoteHandler.Delete)
	api.GET("/caselaw/search", caseLawHandler.Search)
	api.POST("/analyses", analysisHandler.Create)
	api.POST("/analyses/upload", analysisHandler.Upload)
	api.GET("/analyses", analysisHandler.List)
	api.GET("/analyses/:id", analysisHandler.Get)
	api.DELETE("/analyses/:id", analysisHandler.Delete)

	return &LegalTestServer{
		DB:              testDB,
		Engine:          engine,
		UserRepo:        userRepo,
		CaseLawRepo:     caseLawRepo,
		JWTService:      jwtService,
		AnalysisService: analysisService,
	}
}

// CreateUser persists a user and returns a valid bearer token
func (ts *LegalTestServer) CreateUser(t *testing.T, prefix string) (*identity.User, string) {
	t.Helper()

	user, err := identity.NewUser(uniqueEmail(prefix), "correct-horse-battery", "TX", identity.EducationGrade11To12)
	require.NoError(t, err)
	require.NoError(t, ts.UserRepo.Create(context.Background(), user))

	issued, err := ts.JWTService.Generate(user.ID, user.Email)
	require.NoError(t, err)
	return user, issued.Token
}

// SeedCaseLaw stores one precedent in the corpus
func (ts *LegalTestServer) SeedCaseLaw(t *testing.T, caseName, citation string, year int, category string, keywords []string) *legal.CaseLaw {
	t.Helper()

	cl, err := legal.NewCaseLaw(caseName, citation, year, "U.S. Supreme Court", "federal", category,
		"Summary of "+caseName, "Relevant text of "+caseName, keywords)
	require.NoError(t, err)
	require.NoError(t, ts.CaseLawRepo.Create(context.Background(), cl))
	return cl
}

// Request makes an authenticated HTTP request to the test server
func (ts *LegalTestServer) Request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

func TestLegal_ClientOwnership(t *testing.T) {
	ts := NewLegalTestServer(t, &stubAnalyzer{})
	_, ownerToken := ts.CreateUser(t, "owner")
	_, strangerToken := ts.CreateUser(t, "stranger")

	w := ts.Request(t, http.MethodPost, "/api/v1/clients", map[string]string{
		"name":  "Maria Gonzalez",
		"email": "maria@example.com",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID uuid.UUID `json:"ID"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	clientID := created.Data.ID
	require.NotEqual(t, uuid.Nil, clientID)

	t.Run("owner can read and update", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/clients/"+clientID.String(), nil, ownerToken)
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.Request(t, http.MethodPut, "/api/v1/clients/"+clientID.String(), map[string]string{
			"name":  "Maria Gonzalez-Reyes",
			"phone": "555-0142",
		}, ownerToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("another user cannot see the client", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/clients/"+clientID.String(), nil, strangerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = ts.Request(t, http.MethodDelete, "/api/v1/clients/"+clientID.String(), nil, strangerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner list contains the client", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/clients", nil, ownerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []legal.Client `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Maria Gonzalez-Reyes", resp.Data[0].Name)
	})
}

func TestLegal_CaseNotes(t *testing.T) {
	ts := NewLegalTestServer(t, &stubAnalyzer{})
	_, token := ts.CreateUser(t, "notetaker")

	w := ts.Request(t, http.MethodPost, "/api/v1/case-notes", map[string]string{
		"content": "Request bodycam footage before the preliminary hearing.",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.Request(t, http.MethodGet, "/api/v1/case-notes", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []legal.CaseNote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Contains(t, resp.Data[0].Content, "bodycam")
}

func TestLegal_CaseLawSearch(t *testing.T) {
	ts := NewLegalTestServer(t, &stubAnalyzer{})
	_, token := ts.CreateUser(t, "researcher")

	ts.SeedCaseLaw(t, "Miranda v. Arizona", "384 U.S. 436", 1966, "confessions",
		[]string{"interrogation", "self-incrimination"})
	ts.SeedCaseLaw(t, "Terry v. Ohio", "392 U.S. 1", 1968, "search and seizure",
		[]string{"stop and frisk", "reasonable suspicion"})

	t.Run("query matches case name", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/caselaw/search?q=miranda", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []legal.CaseLaw `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Miranda v. Arizona", resp.Data[0].CaseName)
	})

	t.Run("category narrows results", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/caselaw/search?category=search+and+seizure", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []legal.CaseLaw `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data)
		names := make([]string, 0, len(resp.Data))
		for _, cl := range resp.Data {
			assert.Equal(t, "search and seizure", cl.Category)
			names = append(names, cl.CaseName)
		}
		assert.Contains(t, names, "Terry v. Ohio")
	})
}

func TestLegal_AnalysisPipeline(t *testing.T) {
	analyzer := &stubAnalyzer{
		findings: &legal.AnalysisFindings{
			Summary: "The stop lacked articulable suspicion.",
			Inconsistencies: []legal.Inconsistency{
				{Text: "Suspect was calm", Issue: "Contradicts radio log", Severity: "high", Explanation: "Dispatch recorded a struggle."},
			},
			SuggestedKeywords: []string{"reasonable suspicion"},
		},
	}
	ts := NewLegalTestServer(t, analyzer)
	_, token := ts.CreateUser(t, "analyst")

	wardlow := ts.SeedCaseLaw(t, "Illinois v. Wardlow", "528 U.S. 119", 2000, "search and seizure",
		[]string{"reasonable suspicion", "flight"})

	w := ts.Request(t, http.MethodPost, "/api/v1/analyses", map[string]string{
		"title":        "Traffic stop review",
		"documentType": "police_report",
		"documentText": "Officer initiated a stop based on a hunch.",
	}, token)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var created struct {
		Data legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, legal.AnalysisPending, created.Data.Status)

	// Let the background review finish before reading results
	ts.AnalysisService.Wait()

	w = ts.Request(t, http.MethodGet, "/api/v1/analyses/"+created.Data.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Data legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, legal.AnalysisCompleted, got.Data.Status)
	assert.Equal(t, "The stop lacked articulable suspicion.", got.Data.Summary)
	require.Len(t, got.Data.Inconsistencies, 1)
	require.NotEmpty(t, got.Data.SuggestedCaseLaws)

	suggestedIDs := make([]uuid.UUID, 0, len(got.Data.SuggestedCaseLaws))
	for _, ref := range got.Data.SuggestedCaseLaws {
		suggestedIDs = append(suggestedIDs, ref.ID)
	}
	assert.Contains(t, suggestedIDs, wardlow.ID)
	require.NotEmpty(t, got.Data.CaseLawDetails)

	t.Run("another user cannot read the analysis", func(t *testing.T) {
		_, otherToken := ts.CreateUser(t, "other")
		w := ts.Request(t, http.MethodGet, "/api/v1/analyses/"+created.Data.ID.String(), nil, otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLegal_AnalysisUpload(t *testing.T) {
	analyzer := &stubAnalyzer{
		findings: &legal.AnalysisFindings{Summary: "The confession preceded the warnings."},
	}
	ts := NewLegalTestServer(t, analyzer)
	_, token := ts.CreateUser(t, "uploader")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", "Transcript review"))
	require.NoError(t, writer.WriteField("documentType", "interrogation_transcript"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="transcript.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("Suspect confessed before Miranda warnings were read."))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var created struct {
		Data legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, legal.AnalysisPending, created.Data.Status)
	assert.NotEmpty(t, created.Data.DocumentURL)

	ts.AnalysisService.Wait()

	w = ts.Request(t, http.MethodGet, "/api/v1/analyses/"+created.Data.ID.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Data legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, legal.AnalysisCompleted, got.Data.Status)
	assert.Equal(t, "The confession preceded the warnings.", got.Data.Summary)
}
