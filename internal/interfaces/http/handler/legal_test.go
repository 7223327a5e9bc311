package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	legalapp "github.com/esquire/backend/internal/application/legal"
	"github.com/esquire/backend/internal/domain/legal"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockClientRepository implements legal.ClientRepository for testing
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, client *legal.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *legal.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.Client, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.Client), args.Error(1)
}

func (m *MockClientRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.Client, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*legal.Client), args.Error(1)
}

// MockCaseNoteRepository implements legal.CaseNoteRepository for testing
type MockCaseNoteRepository struct {
	mock.Mock
}

func (m *MockCaseNoteRepository) Create(ctx context.Context, note *legal.CaseNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCaseNoteRepository) Update(ctx context.Context, note *legal.CaseNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCaseNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCaseNoteRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.CaseNote, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.CaseNote), args.Error(1)
}

func (m *MockCaseNoteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.CaseNote, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*legal.CaseNote), args.Error(1)
}

// MockCaseLawRepository implements legal.CaseLawRepository for testing
type MockCaseLawRepository struct {
	mock.Mock
}

func (m *MockCaseLawRepository) Create(ctx context.Context, caseLaw *legal.CaseLaw) error {
	args := m.Called(ctx, caseLaw)
	return args.Error(0)
}

func (m *MockCaseLawRepository) FindAll(ctx context.Context) ([]*legal.CaseLaw, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*legal.CaseLaw), args.Error(1)
}

func (m *MockCaseLawRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*legal.CaseLaw, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*legal.CaseLaw), args.Error(1)
}

func (m *MockCaseLawRepository) Search(ctx context.Context, filter legal.CaseLawFilter) ([]*legal.CaseLaw, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*legal.CaseLaw), args.Error(1)
}

func (m *MockCaseLawRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalysisRepository implements legal.AnalysisRepository for testing
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *legal.DocumentAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepository) Update(ctx context.Context, analysis *legal.DocumentAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockAnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*legal.DocumentAnalysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.DocumentAnalysis), args.Error(1)
}

func (m *MockAnalysisRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*legal.DocumentAnalysis, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.DocumentAnalysis), args.Error(1)
}

func (m *MockAnalysisRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*legal.DocumentAnalysis, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*legal.DocumentAnalysis), args.Error(1)
}

// MockDocumentAnalyzer implements legalapp.DocumentAnalyzer for testing
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) Analyze(ctx context.Context, documentText, documentType string) (*legal.AnalysisFindings, error) {
	args := m.Called(ctx, documentText, documentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*legal.AnalysisFindings), args.Error(1)
}

func legalTestRouter(userID uuid.UUID, register func(*gin.Engine)) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, userID)
		c.Next()
	})
	register(router)
	return router
}

func TestClientHandler_Create(t *testing.T) {
	userID := uuid.New()

	repo := new(MockClientRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *legal.Client) bool {
		return c.UserID == userID && c.Name == "John Doe"
	})).Return(nil)

	h := NewClientHandler(legalapp.NewClientService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/clients", h.Create)
	})

	body := `{"name":"John Doe","email":"john@example.com","phone":"555-0101"}`
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    legal.Client `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "John Doe", resp.Data.Name)
	assert.Equal(t, "john@example.com", resp.Data.Email)
	repo.AssertExpectations(t)
}

func TestClientHandler_Create_MissingName(t *testing.T) {
	userID := uuid.New()

	repo := new(MockClientRepository)
	h := NewClientHandler(legalapp.NewClientService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/clients", h.Create)
	})

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"email":"x@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestClientHandler_Get_NotOwned(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()

	repo := new(MockClientRepository)
	repo.On("FindOwned", mock.Anything, clientID, userID).Return(nil, shared.ErrNotFound)

	h := NewClientHandler(legalapp.NewClientService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/clients/:id", h.Get)
	})

	req := httptest.NewRequest(http.MethodGet, "/clients/"+clientID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientHandler_Update(t *testing.T) {
	userID := uuid.New()
	client, err := legal.NewClient(userID, "Old Name")
	require.NoError(t, err)

	repo := new(MockClientRepository)
	repo.On("FindOwned", mock.Anything, client.ID, userID).Return(client, nil)
	repo.On("Update", mock.Anything, client).Return(nil)

	h := NewClientHandler(legalapp.NewClientService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.PUT("/clients/:id", h.Update)
	})

	body := `{"name":"New Name","address":"1 Court St"}`
	req := httptest.NewRequest(http.MethodPut, "/clients/"+client.ID.String(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New Name", client.Name)
	assert.Equal(t, "1 Court St", client.Address)
	repo.AssertExpectations(t)
}

func TestClientHandler_Delete(t *testing.T) {
	userID := uuid.New()
	client, err := legal.NewClient(userID, "Departing Client")
	require.NoError(t, err)

	repo := new(MockClientRepository)
	repo.On("FindOwned", mock.Anything, client.ID, userID).Return(client, nil)
	repo.On("Delete", mock.Anything, client.ID).Return(nil)

	h := NewClientHandler(legalapp.NewClientService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.DELETE("/clients/:id", h.Delete)
	})

	req := httptest.NewRequest(http.MethodDelete, "/clients/"+client.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestCaseNoteHandler_Create(t *testing.T) {
	userID := uuid.New()

	repo := new(MockCaseNoteRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *legal.CaseNote) bool {
		return n.UserID == userID && n.Content == "Motion to suppress due Friday"
	})).Return(nil)

	h := NewCaseNoteHandler(legalapp.NewCaseNoteService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/case-notes", h.Create)
	})

	body := `{"content":"Motion to suppress due Friday"}`
	req := httptest.NewRequest(http.MethodPost, "/case-notes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCaseNoteHandler_Update_NotOwned(t *testing.T) {
	userID := uuid.New()
	noteID := uuid.New()

	repo := new(MockCaseNoteRepository)
	repo.On("FindOwned", mock.Anything, noteID, userID).Return(nil, shared.ErrNotFound)

	h := NewCaseNoteHandler(legalapp.NewCaseNoteService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.PUT("/case-notes/:id", h.Update)
	})

	req := httptest.NewRequest(http.MethodPut, "/case-notes/"+noteID.String(), bytes.NewBufferString(`{"content":"edited"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	repo.AssertNotCalled(t, "Update")
}

func TestCaseNoteHandler_List(t *testing.T) {
	userID := uuid.New()
	note, err := legal.NewCaseNote(userID, "Check discovery deadline")
	require.NoError(t, err)

	repo := new(MockCaseNoteRepository)
	repo.On("ListByUser", mock.Anything, userID).Return([]*legal.CaseNote{note}, nil)

	h := NewCaseNoteHandler(legalapp.NewCaseNoteService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/case-notes", h.List)
	})

	req := httptest.NewRequest(http.MethodGet, "/case-notes", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    []*legal.CaseNote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, note.Content, resp.Data[0].Content)
}

func newTestCaseLaw(t *testing.T, caseName string, year int, keywords []string) *legal.CaseLaw {
	t.Helper()
	cl, err := legal.NewCaseLaw(caseName, "1 U.S. 1", year, "Supreme Court", "federal", "criminal procedure",
		"Summary of "+caseName, "Relevant text of "+caseName, keywords)
	require.NoError(t, err)
	return cl
}

func TestCaseLawHandler_Search(t *testing.T) {
	userID := uuid.New()
	miranda := newTestCaseLaw(t, "Miranda v. Arizona", 1966, []string{"interrogation", "self-incrimination"})

	repo := new(MockCaseLawRepository)
	repo.On("Search", mock.Anything, legal.CaseLawFilter{
		Search:       "interrogation",
		Category:     "criminal procedure",
		Jurisdiction: "federal",
	}).Return([]*legal.CaseLaw{miranda}, nil)

	h := NewCaseLawHandler(legalapp.NewCaseLawService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/caselaw/search", h.Search)
	})

	req := httptest.NewRequest(http.MethodGet,
		"/caselaw/search?q=interrogation&category=criminal+procedure&jurisdiction=federal", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []*legal.CaseLaw `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Miranda v. Arizona", resp.Data[0].CaseName)
	repo.AssertExpectations(t)
}

func TestCaseLawHandler_Search_NoFilters(t *testing.T) {
	userID := uuid.New()

	repo := new(MockCaseLawRepository)
	repo.On("Search", mock.Anything, legal.CaseLawFilter{}).Return([]*legal.CaseLaw{}, nil)

	h := NewCaseLawHandler(legalapp.NewCaseLawService(repo, zap.NewNop()))
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/caselaw/search", h.Search)
	})

	req := httptest.NewRequest(http.MethodGet, "/caselaw/search", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type analysisMocks struct {
	analyses *MockAnalysisRepository
	caseLaws *MockCaseLawRepository
	clients  *MockClientRepository
	analyzer *MockDocumentAnalyzer
}

func newAnalysisMocks() *analysisMocks {
	return &analysisMocks{
		analyses: new(MockAnalysisRepository),
		caseLaws: new(MockCaseLawRepository),
		clients:  new(MockClientRepository),
		analyzer: new(MockDocumentAnalyzer),
	}
}

func (a *analysisMocks) service() *legalapp.AnalysisService {
	return legalapp.NewAnalysisService(a.analyses, a.caseLaws, a.clients, a.analyzer, zap.NewNop())
}

func TestAnalysisHandler_Create(t *testing.T) {
	userID := uuid.New()
	gates := newTestCaseLaw(t, "Illinois v. Gates", 1983, []string{"probable cause", "search warrant"})

	mocks := newAnalysisMocks()
	mocks.analyses.On("Create", mock.Anything, mock.AnythingOfType("*legal.DocumentAnalysis")).Return(nil)
	mocks.analyses.On("Update", mock.Anything, mock.AnythingOfType("*legal.DocumentAnalysis")).Return(nil)
	mocks.analyzer.On("Analyze", mock.Anything, "The affidavit stated probable cause existed.", "police_report").
		Return(&legal.AnalysisFindings{
			Summary:           "The warrant affidavit is thin on corroboration.",
			SuggestedKeywords: []string{"probable cause"},
		}, nil)
	mocks.caseLaws.On("FindAll", mock.Anything).Return([]*legal.CaseLaw{gates}, nil)

	svc := mocks.service()
	h := NewAnalysisHandler(svc, new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses", h.Create)
	})

	body := `{"title":"Warrant review","documentType":"police_report","documentText":"The affidavit stated probable cause existed."}`
	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, legal.AnalysisPending, resp.Data.Status)

	// Drain the background pipeline before checking the mocks
	svc.Wait()
	mocks.analyzer.AssertExpectations(t)
	mocks.caseLaws.AssertExpectations(t)
	mocks.analyses.AssertNumberOfCalls(t, "Update", 2)
}

func TestAnalysisHandler_Create_UnknownClient(t *testing.T) {
	userID := uuid.New()
	clientID := uuid.New()

	mocks := newAnalysisMocks()
	mocks.clients.On("FindOwned", mock.Anything, clientID, userID).Return(nil, shared.ErrNotFound)

	h := NewAnalysisHandler(mocks.service(), new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses", h.Create)
	})

	body := `{"clientId":"` + clientID.String() + `","title":"Review","documentType":"contract","documentText":"text"}`
	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mocks.analyses.AssertNotCalled(t, "Create")
	mocks.analyzer.AssertNotCalled(t, "Analyze")
}

func TestAnalysisHandler_Create_AnalyzerFailure(t *testing.T) {
	userID := uuid.New()

	mocks := newAnalysisMocks()
	mocks.analyses.On("Create", mock.Anything, mock.AnythingOfType("*legal.DocumentAnalysis")).Return(nil)
	mocks.analyses.On("Update", mock.Anything, mock.MatchedBy(func(a *legal.DocumentAnalysis) bool {
		return a.Status == legal.AnalysisAnalyzing || a.Status == legal.AnalysisFailed
	})).Return(nil)
	mocks.analyzer.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError)

	svc := mocks.service()
	h := NewAnalysisHandler(svc, new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses", h.Create)
	})

	body := `{"title":"Doomed review","documentType":"contract","documentText":"some text"}`
	req := httptest.NewRequest(http.MethodPost, "/analyses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// The request still succeeds; the failure lands on the stored record
	assert.Equal(t, http.StatusAccepted, w.Code)

	svc.Wait()
	mocks.analyses.AssertNumberOfCalls(t, "Update", 2)
	mocks.caseLaws.AssertNotCalled(t, "FindAll")
}

func TestAnalysisHandler_Get_CompletedIncludesPrecedents(t *testing.T) {
	userID := uuid.New()
	terry := newTestCaseLaw(t, "Terry v. Ohio", 1968, []string{"stop and frisk"})

	analysis, err := legal.NewDocumentAnalysis(userID, "Stop review", "police_report", "", "Officer observed...")
	require.NoError(t, err)
	require.NoError(t, analysis.Start())
	require.NoError(t, analysis.Complete(legal.AnalysisFindings{Summary: "Frisk exceeded scope."},
		[]legal.CaseLawRef{{ID: terry.ID, CaseName: terry.CaseName, Citation: terry.Citation, RelevanceScore: 3}}))

	mocks := newAnalysisMocks()
	mocks.analyses.On("FindOwned", mock.Anything, analysis.ID, userID).Return(analysis, nil)
	mocks.caseLaws.On("FindByIDs", mock.Anything, []uuid.UUID{terry.ID}).Return([]*legal.CaseLaw{terry}, nil)

	h := NewAnalysisHandler(mocks.service(), new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/analyses/:id", h.Get)
	})

	req := httptest.NewRequest(http.MethodGet, "/analyses/"+analysis.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, legal.AnalysisCompleted, resp.Data.Status)
	require.Len(t, resp.Data.SuggestedCaseLaws, 1)
	require.Len(t, resp.Data.CaseLawDetails, 1)
	assert.Equal(t, "Terry v. Ohio", resp.Data.CaseLawDetails[0].CaseName)
}

func TestAnalysisHandler_Get_NotOwned(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	mocks := newAnalysisMocks()
	mocks.analyses.On("FindOwned", mock.Anything, id, userID).Return(nil, shared.ErrNotFound)

	h := NewAnalysisHandler(mocks.service(), new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.GET("/analyses/:id", h.Get)
	})

	req := httptest.NewRequest(http.MethodGet, "/analyses/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisHandler_Delete(t *testing.T) {
	userID := uuid.New()
	analysis, err := legal.NewDocumentAnalysis(userID, "Old review", "contract", "", "text")
	require.NoError(t, err)

	mocks := newAnalysisMocks()
	mocks.analyses.On("FindOwned", mock.Anything, analysis.ID, userID).Return(analysis, nil)
	mocks.analyses.On("Delete", mock.Anything, analysis.ID).Return(nil)

	h := NewAnalysisHandler(mocks.service(), new(MockObjectStorage), zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.DELETE("/analyses/:id", h.Delete)
	})

	req := httptest.NewRequest(http.MethodDelete, "/analyses/"+analysis.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mocks.analyses.AssertExpectations(t)
}

func analysisUploadRequest(t *testing.T, fields map[string]string, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyses/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestAnalysisHandler_Upload(t *testing.T) {
	userID := uuid.New()
	documentText := "The defendant was questioned without counsel present."

	mocks := newAnalysisMocks()
	mocks.analyses.On("Create", mock.Anything, mock.AnythingOfType("*legal.DocumentAnalysis")).Return(nil)
	mocks.analyses.On("Update", mock.Anything, mock.AnythingOfType("*legal.DocumentAnalysis")).Return(nil)
	mocks.analyzer.On("Analyze", mock.Anything, documentText, "interrogation_transcript").
		Return(&legal.AnalysisFindings{Summary: "Counsel was absent during questioning."}, nil)
	mocks.caseLaws.On("FindAll", mock.Anything).Return([]*legal.CaseLaw{}, nil)

	store := new(MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything, []byte(documentText), "text/plain").
		Return(&storage.StoredObject{
			Key:      "analyses/transcript.txt",
			URL:      "http://localhost:8080/media/analyses/transcript.txt",
			Size:     int64(len(documentText)),
			MimeType: "text/plain",
		}, nil)

	svc := mocks.service()
	h := NewAnalysisHandler(svc, store, zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses/upload", h.Upload)
	})

	req := analysisUploadRequest(t, map[string]string{
		"title":        "Interrogation review",
		"documentType": "interrogation_transcript",
	}, "transcript.txt", "text/plain", []byte(documentText))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    legalapp.AnalysisView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, legal.AnalysisPending, resp.Data.Status)
	assert.Equal(t, "http://localhost:8080/media/analyses/transcript.txt", resp.Data.DocumentURL)

	svc.Wait()
	store.AssertExpectations(t)
	mocks.analyzer.AssertExpectations(t)
}

func TestAnalysisHandler_Upload_MissingTitle(t *testing.T) {
	userID := uuid.New()

	mocks := newAnalysisMocks()
	store := new(MockObjectStorage)
	h := NewAnalysisHandler(mocks.service(), store, zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses/upload", h.Upload)
	})

	req := analysisUploadRequest(t, map[string]string{
		"documentType": "contract",
	}, "contract.txt", "text/plain", []byte("text"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Upload")
	mocks.analyses.AssertNotCalled(t, "Create")
}

func TestAnalysisHandler_Upload_DisallowedType(t *testing.T) {
	userID := uuid.New()

	mocks := newAnalysisMocks()
	store := new(MockObjectStorage)
	h := NewAnalysisHandler(mocks.service(), store, zap.NewNop())
	router := legalTestRouter(userID, func(r *gin.Engine) {
		r.POST("/analyses/upload", h.Upload)
	})

	req := analysisUploadRequest(t, map[string]string{
		"title":        "Archive",
		"documentType": "evidence",
	}, "evidence.zip", "application/zip", []byte("zip bytes"))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	store.AssertNotCalled(t, "Upload")
	mocks.analyses.AssertNotCalled(t, "Create")
}
