package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	identityapp "github.com/esquire/backend/internal/application/identity"
	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/domain/shared"
	"github.com/esquire/backend/internal/infrastructure/auth"
	"github.com/esquire/backend/internal/infrastructure/config"
	"github.com/esquire/backend/internal/interfaces/http/dto"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]*identity.User, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]*identity.User), args.Error(1)
}

func newTestAuthService(userRepo *MockUserRepository) *identityapp.AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars",
		TokenExpiration: 15 * time.Minute,
		Issuer:          "test-issuer",
	})
	return identityapp.NewAuthService(userRepo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, password, "CA", identity.EducationCollegeOrMore)
	require.NoError(t, err)
	return user
}

func authTestRouter(h *AuthHandler) *gin.Engine {
	middleware.SetupValidator()
	router := gin.New()
	router.POST("/auth/signup", h.Signup)
	router.POST("/auth/login", h.Login)
	return router
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	body, _ := json.Marshal(SignupRequest{
		Email:          "jane@example.com",
		Password:       "secret-password",
		Name:           "Jane Doe",
		State:          "CA",
		EducationLevel: string(identity.EducationCollegeOrMore),
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "jane@example.com", resp.Data.User.Email)
	userRepo.AssertExpectations(t)
}

func TestAuthHandler_Signup_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).
		Return(shared.ErrAlreadyExists)

	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	body, _ := json.Marshal(SignupRequest{
		Email:          "jane@example.com",
		Password:       "secret-password",
		State:          "CA",
		EducationLevel: string(identity.EducationCollegeOrMore),
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	userRepo := new(MockUserRepository)
	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	// Missing required fields
	body := []byte(`{"email": "not-an-email"}`)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret-password")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	body, _ := json.Marshal(LoginRequest{
		Email:    "jane@example.com",
		Password: "secret-password",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, user.ID, resp.Data.User.ID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret-password")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	body, _ := json.Marshal(LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, shared.ErrNotFound)

	h := NewAuthHandler(newTestAuthService(userRepo))
	router := authTestRouter(h)

	body, _ := json.Marshal(LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Unknown email and wrong password are indistinguishable to the caller
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret-password")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	h := NewAuthHandler(newTestAuthService(userRepo))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, user.ID)
		c.Next()
	})
	router.GET("/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    AuthUserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jane@example.com", resp.Data.Email)
	assert.Equal(t, "CA", resp.Data.State)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	userRepo := new(MockUserRepository)
	h := NewAuthHandler(newTestAuthService(userRepo))

	router := gin.New()
	router.GET("/auth/me", h.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	user := newTestUser(t, "jane@example.com", "secret-password")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	h := NewAuthHandler(newTestAuthService(userRepo))

	middleware.SetupValidator()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, user.ID)
		c.Next()
	})
	router.PUT("/auth/me", h.UpdateProfile)

	name := "Jane Q. Public"
	state := "NY"
	body, _ := json.Marshal(UpdateProfileRequest{Name: &name, State: &state})

	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    AuthUserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Q. Public", resp.Data.Name)
	assert.Equal(t, "NY", resp.Data.State)
	userRepo.AssertExpectations(t)
}
