// This file contains tests for the feed, posts, follows, and notifications
// flowing through real repositories against PostgreSQL.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	feedapp "github.com/esquire/backend/internal/application/feed"
	notificationapp "github.com/esquire/backend/internal/application/notification"
	socialapp "github.com/esquire/backend/internal/application/social"
	"github.com/esquire/backend/internal/domain/identity"
	"github.com/esquire/backend/internal/infrastructure/auth"
	"github.com/esquire/backend/internal/infrastructure/config"
	"github.com/esquire/backend/internal/infrastructure/persistence"
	"github.com/esquire/backend/internal/interfaces/http/handler"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// FeedTestServer wires the social and notification stack against a real database
type FeedTestServer struct {
	DB         *TestDB
	Engine     *gin.Engine
	UserRepo   *persistence.GormUserRepository
	JWTService *auth.JWTService
	Hub        *notificationapp.Hub
}

// NewFeedTestServer creates a test server with the feed, social, and
// notification services backed by real repositories
func NewFeedTestServer(t *testing.T) *FeedTestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	testDB := NewSharedTestDB(t)

	logger := zap.NewNop()
	userRepo := persistence.NewGormUserRepository(testDB.DB)
	postRepo := persistence.NewGormPostRepository(testDB.DB)
	commentRepo := persistence.NewGormCommentRepository(testDB.DB)
	likeRepo := persistence.NewGormLikeRepository(testDB.DB)
	followRepo := persistence.NewGormFollowRepository(testDB.DB)
	mediaRepo := persistence.NewGormMediaRepository(testDB.DB)
	notificationRepo := persistence.NewGormNotificationRepository(testDB.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-feed-testing-1234567890",
		TokenExpiration: 15 * time.Minute,
		Issuer:          "esquire-test",
	})

	hub := notificationapp.NewHub(notificationapp.WithHubLogger(logger))
	t.Cleanup(hub.Close)

	notificationService := notificationapp.NewService(notificationRepo, hub, logger)
	feedService := feedapp.NewService(postRepo, commentRepo, likeRepo, followRepo, mediaRepo, userRepo, notificationService, logger)
	followService := socialapp.NewFollowService(followRepo, userRepo, notificationService, logger)
	searchService := socialapp.NewSearchService(userRepo, postRepo, followRepo, logger)

	feedHandler := handler.NewFeedHandler(feedService)
	socialHandler := handler.NewSocialHandler(followService, searchService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtService))

	api.GET("/feed", feedHandler.GetFeed)
	api.POST("/posts", feedHandler.CreatePost)
	api.GET("/posts/:id", feedHandler.GetPost)
	api.DELETE("/posts/:id", feedHandler.DeletePost)
	api.POST("/posts/:id/like", feedHandler.LikePost)
	api.DELETE("/posts/:id/like", feedHandler.UnlikePost)
	api.POST("/posts/:id/comments", feedHandler.AddComment)
	api.POST("/users/:id/follow", socialHandler.Follow)
	api.DELETE("/users/:id/follow", socialHandler.Unfollow)
	api.GET("/users/:id", socialHandler.Profile)
	api.GET("/search", socialHandler.Search)
	api.GET("/notifications", notificationHandler.List)
	api.GET("/notifications/unread-count", notificationHandler.UnreadCount)

	return &FeedTestServer{
		DB:         testDB,
		Engine:     engine,
		UserRepo:   userRepo,
		JWTService: jwtService,
		Hub:        hub,
	}
}

// CreateUser persists a user and returns it with a valid bearer token
func (ts *FeedTestServer) CreateUser(t *testing.T, prefix string) (*identity.User, string) {
	t.Helper()

	user, err := identity.NewUser(uniqueEmail(prefix), "correct-horse-battery", "CA", identity.EducationCollegeOrMore)
	require.NoError(t, err)
	require.NoError(t, ts.UserRepo.Create(context.Background(), user))

	issued, err := ts.JWTService.Generate(user.ID, user.Email)
	require.NoError(t, err)
	return user, issued.Token
}

// Request makes an authenticated HTTP request to the test server
func (ts *FeedTestServer) Request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
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

type postEnvelope struct {
	Success bool             `json:"success"`
	Data    feedapp.PostView `json:"data"`
}

type feedEnvelope struct {
	Success bool               `json:"success"`
	Data    []feedapp.PostView `json:"data"`
}

func TestFeed_PostLifecycle(t *testing.T) {
	ts := NewFeedTestServer(t)
	author, authorToken := ts.CreateUser(t, "author")
	_, readerToken := ts.CreateUser(t, "reader")

	// Reader follows the author so the post lands in their feed
	w := ts.Request(t, http.MethodPost, "/api/v1/users/"+author.ID.String()+"/follow", nil, readerToken)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = ts.Request(t, http.MethodPost, "/api/v1/posts", map[string]string{
		"content": "Won the suppression motion this morning.",
	}, authorToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created postEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Data.ID
	assert.Equal(t, "Won the suppression motion this morning.", created.Data.Content)

	t.Run("post appears in follower feed", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/feed", nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var feed feedEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
		require.NotEmpty(t, feed.Data)

		found := false
		for _, p := range feed.Data {
			if p.ID == postID {
				found = true
				assert.Equal(t, author.ID, p.Author.ID)
				assert.False(t, p.LikedByMe)
			}
		}
		assert.True(t, found, "followed author's post missing from feed")
	})

	t.Run("like and comment update counts and notify the author", func(t *testing.T) {
		w := ts.Request(t, http.MethodPost, "/api/v1/posts/"+postID.String()+"/like", nil, readerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(t, http.MethodPost, "/api/v1/posts/"+postID.String()+"/comments", map[string]string{
			"content": "Congratulations, counselor.",
		}, readerToken)
		require.Equal(t, http.StatusCreated, w.Code)

		w = ts.Request(t, http.MethodGet, "/api/v1/posts/"+postID.String(), nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var post postEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, int64(1), post.Data.LikeCount)
		assert.Equal(t, int64(1), post.Data.CommentCount)
		assert.True(t, post.Data.LikedByMe)
		require.Len(t, post.Data.Comments, 1)
		assert.Equal(t, "Congratulations, counselor.", post.Data.Comments[0].Content)

		// Follow, like, and comment each notified the author
		w = ts.Request(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, authorToken)
		require.Equal(t, http.StatusOK, w.Code)

		var count struct {
			Data struct {
				Count int64 `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
		assert.GreaterOrEqual(t, count.Data.Count, int64(3))
	})

	t.Run("unlike removes the like", func(t *testing.T) {
		w := ts.Request(t, http.MethodDelete, "/api/v1/posts/"+postID.String()+"/like", nil, readerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(t, http.MethodGet, "/api/v1/posts/"+postID.String(), nil, readerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var post postEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, int64(0), post.Data.LikeCount)
		assert.False(t, post.Data.LikedByMe)
	})

	t.Run("only the author can delete the post", func(t *testing.T) {
		w := ts.Request(t, http.MethodDelete, "/api/v1/posts/"+postID.String(), nil, readerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.Request(t, http.MethodDelete, "/api/v1/posts/"+postID.String(), nil, authorToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(t, http.MethodGet, "/api/v1/posts/"+postID.String(), nil, authorToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFeed_ProfileAndSearch(t *testing.T) {
	ts := NewFeedTestServer(t)
	user, userToken := ts.CreateUser(t, "lawyer_jane")
	_, viewerToken := ts.CreateUser(t, "viewer")

	w := ts.Request(t, http.MethodPost, "/api/v1/posts", map[string]string{
		"content": "Filing a habeas petition for an indigent defendant.",
	}, userToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.Request(t, http.MethodPost, "/api/v1/users/"+user.ID.String()+"/follow", nil, viewerToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	t.Run("profile carries counts and follow state", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/users/"+user.ID.String(), nil, viewerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data socialapp.ProfileView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.Data.ID)
		assert.Equal(t, int64(1), resp.Data.FollowerCount)
		assert.True(t, resp.Data.FollowedByMe)
	})

	t.Run("post content search finds the post", func(t *testing.T) {
		w := ts.Request(t, http.MethodGet, "/api/v1/search?q=habeas", nil, viewerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data socialapp.SearchResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Data.Posts)
		assert.Contains(t, resp.Data.Posts[0].Content, "habeas")
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		w := ts.Request(t, http.MethodPost, "/api/v1/users/"+user.ID.String()+"/follow", nil, userToken)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unfollow works once and then 404s", func(t *testing.T) {
		w := ts.Request(t, http.MethodDelete, "/api/v1/users/"+user.ID.String()+"/follow", nil, viewerToken)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = ts.Request(t, http.MethodDelete, "/api/v1/users/"+user.ID.String()+"/follow", nil, viewerToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
