package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	feedapp "github.com/esquire/backend/internal/application/feed"
	identityapp "github.com/esquire/backend/internal/application/identity"
	legalapp "github.com/esquire/backend/internal/application/legal"
	notificationapp "github.com/esquire/backend/internal/application/notification"
	socialapp "github.com/esquire/backend/internal/application/social"
	"github.com/esquire/backend/internal/infrastructure/ai"
	"github.com/esquire/backend/internal/infrastructure/auth"
	"github.com/esquire/backend/internal/infrastructure/config"
	"github.com/esquire/backend/internal/infrastructure/logger"
	"github.com/esquire/backend/internal/infrastructure/persistence"
	"github.com/esquire/backend/internal/infrastructure/storage"
	"github.com/esquire/backend/internal/interfaces/http/handler"
	"github.com/esquire/backend/internal/interfaces/http/middleware"
	"github.com/esquire/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Esquire Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the JWT revocation list. If it is unreachable the server
	// still starts with an in-memory blacklist, which only covers one process.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var blacklist auth.TokenBlacklist
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	likeRepo := persistence.NewGormLikeRepository(db.DB)
	followRepo := persistence.NewGormFollowRepository(db.DB)
	mediaRepo := persistence.NewGormMediaRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	caseNoteRepo := persistence.NewGormCaseNoteRepository(db.DB)
	caseLawRepo := persistence.NewGormCaseLawRepository(db.DB)
	analysisRepo := persistence.NewGormAnalysisRepository(db.DB)

	// Object storage for uploads (post media and analysis documents)
	var objectStore storage.ObjectStorage
	switch cfg.Storage.Driver {
	case "s3":
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure S3 bucket", zap.Error(err))
		}
		objectStore = s3Store
		log.Info("S3 object storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	default:
		localStore, err := storage.NewLocalObjectStorage(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		objectStore = localStore
		log.Info("Local object storage initialized", zap.String("dir", cfg.Storage.LocalDir))
	}

	// Notification hub fans published notifications out to SSE subscribers
	hub := notificationapp.NewHub(
		notificationapp.WithHubLogger(log),
		notificationapp.WithHubBufferSize(cfg.SSE.ClientBufferSize),
	)
	defer hub.Close()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	notificationService := notificationapp.NewService(notificationRepo, hub, log)
	feedService := feedapp.NewService(
		postRepo, commentRepo, likeRepo, followRepo, mediaRepo, userRepo,
		notificationService, log,
	)
	followService := socialapp.NewFollowService(followRepo, userRepo, notificationService, log)
	searchService := socialapp.NewSearchService(userRepo, postRepo, followRepo, log)
	clientService := legalapp.NewClientService(clientRepo, log)
	caseNoteService := legalapp.NewCaseNoteService(caseNoteRepo, log)
	caseLawService := legalapp.NewCaseLawService(caseLawRepo, log)
	analyzer := ai.NewOpenAIAnalyzer(cfg.OpenAI, log)
	analysisService := legalapp.NewAnalysisService(analysisRepo, caseLawRepo, clientRepo, analyzer, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	feedHandler := handler.NewFeedHandler(feedService)
	socialHandler := handler.NewSocialHandler(followService, searchService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	notificationSSEHandler := handler.NewNotificationSSEHandler(hub,
		handler.WithSSELogger(log),
		handler.WithSSEHeartbeat(cfg.SSE.HeartbeatInterval),
	)
	clientHandler := handler.NewClientHandler(clientService)
	caseNoteHandler := handler.NewCaseNoteHandler(caseNoteService)
	caseLawHandler := handler.NewCaseLawHandler(caseLawService)
	analysisHandler := handler.NewAnalysisHandler(analysisService, objectStore, log)
	uploadHandler := handler.NewUploadHandler(objectStore, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/signup",
			"/api/v1/auth/login",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Stricter rate limiting on credential endpoints (if enabled)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimit(authLimiter))
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/me", authHandler.UpdateProfile)

	// Feed domain (posts, likes, comments)
	feedRoutes := router.NewDomainGroup("feed", "")
	feedRoutes.GET("/feed", feedHandler.GetFeed)
	feedRoutes.POST("/posts", feedHandler.CreatePost)
	feedRoutes.GET("/posts/:id", feedHandler.GetPost)
	feedRoutes.DELETE("/posts/:id", feedHandler.DeletePost)
	feedRoutes.POST("/posts/:id/like", feedHandler.LikePost)
	feedRoutes.DELETE("/posts/:id/like", feedHandler.UnlikePost)
	feedRoutes.POST("/posts/:id/comments", feedHandler.AddComment)
	feedRoutes.DELETE("/posts/:id/comments/:commentId", feedHandler.DeleteComment)

	// Social graph (follows, profiles, search)
	socialRoutes := router.NewDomainGroup("social", "")
	socialRoutes.POST("/users/:id/follow", socialHandler.Follow)
	socialRoutes.DELETE("/users/:id/follow", socialHandler.Unfollow)
	socialRoutes.GET("/users/:id/followers", socialHandler.Followers)
	socialRoutes.GET("/users/:id/following", socialHandler.Following)
	socialRoutes.GET("/users/:id", socialHandler.Profile)
	socialRoutes.GET("/search", socialHandler.Search)

	// Notifications (list, read state, live stream)
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.PATCH("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.POST("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.DELETE("/:id", notificationHandler.Delete)
	notificationRoutes.GET("/stream", notificationSSEHandler.Stream)

	// Legal workspace (clients, case notes, precedent search, analyses)
	legalRoutes := router.NewDomainGroup("legal", "")
	legalRoutes.POST("/clients", clientHandler.Create)
	legalRoutes.GET("/clients", clientHandler.List)
	legalRoutes.GET("/clients/:id", clientHandler.Get)
	legalRoutes.PUT("/clients/:id", clientHandler.Update)
	legalRoutes.DELETE("/clients/:id", clientHandler.Delete)
	legalRoutes.POST("/case-notes", caseNoteHandler.Create)
	legalRoutes.GET("/case-notes", caseNoteHandler.List)
	legalRoutes.PUT("/case-notes/:id", caseNoteHandler.Update)
	legalRoutes.DELETE("/case-notes/:id", caseNoteHandler.Delete)
	legalRoutes.GET("/caselaw/search", caseLawHandler.Search)
	legalRoutes.POST("/analyses", analysisHandler.Create)
	legalRoutes.POST("/analyses/upload", analysisHandler.Upload)
	legalRoutes.GET("/analyses", analysisHandler.List)
	legalRoutes.GET("/analyses/:id", analysisHandler.Get)
	legalRoutes.DELETE("/analyses/:id", analysisHandler.Delete)

	// Uploads
	uploadRoutes := router.NewDomainGroup("uploads", "/uploads")
	uploadRoutes.POST("", uploadHandler.Upload)

	// Register all domain groups
	r.Register(authRoutes).
		Register(feedRoutes).
		Register(socialRoutes).
		Register(notificationRoutes).
		Register(legalRoutes).
		Register(uploadRoutes)

	// Register system routes
	systemHandler := handler.NewSystemHandler(db.DB)
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config. WriteTimeout defaults to 0 so SSE
	// streams are not cut off mid-connection.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight document analyses finish writing their results
	analysisService.Wait()

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
