// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"proconnect/internal/auth"
	"proconnect/internal/cache"
	"proconnect/internal/config"
	"proconnect/internal/database"
	"proconnect/internal/middleware"
	"proconnect/internal/models"
	"proconnect/internal/repository"
	"proconnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	verifier       auth.TokenVerifier

	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	connectionRepo repository.ConnectionRepository

	userService       *service.UserService
	profileService    *service.ProfileService
	postService       *service.PostService
	commentService    *service.CommentService
	connectionService *service.ConnectionService
	resumeService     *service.ResumeService
	mediaService      *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient(), auth.NewJWTVerifier(cfg))
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and the
// token verifier.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, verifier auth.TokenVerifier) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)

	prom := middleware.InitMetrics("proconnect-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		verifier:       verifier,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		connectionRepo: connectionRepo,
	}

	server.mediaService = service.NewMediaService(cfg)
	server.userService = service.NewUserService(userRepo, profileRepo, connectionRepo)
	server.profileService = service.NewProfileService(profileRepo, userRepo, connectionRepo)
	server.postService = service.NewPostService(postRepo, userRepo, server.mediaService)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.connectionService = service.NewConnectionService(connectionRepo, userRepo, profileRepo)
	server.resumeService = service.NewResumeService(userRepo, profileRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Distributed tracing spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/", s.ActiveCheck)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Stored media (post attachments, profile pictures)
	app.Static("/uploads", s.mediaService.UploadDir())

	// Account routes
	app.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	app.Get("/user/external/:externalAuthId", s.GetUserByExternalID)
	app.Get("/get_user_and_profile", s.AuthRequired(), s.GetUserAndProfile)
	app.Post("/user_update", s.AuthRequired(), s.UpdateUserProfile)
	app.Post("/update_profile_data", s.AuthRequired(), s.UpdateProfileData)
	app.Post("/update_profile_picture", s.AuthRequired(), s.UpdateProfilePicture)

	// Directory and public profiles
	app.Get("/user/get_all_users", s.OptionalAuth(), s.GetAllUsers)
	app.Get("/user/profile/:username", s.AuthRequired(), s.GetProfileByUsername)
	app.Get("/user/download_resume/:userId?", s.AuthRequired(), s.DownloadResume)

	// Connection routes
	app.Post("/user/sendConnectionRequest", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "connection_request"), s.SendConnectionRequest)
	app.Get("/user/getMyConnectionRequests", s.AuthRequired(), s.GetMyConnectionRequests)
	app.Get("/user/getMySentConnectionRequests", s.AuthRequired(), s.GetMySentConnectionRequests)
	app.Get("/user/whatAreMyConnections", s.AuthRequired(), s.GetMyConnections)
	app.Post("/user/acceptConnectionRequest", s.AuthRequired(), s.AcceptConnectionRequest)
	app.Post("/user/rejectConnectionRequest", s.AuthRequired(), s.RejectConnectionRequest)
	app.Post("/user/toggleConnectionRequest", s.AuthRequired(), s.ToggleConnectionRequest)
	app.Get("/user/connectionStatus/:targetUserId", s.AuthRequired(), s.GetConnectionStatus)

	// Post routes
	app.Post("/posts", s.AuthRequired(), s.CreatePost)
	app.Get("/posts", s.OptionalAuth(), s.GetPosts)
	app.Get("/posts/user/:username", s.GetPostsByUsername)
	app.Delete("/posts/:postId/delete", s.AuthRequired(), s.DeletePost)

	// Comment routes
	app.Post("/posts/:postId/comment", s.AuthRequired(), s.CreateComment)
	app.Get("/posts/:postId/comments", s.GetComments)
	app.Delete("/comments/:commentId/delete", s.AuthRequired(), s.DeleteComment)

	// Like routes
	app.Post("/posts/:postId/like", s.AuthRequired(), s.ToggleLike)
	app.Get("/posts/:postId/likes", s.GetLikes)
}

// ActiveCheck is the legacy root health alias.
func (s *Server) ActiveCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "active"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns middleware that verifies the bearer token against the
// external identity provider and resolves it to a local user. A valid token
// without a matching local user is a 404: registration happens after the
// provider sign-up, so the client needs to distinguish the two cases.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access denied. No token provided"))
		}

		externalID, err := s.verifier.Verify(c.UserContext(), token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		user, err := s.userRepo.GetByExternalID(c.UserContext(), externalID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("User", externalID))
		}

		c.Locals("userID", user.ID)
		c.Locals("username", user.Username)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// OptionalAuth resolves the bearer token to a local user when present but
// never rejects the request.
func (s *Server) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		externalID, err := s.verifier.Verify(c.UserContext(), token)
		if err != nil {
			return c.Next()
		}

		user, err := s.userRepo.GetByExternalID(c.UserContext(), externalID)
		if err != nil {
			return c.Next()
		}

		c.Locals("userID", user.ID)
		c.Locals("username", user.Username)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "ProConnect API",
		BodyLimit: (s.config.MediaMaxUploadMB + 1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	slog.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			slog.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			slog.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			slog.Error("error closing redis", "error", rerr)
		}
	}

	slog.Info("server shutdown complete")
	return nil
}
