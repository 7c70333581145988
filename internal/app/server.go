// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"shopauth-service/internal/config"
	"shopauth-service/internal/db"
	adminHandler "shopauth-service/internal/handlers/admin"
	authHandler "shopauth-service/internal/handlers/auth"
	"shopauth-service/internal/middleware"
	"shopauth-service/internal/pkg/ratelimit"
	"shopauth-service/internal/pkg/token"
	"shopauth-service/internal/repository/postgres"
	authUsecase "shopauth-service/internal/service/auth"
	repairUsecase "shopauth-service/internal/service/repair"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg         config.AppConfig
	engine      *gin.Engine
	logger      *zap.Logger
	authService *authUsecase.AuthService
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Token service -----
	tokens, err := token.NewService(s.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to build token service: %w", err)
	}
	if tokens.UsesDevFallback() {
		logger.Warn("TOKEN_SECRET_KEY not set, using development fallback secret; unsuitable for production")
	}

	// ----- Repositories -----
	accountRepo := postgres.NewAccountRepository(pool)

	// ----- Services -----
	rateLimiter := ratelimit.NewLoginLimiter(redisClient)
	authService := authUsecase.NewAuthService(accountRepo, tokens, rateLimiter, logger)
	repairService := repairUsecase.NewService(accountRepo, s.cfg.PrivilegedFloor, logger)
	s.authService = authService

	// ----- Bootstrap super admin -----
	if err := s.initializeSuperAdmin(); err != nil {
		logger.Error("failed to initialize super admin", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers & middleware -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	adminHandlerInst := adminHandler.NewAdminHandler(authService, repairService, logger)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, &Handlers{
		AuthHandler:    authHandlerInst,
		AdminHandler:   adminHandlerInst,
		AuthMiddleware: authMiddleware,
	})

	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// initializeSuperAdmin creates the super admin account if it doesn't exist.
func (s *Server) initializeSuperAdmin() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	email := os.Getenv("SUPER_ADMIN_EMAIL")
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	fullName := os.Getenv("SUPER_ADMIN_NAME")

	if email == "" {
		email = "admin@shopauth.local"
		s.logger.Warn("SUPER_ADMIN_EMAIL not set, using default", zap.String("email", email))
	}
	if password == "" {
		password = "ChangeMe-Now1!"
		s.logger.Warn("SUPER_ADMIN_PASSWORD not set, using default password")
	}
	if len(password) < 8 {
		return fmt.Errorf("super admin password must be at least 8 characters")
	}

	return s.authService.EnsureSuperAdminExists(ctx, email, password, fullName)
}
