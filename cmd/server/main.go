package main

import (
	"log"
	"net/http"

	_ "examer/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"examer/internal/auth"
	"examer/internal/cache"
	"examer/internal/config"
	"examer/internal/db"
	"examer/internal/handler"
	"examer/internal/model"
	"examer/internal/repository"
	"examer/internal/router"
	"examer/internal/service"
)

// @title Examer API
// @version 1.0
// @description Exam and assessment management API with role-based access and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Assessment{},
		&model.Submission{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	assessmentRepo := repository.NewAssessmentRepository(gormDB)
	submissionRepo := repository.NewSubmissionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient, cfg.MediaDir)
	assessmentService := service.NewAssessmentService(assessmentRepo, cacheClient)
	submissionService := service.NewSubmissionService(submissionRepo, assessmentRepo)
	seedService := service.NewSeedService(userRepo, assessmentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, authService)
	submissionHandler := handler.NewSubmissionHandler(submissionService, authService)
	seedHandler := handler.NewSeedHandler(seedService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		assessmentHandler,
		submissionHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
