package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskdeck/taskdeck-api/docs"
	"github.com/taskdeck/taskdeck-api/internal/api/handler"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/core/service"
	"github.com/taskdeck/taskdeck-api/internal/infrastructure/config"
	"github.com/taskdeck/taskdeck-api/internal/infrastructure/db/postgres"
	redisinfra "github.com/taskdeck/taskdeck-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskdeck"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	limiter := redisinfra.NewSignInLimiter(rdb, cfg.SignIn.MaxAttempts, cfg.SignIn.Window)

	authService := service.NewAuthService(userRepo, sessionRepo, limiter, cfg.JWTSecret, cfg.SessionTTL, log)
	taskService := service.NewTaskService(taskRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Production())
	taskHandler := handler.NewTaskHandler(taskService)

	// Token parsing happens here once, for every request.
	e.Use(middleware.Authenticate(authService))

	// --- Public auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)

	// --- Protected routes ---
	protected := e.Group("", middleware.RequireAuth())
	protected.POST("/auth/signout", authHandler.SignOut)
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/users", authHandler.ListUsers)

	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks", taskHandler.List)
	protected.GET("/tasks/stats", taskHandler.Stats)
	protected.PATCH("/tasks/:id", taskHandler.Update)
	protected.DELETE("/tasks/:id", taskHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
