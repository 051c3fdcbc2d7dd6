package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/task-system/internal/api/handler"
	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/service"
	"github.com/taskdesk/task-system/internal/infrastructure/config"
	mongodb "github.com/taskdesk/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdesk/task-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	authService := service.NewAuthService(userRepo, sessions, cfg.Session.Secret, cfg.Session.TTL, log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.TTL)
	taskHandler := handler.NewTaskHandler(taskService)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware(namespaceLabel))
	e.Use(middleware.Session(cfg.Session.Secret, sessions))

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Task API ---
	api := e.Group("/api")
	api.GET("/users", taskHandler.Users)
	api.GET("/tasks", taskHandler.Tasks)
	api.GET("/my-tasks", taskHandler.MyTasks)
	api.POST("/tasks", taskHandler.Create)
	api.DELETE("/tasks/:id", taskHandler.Delete)
	api.PATCH("/tasks/:id/complete", taskHandler.Complete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

const namespaceLabel = "taskdesk"
