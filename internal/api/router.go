package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/grandline/theories/internal/api/handler"
	"github.com/grandline/theories/internal/api/middleware"
	"github.com/grandline/theories/internal/core/service"
	mongodb "github.com/grandline/theories/internal/infrastructure/db/mongo"
	redisdb "github.com/grandline/theories/internal/infrastructure/db/redis"
	"github.com/grandline/theories/internal/reference"
)

// categoryPages maps each listing route to its category filter and page title.
var categoryPages = []struct {
	path, category, title string
}{
	{"/world_theories", "world", "World Theories"},
	{"/character_theories", "character", "Character Theories"},
	{"/fruit_theories", "fruit", "Fruit Theories"},
	{"/story_theories", "story", "Story Theories"},
	{"/crew_theories", "crew", "Crew Theories"},
	{"/misc_theories", "misc", "Miscellaneous Theories"},
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, sessionSecret string, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("theories"))

	sessions := service.NewSessionManager(sessionSecret, 24*time.Hour)
	e.Use(middleware.Session(sessions))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	theoryRepo := mongodb.NewTheoryRepository(db)
	categoryRepo := redisdb.NewCategoryCache(rdb, mongodb.NewCategoryRepository(db), log)

	authService := service.NewAuthService(userRepo, theoryRepo, log)
	theoryService := service.NewTheoryService(theoryRepo, categoryRepo, log)

	ref, err := reference.Load()
	if err != nil {
		return nil, err
	}

	authHandler := handler.NewAuthHandler(authService, sessions)
	theoryHandler := handler.NewTheoryHandler(theoryService, ref)

	// --- Pages ---
	e.GET("/", theoryHandler.Index)
	e.GET("/theories", theoryHandler.Theories)
	for _, p := range categoryPages {
		e.GET(p.path, theoryHandler.Category(p.category, p.title))
	}

	// --- Auth ---
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.GET("/profile/:username", authHandler.Profile, middleware.RequireSession)
	e.POST("/profile/:username", authHandler.Profile, middleware.RequireSession)

	// --- Theory CRUD ---
	// The add form is browsable anonymously; everything that writes, and the
	// edit form, requires a session.
	e.GET("/add_theories", theoryHandler.AddForm)
	e.POST("/add_theories", theoryHandler.Add, middleware.RequireSession)
	e.GET("/edit_theories/:theory_id", theoryHandler.EditForm, middleware.RequireSession)
	e.POST("/edit_theories/:theory_id", theoryHandler.Edit, middleware.RequireSession)
	e.GET("/delete_theories/:theory_id", theoryHandler.Delete, middleware.RequireSession)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/healthz/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
