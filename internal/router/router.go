package router

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/JackSmar98/jsonplaceholder/internal/activity"
	"github.com/JackSmar98/jsonplaceholder/internal/explorer"
	"github.com/JackSmar98/jsonplaceholder/internal/handlers"
	"github.com/JackSmar98/jsonplaceholder/internal/metrics"
	"github.com/JackSmar98/jsonplaceholder/internal/middleware"
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/JackSmar98/jsonplaceholder/internal/repositories"
	"github.com/JackSmar98/jsonplaceholder/internal/session"
	"github.com/JackSmar98/jsonplaceholder/internal/storage"
	"github.com/JackSmar98/jsonplaceholder/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	firebaseAuthClient *auth.Client,
	provider *posts.Provider,
	sessions *session.Store,
	cfg *config.Config,
) {
	err := pgdb.AutoMigrate(
		&models.AuthUser{},
		&models.Profile{},
		&models.Favorite{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// --- Client-state storage and the services on top of it ---
	kvStore := storage.NewMongoStore(mgClient.Database(cfg.MongoDatabase))
	activityLog := activity.NewLog(kvStore)
	postExplorer := explorer.New(provider, kvStore, activityLog, nil)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)

	// --- Unprotected routes for authentication (rate limited) ---
	authGroup := e.Group("/api/v1/auth")
	authGroup.Use(eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit))))
	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, firebaseAuthClient, sessions, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public routes ---
	public := e.Group("/api/v1")

	postHandler := handlers.NewPostHandler(provider)
	postHandler.RegisterPostRoutes(public)
	log.Println("Post routes configured.")

	sessionHandler := handlers.NewSessionHandler(sessions, cfg.JWTSecret)
	sessionHandler.RegisterSessionRoutes(public)
	log.Println("Session routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	api.POST("/auth/signout", authHandler.SignOut)

	commentHandler := handlers.NewCommentHandler(commentRepo, provider, activityLog)
	commentHandler.RegisterCommentRoutes(public, api)
	log.Println("Comment routes configured.")

	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, provider, activityLog)
	favoriteHandler.RegisterFavoriteRoutes(api)
	log.Println("Favorite routes configured.")

	profileHandler := handlers.NewProfileHandler(profileRepo, activityLog)
	profileHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	explorerHandler := handlers.NewExplorerHandler(postExplorer, provider)
	explorerHandler.RegisterExplorerRoutes(api)
	log.Println("Explorer routes configured.")

	// Unknown paths land on the post list
	e.Any("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/api/v1/posts")
	})

	log.Println("All routes configured.")
}
