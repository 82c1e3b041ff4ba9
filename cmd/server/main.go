package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/JackSmar98/jsonplaceholder/internal/posts"
	"github.com/JackSmar98/jsonplaceholder/internal/router"
	"github.com/JackSmar98/jsonplaceholder/internal/session"
	"github.com/JackSmar98/jsonplaceholder/pkg/config"
	"github.com/JackSmar98/jsonplaceholder/pkg/firebase"
	"github.com/JackSmar98/jsonplaceholder/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx := context.Background()

	// Initialize Firebase when credentials are configured
	var firebaseAuthClient *fbauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
	}

	// One-shot post listing fetch, shared for the process lifetime
	provider := posts.NewProvider(cfg.ListingURL, nil)
	go provider.Fetch(ctx)

	// Process-wide session change broadcaster
	sessions := session.NewStore()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, provider, sessions, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
