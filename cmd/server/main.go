package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wilideparisdenode/bloggerBackend/internal/api"
	"github.com/wilideparisdenode/bloggerBackend/internal/auth"
	"github.com/wilideparisdenode/bloggerBackend/internal/config"
	"github.com/wilideparisdenode/bloggerBackend/internal/database"
	"github.com/wilideparisdenode/bloggerBackend/internal/media"
	"github.com/wilideparisdenode/bloggerBackend/internal/repository"
	"github.com/wilideparisdenode/bloggerBackend/internal/service"
	"github.com/wilideparisdenode/bloggerBackend/pkg/logger"
)

func main() {
	// Load .env if present; real environments set vars directly
	godotenv.Load()

	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting blogger backend server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize media host
	host, err := media.NewCloudinaryHost(cfg.Media.CloudinaryURL, cfg.Media.UploadFolder, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure media host")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize auth primitives
	signer := auth.NewTokenSigner([]byte(cfg.Auth.JWTSecret))
	hasher := auth.NewPasswordHasher()

	// Initialize services
	services := service.NewServices(repos, signer, hasher, host, log)

	// Initialize router
	router := api.NewRouter(services, repos, signer, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
