package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/itemboard/itemboard-be/internal/api"
	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/config"
	"github.com/itemboard/itemboard-be/internal/database"
	"github.com/itemboard/itemboard-be/internal/logger"
	"github.com/itemboard/itemboard-be/internal/services"
	"github.com/itemboard/itemboard-be/internal/session"
	"github.com/itemboard/itemboard-be/internal/store"
	"github.com/itemboard/itemboard-be/internal/validation"
)

func main() {
	// A missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Production)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the session activity store and its pruner
	sessions := session.NewStore(cfg.SessionTimeout)
	pruner, err := session.NewPruner(sessions, cfg.SessionPruneSpec)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid session prune schedule")
	}
	pruner.Run()

	// Set up services
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authService := services.NewAuthService(
		store.NewAccountStore(db),
		auth.NewHasher(cfg.BcryptCost),
		tokens,
		validation.New(),
	)
	itemService := services.NewItemService(store.NewItemStore(db))

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		AuthService: authService,
		ItemService: itemService,
		Tokens:      tokens,
		Sessions:    sessions,
		TokenTTL:    cfg.TokenTTL,
		Production:  cfg.Production,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
