package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/job-portal-be/internal/api"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/config"
	"github.com/isdelr/job-portal-be/internal/database"
	"github.com/isdelr/job-portal-be/internal/logger"
	"github.com/isdelr/job-portal-be/internal/services"
	"github.com/isdelr/job-portal-be/internal/store"
	"github.com/isdelr/job-portal-be/internal/store/memory"
	mongostore "github.com/isdelr/job-portal-be/internal/store/mongo"
	sqlitestore "github.com/isdelr/job-portal-be/internal/store/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	// Set up the record store
	st, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("Failed to initialize store")
	}
	defer closeStore()

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid password hashing configuration")
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid token configuration")
	}

	// Set up services
	userService := services.NewUserService(st, hasher)
	jobService := services.NewJobService(st)

	// Set up router
	router := api.NewRouter(cfg, userService, jobService, tokens, st)

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("store", cfg.StoreDriver).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openStore builds the configured store and returns a func releasing its
// connections.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("Using the in-memory store; data is lost on exit")
		return memory.New(), func() {}, nil

	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongostore.Connect(ctx, cfg.MongoURL)
		if err != nil {
			return nil, nil, err
		}
		st := mongostore.New(client, cfg.MongoDatabase)
		if err := st.Migrate(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		return st, func() {
			dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer dcancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}, nil

	default:
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}
		return sqlitestore.New(db), func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}, nil
	}
}
