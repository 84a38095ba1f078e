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

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/api"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/config"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/database"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/logger"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/repositories"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	logg, err := logger.New(logger.DefaultConfig(), "staff-store")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logger")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to load config")
	}

	// Initialize database connections
	postgresPool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to create postgres pool")
	}
	defer postgresPool.Close()

	if err := database.EnsureSchema(ctx, postgresPool); err != nil {
		logg.Fatal().Err(err).Msg("Failed to create schema")
	}

	staffRepo := repositories.NewPostgresStaffRepository(postgresPool)
	logRepo := repositories.NewPostgresActivityLogRepository(postgresPool)
	botRepo := repositories.NewPostgresBotRepository(postgresPool)

	seed, err := database.LoadSeed(cfg.SeedFile)
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to load seed")
	}
	if err := seed.Apply(ctx, seedTarget{staff: staffRepo, bots: botRepo}, logg); err != nil {
		logg.Fatal().Err(err).Msg("Failed to seed store")
	}

	// Redis is optional; without it /api/presence answers 503.
	var presenceRepo repositories.PresenceRepository
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, logg)
		if err != nil {
			logg.Fatal().Err(err).Msg("Failed to create redis client")
		}
		defer redisClient.Close()
		presenceRepo = repositories.NewRedisPresenceRepository(redisClient)
	}

	handler := api.NewStoreHandler(staffRepo, logRepo, botRepo, presenceRepo, logg)
	router := api.NewRouter(handler.Routes())

	// Start Server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logg.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logg.Info().Str("port", cfg.ServerPort).Msg("Starting server")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logg.Fatal().Err(err).Msg("Server error")
	}

	logg.Info().Msg("Server stopped gracefully")
}

// seedTarget adapts the staff and bot repositories to database.SeedTarget.
type seedTarget struct {
	staff repositories.StaffRepository
	bots  repositories.BotRepository
}

func (t seedTarget) CountStaff(ctx context.Context) (int, error) { return t.staff.Count(ctx) }
func (t seedTarget) CountBots(ctx context.Context) (int, error)  { return t.bots.Count(ctx) }

func (t seedTarget) UpsertStaff(ctx context.Context, s *models.StaffEntry) error {
	return t.staff.Upsert(ctx, s)
}

func (t seedTarget) UpsertBot(ctx context.Context, b *models.BotEntry) error {
	return t.bots.Upsert(ctx, b)
}
