package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/api"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/bots"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/config"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/database"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/device"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/logger"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/notify"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/poller"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/repositories"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/services"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/storeclient"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	bootstrapTimeout = 10 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	godotenv.Load()

	logg, err := logger.New(logger.DefaultConfig(), "staff-dashboard")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logger")
	}

	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		logg.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storeclient.New(cfg.StoreURL, &http.Client{Timeout: cfg.RequestTimeout})
	outbox := services.NewOutbox(cfg.OutboxSize, cfg.RequestTimeout, logg)

	svcCfg := services.ActivityServiceConfig{
		Outbox: outbox,
		Logs:   store,
		Staff:  store,
		Logger: logg,
	}

	if cfg.MQTTBroker != "" {
		clientID := "staff-dashboard-" + uuid.NewString()
		publisher, err := notify.NewPublisher(cfg.MQTTBroker, clientID, cfg.MQTTTopic, logg)
		if err != nil {
			logg.Warn().Err(err).Msg("MQTT disabled")
		} else {
			defer publisher.Close()
			svcCfg.Publisher = publisher
		}
	}

	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL, logg)
		if err != nil {
			logg.Warn().Err(err).Msg("Live presence disabled")
		} else {
			defer redisClient.Close()
			svcCfg.Presence = repositories.NewRedisPresenceRepository(redisClient)
		}
	}

	registry := bots.NewRegistry(store, outbox, logg)
	orch := poller.New(poller.Config{
		Device:         device.NewClient(cfg.DeviceBaseURL, &http.Client{Timeout: cfg.RequestTimeout}),
		Bots:           registry,
		Sink:           services.NewActivityService(svcCfg),
		PollInterval:   cfg.PollInterval,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logg,
	})

	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	orch.Bootstrap(bootCtx, store)
	cancel()

	handler := api.NewDashboardHandler(orch, logg)
	server := newServer(cfg.DashboardPort, api.NewRouter(handler.Routes()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return orch.Start(gctx) })
	g.Go(func() error { return outbox.Run(gctx) })
	g.Go(func() error {
		logg.Info().Str("port", cfg.DashboardPort).Str("device", cfg.DeviceBaseURL).Msg("Starting dashboard")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info().Msg("Shutting down dashboard...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logg.Error().Err(err).Msg("Dashboard error")
	}

	// Flush store writes queued during the last ticks.
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	outbox.Drain(drainCtx)
	cancel()

	logg.Info().Msg("Dashboard stopped gracefully")
}

func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
