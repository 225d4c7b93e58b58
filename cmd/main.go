package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	apiclient "chat-transcription-tracker/internal/api/client"
	"chat-transcription-tracker/internal/app"
	"chat-transcription-tracker/internal/chat"
	"chat-transcription-tracker/internal/config"
	"chat-transcription-tracker/internal/events"
	httpapi "chat-transcription-tracker/internal/http"
	"chat-transcription-tracker/internal/observability"
	"chat-transcription-tracker/internal/status"
	"chat-transcription-tracker/internal/track"
)

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("application start failed")
	}
	defer application.Shutdown()

	// Kafka lifecycle event publisher (log-only when disabled)
	publisher := events.New(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.Topic,
		Principal: cfg.Kafka.Principal,
	})
	defer publisher.Close()

	backend := apiclient.New(cfg.ChatAPI)
	store := chat.NewStore()
	sink := status.NewSink()
	active := chat.NewActiveChat()

	tracker := track.NewTracker(store, backend, active, backend, publisher, sink, cfg)

	// baseCtx bounds all tracking tasks; cancelled on shutdown so running
	// poll loops stop before their next wait.
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := httpapi.NewRouter(baseCtx, tracker, store, sink, active, cfg.Workspace.DefaultSkillID)
	server := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	obsServer := observability.NewServer(":"+cfg.Observability.MetricsPort,
		observability.ReadyCheck{Name: "chat-api", Probe: func() error {
			if cfg.ChatAPI.BaseURL == "" {
				return errors.New("chat API base URL not configured")
			}
			return nil
		}},
		observability.ReadyCheck{Name: "kafka", Probe: publisher.Ready},
	)
	obsServer.Start()

	go func() {
		log.Info().Str("port", cfg.Service.HTTPPort).Msg("Chat transcription tracker listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("observability shutdown failed")
	}
}
