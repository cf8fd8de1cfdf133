package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/littleyear/iv-engine/internal/api"
	"github.com/littleyear/iv-engine/internal/config"
	"github.com/littleyear/iv-engine/internal/database"
	"github.com/littleyear/iv-engine/internal/events"
	"github.com/littleyear/iv-engine/internal/media"
	"github.com/littleyear/iv-engine/internal/spotify"
	"github.com/littleyear/iv-engine/internal/transcribe"
)

var version = "dev"

func main() {
	startTime := time.Now()

	var overrides config.Overrides
	flag.StringVar(&overrides.EnvFile, "env-file", "", "path to .env file")
	flag.StringVar(&overrides.HTTPAddr, "addr", "", "http listen address")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level")
	flag.StringVar(&overrides.DatabaseURL, "database-url", "", "postgres connection url")
	flag.StringVar(&overrides.MediaDir, "media-dir", "", "local media directory")
	flag.Parse()

	cfg, err := config.Load(overrides)
	if err != nil {
		early := zerolog.New(os.Stderr).With().Timestamp().Logger()
		early.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(level)
	log.Info().Str("version", version).Msg("iv-engine starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbLog := log.With().Str("component", "database").Logger()
	db, err := database.Connect(ctx, cfg.DatabaseURL, dbLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	mediaLog := log.With().Str("component", "media").Logger()
	store, err := media.New(cfg.S3, cfg.MediaDir, mediaLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media store")
	}
	log.Info().Str("backend", store.Type()).Msg("media store ready")

	bus := events.NewBus(256)

	whisper := transcribe.NewWhisperClient(cfg.WhisperURL, cfg.WhisperModel, store, cfg.WhisperTimeout)
	orch := transcribe.NewOrchestrator(db, whisper, bus.Publish,
		log.With().Str("component", "transcribe").Logger())

	sp := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret,
		log.With().Str("component", "spotify").Logger())

	httpLog := log.With().Str("component", "http").Logger()
	srv := api.NewServer(cfg, db, store, orch, bus, sp, version, startTime, httpLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("iv-engine stopped")
}
