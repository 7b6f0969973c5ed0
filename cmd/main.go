package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	httpapi "github.com/talentdesk/interview-signaling/internal/api/http"
	"github.com/talentdesk/interview-signaling/internal/config"
	"github.com/talentdesk/interview-signaling/internal/registry"
	"github.com/talentdesk/interview-signaling/internal/service"
	transportws "github.com/talentdesk/interview-signaling/internal/transport/ws"
	"github.com/talentdesk/interview-signaling/lib/logger/sl"
	"github.com/talentdesk/interview-signaling/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	rooms := registry.New()
	hub := transportws.NewHub(cfg.Signaling.SendBuffer, log)

	signalingService := service.NewSignalingService(rooms, hub, log, cfg.Signaling.DefaultMaxParticipants)
	hub.OnDisconnect(signalingService.HandleDisconnect)

	signalingController := httpapi.NewSignalingController(signalingService, hub, cfg.WebRTC.STUNServers)
	router := httpapi.SetupRouter(signalingController, cfg.CORS.AllowedOrigins)

	log.Info("starting signaling server", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
