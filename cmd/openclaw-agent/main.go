package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yungtweek/openclaw-agent/internal/api"
	"github.com/yungtweek/openclaw-agent/internal/config"
	"github.com/yungtweek/openclaw-agent/internal/dataset"
	"github.com/yungtweek/openclaw-agent/internal/logger"
	"github.com/yungtweek/openclaw-agent/internal/proxy"
	"github.com/yungtweek/openclaw-agent/internal/upstream"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	logger.Init(cfg.Profile)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatalw("[agent] invalid configuration", "err", err)
	}

	data, err := dataset.Load(cfg.TasksFile, cfg.EventsFile)
	if err != nil {
		logger.Log.Fatalw("[agent] dataset load failed", "err", err)
	}

	logger.Log.Infow(
		"starting agent",
		"port", cfg.Port,
		"profile", cfg.Profile,
		"useMock", cfg.UseMock,
		"upstreamModel", cfg.UpstreamModel,
		"upstreamTimeout", cfg.UpstreamTimeout.String(),
		"tasks", data.TaskCount(),
		"eventSequences", data.SequenceCount(),
		"streamDelayMinMs", cfg.StreamDelayMinMs,
		"streamDelayMaxMs", cfg.StreamDelayMaxMs,
	)

	svc := proxy.New(upstream.NewClient(cfg), data)
	srv := api.NewServer(cfg, svc, data)

	// Handle SIGINT/SIGTERM for a clean shutdown in local dev / docker.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Log.Info("[agent] shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Errorw("[agent] shutdown error", "err", err)
		}
	}()

	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalw("[agent] server error", "err", err)
	}
	logger.Log.Info("[agent] stopped")
}
