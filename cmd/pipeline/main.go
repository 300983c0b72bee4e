package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fplarchive/pipeline/internal/app"
	"github.com/fplarchive/pipeline/internal/config"
	"github.com/fplarchive/pipeline/internal/observability"
	"github.com/fplarchive/pipeline/internal/platform/logging"
	"github.com/fplarchive/pipeline/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)

	code := run(cfg, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg config.Config, logger *logging.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		return 1
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	result, err := application.Pipeline.Run(runCtx, usecase.RunParams{
		SeasonID:   cfg.SeasonID,
		SeasonName: cfg.SeasonName,
	})
	if err != nil {
		logger.ErrorContext(runCtx, "ingestion run failed", "error", err)
		return 1
	}

	logger.InfoContext(runCtx, "ingestion run succeeded",
		"season_id", result.SeasonID,
		"gameweek_id", result.CurrentGameweekID,
		"players_requested", result.PlayersRequested,
		"players_failed", result.PlayersFailed,
	)
	return 0
}
