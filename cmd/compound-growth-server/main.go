package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/compound-growth/internal/cache"
	"github.com/iwvelando/compound-growth/internal/logging"
	"github.com/iwvelando/compound-growth/internal/server"
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	maxUpload := flag.String("max-upload-size", "", "maximum upload size override (e.g. 512K, 2M)")
	maxHorizon := flag.Float64("max-horizon-years", 0, "longest simulation horizon the API accepts, in years")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if err := cfg.ApplyOverrides(*address, *maxUpload, *maxHorizon); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid command line override\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	repo, err := cache.New(cfg.Cache, logger)
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		if err := cache.Close(repo); err != nil {
			logger.Warn("failed to close cache",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	runner := simulate.NewRunner(logger, repo, cfg.Cache.KeyPrefix)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, runner, cfg.UploadSizeBytes(), cfg.MaxHorizonYears, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("cache", cfg.Cache.Backend),
			zap.Float64("maxHorizonYears", cfg.MaxHorizonYears),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	case sig := <-quit:
		logger.Info("shutting down",
			zap.String("op", "main"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
