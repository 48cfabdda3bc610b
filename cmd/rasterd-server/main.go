package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rasterform/rasterd/convert/application"
	"github.com/rasterform/rasterd/convert/engine"
	"github.com/rasterform/rasterd/internal/middleware"
	"github.com/rasterform/rasterd/internal/rest"
	"github.com/rasterform/rasterd/shared/config"
	"github.com/rasterform/rasterd/shared/logging"
	"github.com/rasterform/rasterd/shared/retry"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	closeLogs, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer func() {
		if err := closeLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log output: %v\n", err)
		}
	}()

	native := engine.NewNative()

	// The wasm-backed codecs initialize lazily; warm the engine up front so
	// a broken runtime fails the boot instead of the first request.
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelWarmup()
	if err := retry.Do(warmupCtx, 3, time.Second, native.Probe); err != nil {
		log.Fatal().Err(err).Msg("Image engine is unavailable")
	}

	limits := application.Limits{
		MaxFileSize:  cfg.Limits.MaxFileSize,
		MaxDimension: cfg.Limits.MaxDimension,
	}
	validator := application.NewValidator(limits)
	registry := engine.NewRegistry(engine.NewCanvas(), native)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.MaxMultipartMemory = cfg.Limits.MaxFileSize

	rest.NewApi(router,
		rest.NewConvertHandler(validator, registry, limits, cfg.Convert.DefaultQuality),
		rest.NewFormatsHandler(limits, cfg.Convert.DefaultQuality),
		rest.NewHealthHandler(native, cfg.Convert.TempDir, version),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
