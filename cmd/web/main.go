package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"countrystats/internal/config"
	"countrystats/internal/controller"
	handlers "countrystats/internal/http/handler"
	"countrystats/internal/http/middleware"
	"countrystats/internal/logger"
	"countrystats/internal/otel"
	"countrystats/internal/render"
	"countrystats/internal/restcountries"
)

// @title Country Statistics API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logg *zap.Logger) error {
	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, logg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	upstreamMetrics, err := restcountries.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register upstream metrics: %w", err)
	}

	// Upstream client, renderer and the trigger controller
	client := restcountries.New(cfg.Countries.BaseURL,
		restcountries.WithTimeout(cfg.Countries.Timeout()),
		restcountries.WithMetrics(upstreamMetrics),
		restcountries.WithLogger(logg.Named("restcountries")),
	)
	renderer, err := render.New(cfg.Locale)
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	ctrl := controller.New(client, renderer, logg.Named("controller"))

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(logg.Named("http")))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, ctrl, renderer, reg)

	app.Get("/swagger/*", handlers.SwaggerUI(cfg.AppHost))

	addr := ":" + cfg.Port
	shutdownBudget := time.Duration(cfg.ShutdownTimeoutSec) * time.Second

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logg.Info("server starting", zap.String("addr", addr), zap.String("upstream", cfg.Countries.BaseURL))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownBudget)
		defer cancel()

		return errors.Join(
			app.ShutdownWithContext(sctx),
			shutdownTracing(sctx),
		)
	})

	return g.Wait()
}
