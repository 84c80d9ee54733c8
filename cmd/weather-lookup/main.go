package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/telemetry"
	"github.com/i474232898/weather-lookup/internal/timezone"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing("weather-lookup", cfg.ZipkinEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	tzFinder, err := timezone.NewFinder()
	if err != nil {
		log.Fatalf("failed to load timezone data: %v", err)
	}

	var geocoder weather.Geocoder = providers.NewNominatimGeocoder(httpClient, cfg.NominatimBaseURL, cfg.UserAgent)
	if cfg.GoogleGeocodingAPIKey != "" {
		log.Printf("INFO: using Google geocoding")
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleGeocodingAPIKey, cfg.GoogleGeocodingURL, cfg.HTTPTimeout)
	}

	resolver := weather.NewResolver(
		geocoder,
		providers.NewIPInfoLocator(httpClient, cfg.IPInfoBaseURL),
		tzFinder,
	)
	service := weather.NewService(
		providers.NewOpenMeteoProvider(httpClient, cfg.OpenMeteoBaseURL),
		providers.NewSunriseSunsetProvider(httpClient, cfg.SunriseSunsetBaseURL),
		providers.NewWttrProvider(httpClient, cfg.WttrBaseURL),
	)

	// Optional job logging current conditions for watched places.
	sched := scheduler.New(cfg.WatchPlaces, cfg.WatchInterval, resolver, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.HTTPTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, resolver, service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("error flushing traces: %v", err)
	}
}
