package handler

import (
	"time"

	_ "github.com/rhysv96/discord-r9k/internal/metrics" // registers the r9k collectors
	"github.com/rhysv96/discord-r9k/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewApp builds the operational HTTP app: liveness, readiness and metrics.
func NewApp(store Pinger, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.Logger(log))

	healthH := NewHealthHandler(store)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}
