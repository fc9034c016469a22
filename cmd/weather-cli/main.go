package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/vlysenko/weather-cli/internal/api/http"
	"github.com/vlysenko/weather-cli/internal/cache"
	"github.com/vlysenko/weather-cli/internal/config"
	"github.com/vlysenko/weather-cli/internal/logging"
	"github.com/vlysenko/weather-cli/internal/scheduler"
	"github.com/vlysenko/weather-cli/internal/store"
	"github.com/vlysenko/weather-cli/internal/weather"
	"github.com/vlysenko/weather-cli/internal/weather/providers"
)

var validate = validator.New()

// options is the validated CLI surface for a one-shot query.
type options struct {
	City  string `validate:"required"`
	Units string `validate:"oneof=metric imperial"`

	MockPath  string
	Save      bool
	CachePath string
}

func main() {
	units := flag.String("units", "metric", "temperature units: metric or imperial")
	mock := flag.String("mock", "", "path to a mock JSON file used instead of the live API")
	save := flag.Bool("save", false, "save the raw provider response to the cache file")
	cachePath := flag.String("cache", cache.DefaultPath, "cache file path used with -save")
	serve := flag.Bool("serve", false, "run as an HTTP service instead of a one-shot query")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)

	if *serve {
		if err := runServe(cfg, log); err != nil {
			log.Error("serve failed", "err", err)
			os.Exit(1)
		}
		return
	}

	opts := options{
		City:      flag.Arg(0),
		Units:     *units,
		MockPath:  *mock,
		Save:      *save,
		CachePath: *cachePath,
	}
	if err := validate.Struct(opts); err != nil {
		flag.Usage()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := runQuery(cfg, log, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runQuery executes the one-shot pipeline: fetch, normalize, optionally
// cache, print.
func runQuery(cfg *config.AppConfig, log *slog.Logger, opts options) error {
	u, err := weather.ParseUnits(opts.Units)
	if err != nil {
		return err
	}

	resolver := weather.NewResolver(newProvider(cfg, opts.MockPath), log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	defer cancel()

	report, err := resolver.Resolve(ctx, opts.City, u)
	if err != nil {
		return err
	}

	if opts.Save {
		if err := cache.Write(report.Raw, opts.CachePath); err != nil {
			return err
		}
		fmt.Printf("Saved to %s\n", opts.CachePath)
	}

	fmt.Println(weather.Format(report))
	return nil
}

// runServe starts the HTTP service with the snapshot store and the refresh
// scheduler, then blocks until SIGINT/SIGTERM.
func runServe(cfg *config.AppConfig, log *slog.Logger) error {
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	resolver := weather.NewResolver(providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey), log)
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	service := weather.NewService(resolver, memStore, log)

	sched := scheduler.New(cfg.WatchCities, cfg.RefreshInterval, service, log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-cli",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cli",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

// newProvider picks the document source for a one-shot query.
func newProvider(cfg *config.AppConfig, mockPath string) weather.Provider {
	if mockPath != "" {
		return providers.NewMockProvider(mockPath)
	}
	return providers.NewWeatherAPIProvider(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.WeatherAPIKey)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: weather-cli [flags] CITY

Fetch current weather for a city from WeatherAPI.com or a local mock file.

Examples:
  weather-cli Berlin
  weather-cli -units imperial "New York"
  weather-cli -mock mocks/sunny_berlin.json Tokyo
  weather-cli -save London
  weather-cli -serve

Flags:
`)
	flag.PrintDefaults()
}
