package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cawlanceharon/movie-scraper/internal/aggregator"
	"github.com/cawlanceharon/movie-scraper/internal/config"
	"github.com/cawlanceharon/movie-scraper/internal/fetcher"
	"github.com/cawlanceharon/movie-scraper/internal/handler"
	"github.com/cawlanceharon/movie-scraper/internal/runner"
	"github.com/cawlanceharon/movie-scraper/internal/scheduler"
	"github.com/cawlanceharon/movie-scraper/internal/scraper"
	"github.com/cawlanceharon/movie-scraper/internal/store"
	"github.com/cawlanceharon/movie-scraper/pkg/logger"
	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.IsDev())
	log := logger.Log

	pageFetcher := fetcher.New(fetcher.WithTimeout(cfg.FetchTimeout))
	sources := scraper.NewSources(pageFetcher, scraper.Origins{
		IMDb:           cfg.IMDbURL,
		RottenTomatoes: cfg.RottenTomatoesURL,
		MetaCritic:     cfg.MetaCriticURL,
	}, log)

	snapshots := store.NewSnapshotStore(cfg.DataPath, log)
	agg := aggregator.New(models.DefaultTitles, sources, snapshots, cfg.ScrapeConcurrency, log)
	scrapeRunner := runner.New(agg, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scrapeRunner.Start(ctx)

	sched, err := scheduler.New(scrapeRunner, cfg.ScrapeInterval, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		// a manual scrape holds the request open until the snapshot is saved
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: handler.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New())

	handler.SetupRoutes(app, handler.NewMovieHandler(snapshots, scrapeRunner, log))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("shutting down")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("data_path", cfg.DataPath).
		Dur("interval", cfg.ScrapeInterval).
		Int("titles", len(models.DefaultTitles)).
		Msg("movie scraper started")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
