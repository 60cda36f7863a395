package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cawlanceharon/movie-scraper/internal/aggregator"
	"github.com/cawlanceharon/movie-scraper/internal/store"
	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

const (
	noDataMessage         = "No data found. Please run the scraper first."
	scrapeCompleteMessage = "Scraping completed. Data is saved."
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ScrapeResponse struct {
	Message    string `json:"message"`
	RunID      string `json:"run_id"`
	Titles     int    `json:"titles"`
	Found      int    `json:"found"`
	Absent     int    `json:"absent"`
	DurationMs int64  `json:"duration_ms"`
}

type SnapshotReader interface {
	Read() (models.Snapshot, error)
}

type ScrapeRunner interface {
	RunNow(ctx context.Context, reason string) (aggregator.RunReport, error)
}

type MovieHandler struct {
	snapshots SnapshotReader
	runner    ScrapeRunner
	log       zerolog.Logger
}

func NewMovieHandler(snapshots SnapshotReader, runner ScrapeRunner, log zerolog.Logger) *MovieHandler {
	return &MovieHandler{
		snapshots: snapshots,
		runner:    runner,
		log:       log.With().Str("component", "handler").Logger(),
	}
}

// Scores returns the last saved snapshot.
func (h *MovieHandler) Scores(c *fiber.Ctx) error {
	snapshot, err := h.snapshots.Read()
	if errors.Is(err, store.ErrNoSnapshot) {
		return c.JSON(MessageResponse{Message: noDataMessage})
	}
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to read scores"})
	}

	return c.JSON(snapshot)
}

// Scrape runs the scraper and waits until the snapshot is saved.
func (h *MovieHandler) Scrape(c *fiber.Ctx) error {
	report, err := h.runner.RunNow(c.UserContext(), "manual")
	if err != nil {
		h.log.Error().Err(err).Str("run_id", report.RunID).Msg("manual scrape failed")
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "scrape failed: " + err.Error()})
	}

	return c.JSON(ScrapeResponse{
		Message:    scrapeCompleteMessage,
		RunID:      report.RunID,
		Titles:     report.Titles,
		Found:      report.Found,
		Absent:     report.Absent,
		DurationMs: report.Duration.Milliseconds(),
	})
}

// ErrorHandler answers unhandled errors with ErrorResponse, keeping the
// status of any wrapped fiber.Error.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("request error")
		return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
	}
}

func SetupRoutes(app *fiber.App, h *MovieHandler) {
	movies := app.Group("/movies")
	movies.Get("/scores", h.Scores)
	movies.Get("/scrape", h.Scrape)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
