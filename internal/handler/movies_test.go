package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cawlanceharon/movie-scraper/internal/aggregator"
	"github.com/cawlanceharon/movie-scraper/internal/store"
	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

type fakeRunner struct {
	report aggregator.RunReport
	err    error
	calls  int
	onRun  func()
}

func (f *fakeRunner) RunNow(_ context.Context, reason string) (aggregator.RunReport, error) {
	f.calls++
	if f.onRun != nil {
		f.onRun()
	}
	return f.report, f.err
}

type brokenReader struct{}

func (brokenReader) Read() (models.Snapshot, error) {
	return nil, errors.New("decode snapshot: unexpected EOF")
}

func newApp(reader SnapshotReader, runner ScrapeRunner) *fiber.App {
	app := fiber.New()
	SetupRoutes(app, NewMovieHandler(reader, runner, zerolog.Nop()))
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestScores_NoSnapshotYet(t *testing.T) {
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "movie-scores.json"), zerolog.Nop())
	app := newApp(snapshots, &fakeRunner{})

	status, body := doGet(t, app, "/movies/scores")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"message": noDataMessage}, body)
}

func TestScores_ReturnsSnapshot(t *testing.T) {
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "movie-scores.json"), zerolog.Nop())
	require.NoError(t, snapshots.Write(models.Snapshot{
		"Toy Story": {IMDb: models.Found("8.3/10"), MetaCritic: models.Found("96/100")},
	}))
	app := newApp(snapshots, &fakeRunner{})

	status, body := doGet(t, app, "/movies/scores")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{
		"Toy Story": map[string]any{
			"imdb":           "8.3/10",
			"rottenTomatoes": nil,
			"metaCritic":     "96/100",
		},
	}, body)
}

func TestScores_ReadError(t *testing.T) {
	app := newApp(brokenReader{}, &fakeRunner{})

	status, body := doGet(t, app, "/movies/scores")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed to read scores", body["error"])
}

func TestScrape_RunsAndConfirms(t *testing.T) {
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "movie-scores.json"), zerolog.Nop())
	runner := &fakeRunner{
		report: aggregator.RunReport{RunID: "run-1", Titles: 5, Found: 12, Absent: 3, Duration: 1500 * time.Millisecond},
		onRun: func() {
			_ = snapshots.Write(models.Snapshot{"Casper": {}})
		},
	}
	app := newApp(snapshots, runner)

	status, body := doGet(t, app, "/movies/scrape")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, scrapeCompleteMessage, body["message"])
	assert.Equal(t, "run-1", body["run_id"])
	assert.EqualValues(t, 12, body["found"])
	assert.EqualValues(t, 1500, body["duration_ms"])

	// the snapshot is readable as soon as the response arrives
	status, body = doGet(t, app, "/movies/scores")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Casper")
}

func TestScrape_StoreFailure(t *testing.T) {
	app := newApp(brokenReader{}, &fakeRunner{err: errors.New("write snapshot: permission denied")})

	status, body := doGet(t, app, "/movies/scrape")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body["error"], "permission denied")
}

func TestHealth(t *testing.T) {
	app := newApp(brokenReader{}, &fakeRunner{})

	status, body := doGet(t, app, "/health")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zerolog.Nop())})
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("lookup: %w", fiber.ErrNotFound)
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	status, body := doGet(t, app, "/wrapped")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "lookup: Not Found", body["error"])

	status, body = doGet(t, app, "/plain")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", body["error"])

	status, _ = doGet(t, app, "/missing")
	assert.Equal(t, http.StatusNotFound, status)
}
