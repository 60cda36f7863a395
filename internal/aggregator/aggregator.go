package aggregator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cawlanceharon/movie-scraper/internal/scraper"
	"github.com/cawlanceharon/movie-scraper/pkg/models"
)

// SnapshotWriter persists a finished snapshot, replacing the previous one.
type SnapshotWriter interface {
	Write(snapshot models.Snapshot) error
}

// RunReport summarises one completed run.
type RunReport struct {
	RunID    string
	Titles   int
	Found    int
	Absent   int
	Duration time.Duration
}

type Aggregator struct {
	titles      []models.Title
	sources     []scraper.Source
	store       SnapshotWriter
	concurrency int
	log         zerolog.Logger
}

func New(titles []models.Title, sources []scraper.Source, store SnapshotWriter, concurrency int, log zerolog.Logger) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		titles:      titles,
		sources:     sources,
		store:       store,
		concurrency: concurrency,
		log:         log.With().Str("component", "aggregator").Logger(),
	}
}

// Collect scores every title against every source. Source failures are
// already absent scores at this point, so Collect cannot fail.
func (a *Aggregator) Collect(ctx context.Context) models.Snapshot {
	results := make([]models.MovieScores, len(a.titles))

	var titles errgroup.Group
	titles.SetLimit(a.concurrency)

	for i, title := range a.titles {
		i, title := i, title
		titles.Go(func() error {
			results[i] = a.scoreTitle(ctx, title)
			return nil
		})
	}
	_ = titles.Wait()

	snapshot := make(models.Snapshot, len(a.titles))
	for i, title := range a.titles {
		snapshot[title.Name] = results[i]
	}
	return snapshot
}

func (a *Aggregator) scoreTitle(ctx context.Context, title models.Title) models.MovieScores {
	scores := make([]models.Score, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			scores[i] = src.Score(ctx, title)
			return nil
		})
	}
	_ = g.Wait()

	var record models.MovieScores
	for i, src := range a.sources {
		record = record.With(src.Name(), scores[i])
	}
	return record
}

// Run collects a fresh snapshot and writes it. A store failure fails the
// run, and so does ctx ending mid-run: the partial snapshot is dropped and
// the previous one stays in place.
func (a *Aggregator) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{RunID: uuid.NewString()}
	log := a.log.With().Str("run_id", report.RunID).Logger()
	start := time.Now()

	log.Info().Int("titles", len(a.titles)).Msg("scrape started")

	snapshot := a.Collect(ctx)
	if err := ctx.Err(); err != nil {
		report.Duration = time.Since(start)
		log.Warn().Err(err).Msg("scrape interrupted, snapshot not saved")
		return report, err
	}

	report.Titles = len(snapshot)
	for _, record := range snapshot {
		for _, src := range models.Sources {
			if record.Get(src).IsAbsent() {
				report.Absent++
			} else {
				report.Found++
			}
		}
	}

	if err := a.store.Write(snapshot); err != nil {
		report.Duration = time.Since(start)
		log.Error().Err(err).Msg("failed to save snapshot")
		return report, err
	}

	report.Duration = time.Since(start)
	log.Info().
		Int("found", report.Found).
		Int("absent", report.Absent).
		Dur("duration", report.Duration).
		Msg("scrape completed")

	return report, nil
}
