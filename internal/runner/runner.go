package runner

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cawlanceharon/movie-scraper/internal/aggregator"
)

// ErrStopped is returned by RunNow once the runner loop has exited.
var ErrStopped = errors.New("runner stopped")

type Aggregator interface {
	Run(ctx context.Context) (aggregator.RunReport, error)
}

type result struct {
	report aggregator.RunReport
	err    error
}

type request struct {
	reason string
	done   chan result // nil for fire-and-forget triggers
}

// Runner executes aggregator runs one at a time from a single goroutine.
// At most one request waits behind the running one; extra scheduled
// triggers are dropped.
type Runner struct {
	agg      Aggregator
	requests chan request
	stopped  chan struct{}
	log      zerolog.Logger
}

func New(agg Aggregator, log zerolog.Logger) *Runner {
	return &Runner{
		agg:      agg,
		requests: make(chan request, 1),
		stopped:  make(chan struct{}),
		log:      log.With().Str("component", "runner").Logger(),
	}
}

// Start consumes run requests until ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	defer close(r.stopped)

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("runner stopped")
			return
		case req := <-r.requests:
			if err := ctx.Err(); err != nil {
				r.reject(req, err)
				r.log.Info().Msg("runner stopped")
				return
			}
			r.execute(ctx, req)
		}
	}
}

func (r *Runner) execute(ctx context.Context, req request) {
	log := r.log.With().Str("reason", req.reason).Logger()
	log.Debug().Msg("run starting")

	report, err := r.agg.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("run_id", report.RunID).Msg("run failed")
	}

	if req.done != nil {
		req.done <- result{report: report, err: err}
	}
}

func (r *Runner) reject(req request, err error) {
	r.log.Info().Str("reason", req.reason).Msg("run skipped, runner stopping")
	if req.done != nil {
		req.done <- result{err: err}
	}
}

// Trigger asks for a run without waiting. It returns false when a run is
// already queued.
func (r *Runner) Trigger(reason string) bool {
	select {
	case r.requests <- request{reason: reason}:
		return true
	default:
		r.log.Info().Str("reason", reason).Msg("run already pending, trigger dropped")
		return false
	}
}

// RunNow queues a run and waits for it to finish.
func (r *Runner) RunNow(ctx context.Context, reason string) (aggregator.RunReport, error) {
	req := request{reason: reason, done: make(chan result, 1)}

	select {
	case r.requests <- req:
	case <-r.stopped:
		return aggregator.RunReport{}, ErrStopped
	case <-ctx.Done():
		return aggregator.RunReport{}, ctx.Err()
	}

	select {
	case res := <-req.done:
		return res.report, res.err
	case <-r.stopped:
		// the loop may have finished our run right before exiting
		select {
		case res := <-req.done:
			return res.report, res.err
		default:
			return aggregator.RunReport{}, ErrStopped
		}
	case <-ctx.Done():
		return aggregator.RunReport{}, ctx.Err()
	}
}
