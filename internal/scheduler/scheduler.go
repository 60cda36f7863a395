package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Trigger receives "run now" signals. It must not block.
type Trigger interface {
	Trigger(reason string) bool
}

type Scheduler struct {
	scheduler gocron.Scheduler
	trigger   Trigger
	interval  time.Duration
	log       zerolog.Logger
}

func New(trigger Trigger, interval time.Duration, log zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if interval <= 0 {
		interval = time.Hour
	}

	return &Scheduler{
		scheduler: s,
		trigger:   trigger,
		interval:  interval,
		log:       log.With().Str("component", "scheduler").Logger(),
	}, nil
}

// Start fires one trigger immediately and then one per interval.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			s.log.Debug().Msg("scheduled scrape due")
			s.trigger.Trigger("schedule")
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("scrape-movie-scores"),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")

	return nil
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		s.log.Error().Err(err).Msg("scheduler shutdown error")
		return
	}
	s.log.Info().Msg("scheduler stopped")
}
