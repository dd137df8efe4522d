package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler runs the analysis cycle on a fixed interval until its
// context is cancelled or Stop is called.
type Scheduler struct {
	service  *ReplenishmentService
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(service *ReplenishmentService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticker loop in a goroutine and returns
// immediately. The first cycle runs after one full interval.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("Analysis scheduler started")

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				recs, err := s.service.RunAnalysisCycle(ctx)
				if err != nil {
					log.Error().Err(err).Msg("Scheduled analysis cycle failed")
					continue
				}
				log.Info().Int("recommendations", len(recs)).Msg("Scheduled analysis cycle completed")
			case <-ctx.Done():
				log.Info().Msg("Analysis scheduler stopping: context cancelled")
				return
			case <-s.stop:
				log.Info().Msg("Analysis scheduler stopping")
				return
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight cycle, if any, to
// finish.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}
