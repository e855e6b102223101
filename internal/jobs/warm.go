package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Warmer refreshes one list so public reads hit a populated cache.
type Warmer struct {
	Name string
	Fn   func(context.Context) error
}

type WarmJob struct {
	warmers  []Warmer
	interval time.Duration
	done     chan struct{}
}

func NewWarmJob(interval time.Duration, warmers ...Warmer) *WarmJob {
	return &WarmJob{
		warmers:  warmers,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *WarmJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cache warm job started")
}

func (j *WarmJob) Stop() {
	close(j.done)
	log.Info().Msg("cache warm job stopped")
}

func (j *WarmJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.warm()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.warm()
		}
	}
}

func (j *WarmJob) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range j.warmers {
		if err := w.Fn(ctx); err != nil {
			log.Error().Err(err).Msgf("failed to warm %s", w.Name)
		}
	}
}
