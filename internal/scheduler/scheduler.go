// Package scheduler runs the nightly snapshot recompute on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jvanelst/Investment-Dashboard-Backend/internal/service"
)

// recomputeTimeout bounds one full nightly recompute run.
const recomputeTimeout = 30 * time.Minute

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron            *cron.Cron
	snapshotService *service.SnapshotService
}

// New creates a Scheduler that recomputes all snapshot series on the given
// cron expression (standard 5-field format).
func New(snapshotService *service.SnapshotService, spec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		snapshotService: snapshotService,
	}

	if _, err := s.cron.AddFunc(spec, s.runRecompute); err != nil {
		return nil, fmt.Errorf("invalid recompute schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron runner and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runRecompute() {
	ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
	defer cancel()

	start := time.Now()
	if err := s.snapshotService.RecomputeAll(ctx); err != nil {
		log.Printf("scheduled recompute finished with errors after %s: %v", time.Since(start), err)
		return
	}
	log.Printf("scheduled recompute finished in %s", time.Since(start))
}
