// Package docsweep periodically removes stored document files that no
// metadata row references.
package docsweep

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/infrastructure/metrics"
)

type Sweeper interface {
	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	grace    time.Duration
	timeout  time.Duration
}

func NewScheduler(s Sweeper, schedule string, grace time.Duration) *Scheduler {
	cronLogger := cron.PrintfLogger(log.StandardLogger())
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger))),
		sweeper:  s,
		schedule: schedule,
		grace:    grace,
		timeout:  5 * time.Minute,
	}
}

// Start registers the sweep job and starts the scheduler. An invalid
// schedule is returned and nothing is started.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("schedule document sweep %q: %w", s.schedule, err)
	}
	log.WithFields(log.Fields{"schedule": s.schedule, "grace": s.grace}).Info("docsweep: scheduled")
	s.cron.Start()
	return nil
}

// Stop stops scheduling; the returned context is done once a running sweep
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.sweeper.SweepOrphans(ctx, s.grace)
	if err != nil {
		log.WithError(err).Warn("docsweep: sweep failed")
		return
	}
	metrics.DocumentsSwept(n)
	log.WithFields(log.Fields{"removed": n, "took": time.Since(start)}).Debug("docsweep: sweep finished")
}
