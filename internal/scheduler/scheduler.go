// Package scheduler runs periodic maintenance jobs such as cache cleanup.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job represents a scheduled task
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	log     *zap.Logger
	timeout time.Duration
}

func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs:    make(map[string]cron.EntryID),
		log:     logger.Named("scheduler"),
		timeout: 5 * time.Minute,
	}
}

// AddJob registers job under a standard cron spec or a descriptor like "@every 15m".
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() { _ = s.run(name, job) })
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	s.jobs[name] = entryID
	s.log.Info("job added", zap.String("job", name), zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) run(name string, job Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		return err
	}
	s.log.Debug("job completed", zap.String("job", name), zap.Duration("took", time.Since(start)))
	return nil
}

// RunNow executes a registered-style job synchronously.
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// NextRun reports when the named job fires next.
func (s *Scheduler) NextRun(name string) (time.Time, bool) {
	id, ok := s.jobs[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Purger is the cache capability the cleanup job needs.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// CleanupJob deletes expired cache entries and reports how many went.
func CleanupJob(p Purger, now func() time.Time, onPurged func(int64)) Job {
	return func(ctx context.Context) error {
		n, err := p.PurgeExpired(ctx, now())
		if err != nil {
			return fmt.Errorf("purge expired cache: %w", err)
		}
		if onPurged != nil {
			onPurged(n)
		}
		return nil
	}
}
