package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one named unit of scheduled work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs a list of jobs on a fixed interval until its context is
// cancelled. Jobs run sequentially; one failing job does not stop the rest.
type Scheduler struct {
	name     string
	interval time.Duration
	jobs     []Job
	mu       sync.RWMutex
}

func NewScheduler(name string, interval time.Duration) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
	}
}

func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("scheduler running", "scheduler", s.name, "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runJobs(ctx)
		case <-ctx.Done():
			slog.Info("scheduler shutting down", "scheduler", s.name)
			return
		}
	}
}

func (s *Scheduler) runJobs(ctx context.Context) {
	s.mu.RLock()
	jobs := make([]Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	for _, job := range jobs {
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			slog.Error("scheduled job failed", "scheduler", s.name, "job", job.Name, "error", err)
			continue
		}
		slog.Info("scheduled job completed", "scheduler", s.name, "job", job.Name, "duration", time.Since(start))
	}
}
