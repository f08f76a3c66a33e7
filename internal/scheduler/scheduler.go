// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs such as the catalog
// refresh on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTimeout bounds a single job run.
const DefaultTimeout = 2 * time.Minute

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ErrInvalidJob is returned for a job without a name or run function.
var ErrInvalidJob = errors.New("scheduler: job needs a source, a name and a run function")

// Job is one scheduled unit of work.
type Job struct {
	Source      string
	Name        string
	Description string
	Schedule    string
	Run         func(ctx context.Context) error
	// Manual allows TriggerNow.
	Manual bool
}

// Scheduler owns the cron instance and the job registry.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
	timeout  time.Duration
}

// New creates a new scheduler. Panicking jobs are recovered and logged.
func New(logger *slog.Logger) *Scheduler {
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cronLogger{logger})),
	)
	return &Scheduler{
		cron:     c,
		registry: newRegistry(logger),
		logger:   logger,
		timeout:  DefaultTimeout,
	}
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Add validates the schedule and registers the job.
func (s *Scheduler) Add(job Job) error {
	if job.Source == "" || job.Name == "" || job.Run == nil {
		return ErrInvalidJob
	}
	if _, err := parser.Parse(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", job.Schedule, err)
	}

	run := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		err := job.Run(ctx)
		if err != nil {
			s.logger.Error("scheduled job failed", "source", job.Source, "name", job.Name, "error", err)
			return err
		}
		s.logger.Debug("scheduled job finished", "source", job.Source, "name", job.Name, "duration", time.Since(start))
		return nil
	}
	jobFunc := func() { _ = run() }

	entryID, err := s.cron.AddFunc(job.Schedule, jobFunc)
	if err != nil {
		return fmt.Errorf("adding job %s:%s: %w", job.Source, job.Name, err)
	}

	var trigger func() error
	if job.Manual {
		trigger = run
	}
	s.registry.register(job, s.cron, entryID, jobFunc, trigger)
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
