// Package scheduler runs the crawl on a cron schedule and tracks the outcome
// of the most recent run for health reporting.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/fightcrawl/internal/logger"
)

var (
	// ErrNoSchedule is returned by Start before Schedule has been called.
	ErrNoSchedule = errors.New("no schedule configured")
	// ErrRunInProgress is returned by RunOnce while another run is in flight.
	ErrRunInProgress = errors.New("crawl already in progress")
)

// RunFunc performs one crawl.
type RunFunc func(ctx context.Context) error

// Status describes the scheduler and its latest run.
type Status struct {
	Schedule   string    `json:"schedule"`
	Running    bool      `json:"running"`
	Runs       int64     `json:"runs"`
	LastStart  time.Time `json:"last_start,omitzero"`
	LastFinish time.Time `json:"last_finish,omitzero"`
	LastError  string    `json:"last_error,omitempty"`
	NextRun    time.Time `json:"next_run,omitzero"`
}

// Scheduler triggers a RunFunc on a cron schedule. Overlapping runs are
// skipped, so at most one crawl is in flight.
type Scheduler struct {
	logger     logger.Interface
	run        RunFunc
	cron       *cron.Cron
	cronParser cron.Parser

	ctx    context.Context
	cancel context.CancelFunc

	// inFlight is held for the duration of a run.
	inFlight sync.Mutex

	mu       sync.RWMutex
	spec     string
	schedule cron.Schedule
	entryID  cron.EntryID
	status   Status
}

// New creates a scheduler for run. Call Schedule before Start.
func New(log logger.Interface, run RunFunc) *Scheduler {
	log = log.WithComponent("scheduler")
	cronLog := cronLogger{log: log}
	// Standard 5-field cron parser (minute hour day month weekday) plus descriptors like @daily
	cronParser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger:     log,
		run:        run,
		cron:       c,
		cronParser: cronParser,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Schedule validates spec and registers the crawl with it.
func (s *Scheduler) Schedule(spec string) error {
	schedule, err := s.cronParser.Parse(spec)
	if err != nil {
		return fmt.Errorf("failed to parse cron expression %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}
	s.entryID = s.cron.Schedule(schedule, cron.FuncJob(func() {
		runErr := s.RunOnce(s.ctx)
		switch {
		case errors.Is(runErr, ErrRunInProgress):
			s.logger.Info("Skipping scheduled crawl, previous run still in progress")
		case runErr != nil:
			s.logger.Error("Scheduled crawl failed", "error", runErr)
		}
	}))
	s.spec = spec
	s.schedule = schedule
	return nil
}

// Start starts the cron loop. Runs are cancelled when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.RLock()
	spec := s.spec
	s.mu.RUnlock()
	if spec == "" {
		return ErrNoSchedule
	}

	go func() {
		select {
		case <-ctx.Done():
			s.cancel()
		case <-s.ctx.Done():
		}
	}()

	s.cron.Start()
	s.logger.Info("Scheduler started", "schedule", spec, "next_run", s.Status().NextRun)
	return nil
}

// Stop stops scheduling, cancels an in-flight run and waits for it to return.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
}

// RunOnce runs the crawl now and records the outcome. It returns
// ErrRunInProgress without running when another run has not finished.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if !s.inFlight.TryLock() {
		return ErrRunInProgress
	}
	defer s.inFlight.Unlock()

	s.mu.Lock()
	s.status.Running = true
	s.status.LastStart = time.Now()
	s.status.Runs++
	s.mu.Unlock()

	err := s.run(ctx)

	s.mu.Lock()
	s.status.Running = false
	s.status.LastFinish = time.Now()
	s.status.LastError = ""
	if err != nil {
		s.status.LastError = err.Error()
	}
	s.mu.Unlock()
	return err
}

// Status returns a snapshot of the scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	st.Schedule = s.spec
	if s.schedule != nil {
		st.NextRun = s.schedule.Next(time.Now())
	}
	return st
}

// cronLogger adapts logger.Interface to cron.Logger.
type cronLogger struct {
	log logger.Interface
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
