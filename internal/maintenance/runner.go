// Package maintenance runs the scheduled session-title renumbering pass.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/team-ledger/internal/logging"
	"github.com/preston-bernstein/team-ledger/internal/metrics"
)

const defaultSchedule = "@daily"

// Renumberer retitles the training calendar.
type Renumberer interface {
	RenumberTitles(ctx context.Context) (int, error)
}

// Runner renumbers titles once at start and then on a cron schedule.
type Runner struct {
	job      Renumberer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	schedule string
	cron     *cron.Cron
	now      func() time.Time

	// running tracks the initial pass; cron tracks the scheduled ones.
	running  sync.WaitGroup
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the maintenance job.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastChanged         int
}

// IsReady reports whether the job has succeeded at least once and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Runner. An empty schedule defaults to @daily; an invalid one is an error.
func New(job Renumberer, logger *slog.Logger, recorder *metrics.Recorder, schedule string) (*Runner, error) {
	if schedule == "" {
		schedule = defaultSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("parse maintenance schedule %q: %w", schedule, err)
	}
	return &Runner{
		job:      job,
		logger:   logger,
		metrics:  recorder,
		schedule: schedule,
		now:      time.Now,
	}, nil
}

// Start runs one pass immediately and schedules the rest. Jobs that would
// overlap a still-running pass are skipped.
func (r *Runner) Start(ctx context.Context) error {
	r.startMu.Lock()
	defer r.startMu.Unlock()
	if r.started {
		return nil
	}

	clog := cronLogger{ctx: ctx, logger: r.logger}
	r.cron = cron.New(cron.WithLogger(clog), cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)))
	id, err := r.cron.AddFunc(r.schedule, func() { r.runOnce(ctx) })
	if err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}
	r.started = true

	logging.Info(ctx, r.logger, "maintenance started", logging.FieldSchedule, r.schedule)
	// The initial pass goes through the wrapped job so the skip chain covers it.
	initial := r.cron.Entry(id).WrappedJob
	r.running.Add(1)
	go func() {
		defer r.running.Done()
		initial.Run()
	}()
	r.cron.Start()
	return nil
}

// Stop halts scheduling and waits for an in-flight pass or ctx expiry.
func (r *Runner) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		r.startMu.Lock()
		c := r.cron
		r.startMu.Unlock()

		done := make(chan struct{})
		go func() {
			if c != nil {
				<-c.Stop().Done()
			}
			r.running.Wait()
			close(done)
		}()
		select {
		case <-done:
			logging.Info(ctx, r.logger, "maintenance stopped")
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

// RunOnce executes a single renumbering pass and returns how many titles changed.
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	return r.runOnce(ctx)
}

func (r *Runner) runOnce(ctx context.Context) (int, error) {
	start := r.now()
	r.recordAttempt(start)
	changed, err := r.job.RenumberTitles(ctx)
	elapsed := time.Since(start)
	r.metrics.RecordMaintenanceRun(elapsed, changed, err)
	if err != nil {
		logging.Error(ctx, r.logger, "maintenance renumber failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		r.recordFailure(err, start)
		return 0, err
	}
	r.recordSuccess(start, changed)
	logging.Info(ctx, r.logger, "maintenance renumber finished",
		logging.FieldCount, changed,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return changed, nil
}

func (r *Runner) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Runner) recordSuccess(at time.Time, changed int) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
	r.status.LastChanged = changed
}

func (r *Runner) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the job's recent health.
func (r *Runner) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// cronLogger routes cron's scheduler messages through slog.
type cronLogger struct {
	ctx    context.Context
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	if logger := logging.FromContext(l.ctx, l.logger); logger != nil {
		logger.Debug("cron: "+msg, keysAndValues...)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logging.Error(l.ctx, l.logger, "cron: "+msg, err, keysAndValues...)
}
