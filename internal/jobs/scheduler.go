package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout bounds a single job run.
const DefaultJobTimeout = 5 * time.Minute

// Job is a unit of recurring work.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Run performs one execution. The context is cancelled when the run
	// times out or the scheduler stops.
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on cron schedules. A run that is still in
// progress when its next tick arrives causes that tick to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	// base is cancelled by Stop so in-flight runs can end early.
	base   context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "scheduler"))
	cl := cronLogger{logger: log}

	base, cancel := context.WithCancel(logger.WithLogger(context.Background(), log))
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  log,
		timeout: DefaultJobTimeout,
		base:    base,
		cancel:  cancel,
	}
}

// Register schedules job using a standard five-field cron expression or a
// descriptor such as "@every 1h".
func (s *Scheduler) Register(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("failed to schedule job %s with schedule %q: %w", job.Name(), schedule, err)
	}

	s.logger.Info("job registered",
		slog.String("job", job.Name()),
		slog.String("schedule", schedule))
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for running jobs to finish or for ctx to
// expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop in time: %w", ctx.Err())
	}
}

// RunAll executes every registered job once, synchronously, through the
// same recovery and overlap chain as scheduled runs.
func (s *Scheduler) RunAll() {
	for _, e := range s.cron.Entries() {
		e.WrappedJob.Run()
	}
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(s.base, s.timeout)
	defer cancel()

	log := s.logger.With(slog.String("job", job.Name()))
	start := time.Now()

	if err := job.Run(logger.WithLogger(ctx, log)); err != nil {
		log.Error("job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return
	}
	log.Debug("job finished", slog.Duration("duration", time.Since(start)))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

// Info logs routine scheduler activity at debug level.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error logs scheduler failures, including recovered panics.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]any{slog.String("error", fmt.Sprint(err))}, keysAndValues...)
	l.logger.Error(msg, args...)
}
