package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultDispatchSweepSpec runs the sweep every five seconds.
const DefaultDispatchSweepSpec = "*/5 * * * * *"

// SessionWaker asks connected vehicle sessions for a dispatch pass.
type SessionWaker interface {
	WakeAll() int
}

// DispatchSweepJob periodically wakes every connected vehicle so that orders confirmed
// while all vehicles are silent do not wait for the next vehicle frame. The dispatch itself
// still runs in each session's goroutine.
type DispatchSweepJob struct {
	sessions SessionWaker
	spec     string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDispatchSweepJob creates the sweep. spec is a six-field cron expression (with seconds).
func NewDispatchSweepJob(sessions SessionWaker, spec string, logger *slog.Logger) *DispatchSweepJob {
	if spec == "" {
		spec = DefaultDispatchSweepSpec
	}
	return &DispatchSweepJob{
		sessions: sessions,
		spec:     spec,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dispatch_sweep_job"),
	}
}

func (j *DispatchSweepJob) Name() string {
	return "dispatch sweep"
}

// Start schedules the sweep.
func (j *DispatchSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return fmt.Errorf("invalid dispatch sweep schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job started", "schedule", j.spec)
	return nil
}

// Run performs one sweep.
func (j *DispatchSweepJob) Run() {
	if woken := j.sessions.WakeAll(); woken > 0 {
		j.logger.DebugContext(context.Background(), "Vehicle sessions woken", "sessions", woken)
	}
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *DispatchSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job stopped")
}
