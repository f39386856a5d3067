package worker

import (
	"context"
	"time"

	"github.com/taskbeacon/taskbeacon/pkg/utils/errutil"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

// Job is one scheduled unit of work. Errors are logged and swallowed; a
// failing run never stops the schedule.
type Job func(ctx context.Context) error

// Worker runs a Job on a wall-clock Schedule in a background goroutine
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For horizontal scaling, move the jobs behind a distributed scheduler
type Worker struct {
	name     string
	schedule Schedule
	job      Job
	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a scheduled worker
func New(name string, schedule Schedule, job Job) *Worker {
	return &Worker{
		name:     name,
		schedule: schedule,
		job:      job,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the scheduling loop. Does not block.
func (w *Worker) Start(ctx context.Context) {
	logging.From(ctx).Info("scheduled worker starting",
		"name", w.name,
		"next", w.schedule.Next(time.Now()).Format(time.RFC3339),
	)

	w.started = true
	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion. A worker that
// was never started stops immediately.
func (w *Worker) Stop() {
	if !w.started {
		return
	}
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("scheduled worker stopped", "name", w.name)
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		timer := time.NewTimer(time.Until(w.schedule.Next(time.Now())))

		select {
		case <-timer.C:
			w.runJob(ctx)

		case <-w.stopCh:
			timer.Stop()
			return

		case <-ctx.Done():
			timer.Stop()
			logging.From(ctx).Info("scheduled worker context cancelled", "name", w.name)
			return
		}
	}
}

func (w *Worker) runJob(ctx context.Context) {
	logger := logging.From(ctx)
	logger.Info("scheduled job starting", "name", w.name)

	start := time.Now()
	if err := w.job(ctx); err != nil {
		// The job still signals normal completion; the schedule continues
		_ = errutil.Handle(ctx, err, "scheduled job failed")
		return
	}

	logger.Info("scheduled job completed",
		"name", w.name,
		"duration", time.Since(start).String(),
	)
}
