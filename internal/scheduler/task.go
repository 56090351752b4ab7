package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/feral-file/ff-land-rentals/internal/logger"
)

// State is the lifecycle state of a task
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrTaskStarted = errors.New("task already started")
	ErrTaskStopped = errors.New("task stopped")
)

// Job is the unit of work run by a task. It reports its own failures.
type Job func(ctx context.Context)

// TaskConfig holds the schedule of a task
type TaskConfig struct {
	Name       string
	Schedule   string // standard cron expression or descriptor such as "@every 1m"
	RunOnStart bool
}

// Task runs a job on a cron schedule. Runs never overlap: a run that comes due
// while the previous one is in flight waits for it.
type Task struct {
	config   TaskConfig
	schedule cron.Schedule
	job      Job
	cron     *cron.Cron

	mu       sync.Mutex
	state    State
	inflight sync.WaitGroup

	runMu sync.Mutex
}

// NewTask creates a task, failing on an invalid schedule
func NewTask(config TaskConfig, job Job) (*Task, error) {
	schedule, err := cron.ParseStandard(config.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q for task %s: %w", config.Schedule, config.Name, err)
	}
	return &Task{
		config:   config,
		schedule: schedule,
		job:      job,
	}, nil
}

// Name returns the task's name for logging and identification
func (t *Task) Name() string {
	return t.config.Name
}

// State returns the current state of the task
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start registers the task on its schedule. It does not block.
func (t *Task) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.state != StateIdle {
		t.mu.Unlock()
		return ErrTaskStarted
	}
	t.state = StateRunning
	t.mu.Unlock()

	cl := cronLogger{name: t.config.Name}
	t.cron = cron.New(cron.WithChain(cron.Recover(cl), cron.DelayIfStillRunning(cl)))
	t.cron.Schedule(t.schedule, cron.FuncJob(func() {
		t.RunOnce(ctx)
	}))
	t.cron.Start()

	logger.InfoCtx(ctx, "Task started",
		zap.String("task", t.config.Name),
		zap.String("schedule", t.config.Schedule))

	if t.config.RunOnStart {
		go t.RunOnce(ctx)
	}
	return nil
}

// RunOnce runs the job synchronously, waiting for an in-flight run to finish first.
// It returns false without running when the task is stopping or stopped.
func (t *Task) RunOnce(ctx context.Context) bool {
	t.mu.Lock()
	if t.state == StateStopping || t.state == StateStopped {
		t.mu.Unlock()
		return false
	}
	t.inflight.Add(1)
	t.mu.Unlock()
	defer t.inflight.Done()

	t.runMu.Lock()
	defer t.runMu.Unlock()

	t.job(ctx)
	return true
}

// Stop unschedules the task and waits for the in-flight run to complete.
// The run is never interrupted; when ctx ends first Stop returns its error
// and the task still reaches stopped once the run completes.
func (t *Task) Stop(ctx context.Context) error {
	t.mu.Lock()
	switch t.state {
	case StateStopping, StateStopped:
		t.mu.Unlock()
		return nil
	}
	t.state = StateStopping
	t.mu.Unlock()

	logger.InfoCtx(ctx, "Stopping task", zap.String("task", t.config.Name))

	done := make(chan struct{})
	go func() {
		if t.cron != nil {
			<-t.cron.Stop().Done()
		}
		t.inflight.Wait()

		t.mu.Lock()
		t.state = StateStopped
		t.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		logger.InfoCtx(ctx, "Task stopped gracefully", zap.String("task", t.config.Name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Task stop interrupted by context timeout", zap.String("task", t.config.Name))
		return ctx.Err()
	}
}

// cronLogger routes cron's own messages to the service logger
type cronLogger struct {
	name string
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Default().Sugar().Debugw(msg, append([]interface{}{"task", l.name}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Default().Sugar().Errorw(msg, append([]interface{}{"task", l.name, "error", err}, keysAndValues...)...)
}
