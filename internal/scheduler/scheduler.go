package scheduler

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"
)

// Scheduler starts and stops a set of tasks together
type Scheduler struct {
	tasks []*Task
}

// New creates a scheduler for the given tasks
func New(tasks ...*Task) *Scheduler {
	return &Scheduler{tasks: tasks}
}

// Tasks returns the scheduled tasks
func (s *Scheduler) Tasks() []*Task {
	return s.tasks
}

// Start starts every task. Tasks already started are stopped again when one fails.
func (s *Scheduler) Start(ctx context.Context) error {
	for i, task := range s.tasks {
		if err := task.Start(ctx); err != nil {
			for _, started := range s.tasks[:i] {
				_ = started.Stop(ctx)
			}
			return err
		}
	}
	return nil
}

// Stop stops every task concurrently and waits for their in-flight runs
func (s *Scheduler) Stop(ctx context.Context) error {
	if len(s.tasks) == 0 {
		return nil
	}

	pool := pond.NewPool(len(s.tasks), pond.WithContext(context.WithoutCancel(ctx)))
	defer pool.StopAndWait()

	errs := make([]error, len(s.tasks))
	group := pool.NewGroup()
	for i, task := range s.tasks {
		group.Submit(func() {
			errs[i] = task.Stop(ctx)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
