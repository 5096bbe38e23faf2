package shell

import (
	"context"
	"sync"
	"time"
)

// Task runs a function on a fixed interval until stopped. Stop waits for the
// running tick to return, so no tick observes state after its owner is gone.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartTask launches fn every interval. The task keeps the values of ctx
// but not its cancellation: panels mount from request scoped contexts, so
// only Stop ends it. A non-positive interval or a nil fn yields a task that
// has already exited.
func StartTask(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) *Task {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	task := &Task{cancel: cancel, done: make(chan struct{})}
	if interval <= 0 || fn == nil {
		cancel()
		close(task.done)
		return task
	}
	go func() {
		defer close(task.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
	return task
}

// Stop cancels the task and waits for it to exit. It is safe to call more
// than once and on a nil task.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the task has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
