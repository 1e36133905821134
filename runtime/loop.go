package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vcrobe/nojs-clock/console"
)

// ErrLoopStopped is returned when a task is submitted to a stopped loop.
var ErrLoopStopped = errors.New("event loop stopped")

// Compile-time assertion to ensure Loop implements the Dispatcher interface.
var _ Dispatcher = (*Loop)(nil)

// Loop is a single-threaded event loop. Tasks run one at a time, to
// completion, in the order they were posted. Component code, rendering
// and timer callbacks of one tree all run on the same loop, so none of
// them needs locking.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop whose queue holds up to capacity pending tasks.
func NewLoop(capacity int) *Loop {
	if capacity < 0 {
		capacity = 0
	}
	return &Loop{
		tasks: make(chan func(), capacity),
		done:  make(chan struct{}),
	}
}

// Post queues a task. It blocks while the queue is full and returns false
// once the loop has stopped.
func (l *Loop) Post(task func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- task:
		return true
	case <-l.done:
		return false
	}
}

// TryPost queues a task without blocking. It returns false when the
// queue is full or the loop has stopped. Use it from callbacks that must
// not block, such as browser event handlers.
func (l *Loop) TryPost(task func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- task:
		return true
	default:
		return false
	}
}

// Do posts a task and waits until it has run.
func (l *Loop) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		task()
	}) {
		return ErrLoopStopped
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// The loop may have run the task right before stopping.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks until ctx is cancelled or Stop is called.
// Tasks still queued when the loop stops are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case task := <-l.tasks:
			l.invoke(task)
		}
	}
}

// Stop ends the loop. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// invoke runs a task, recovering a panic so one faulty task cannot
// stop the loop.
func (l *Loop) invoke(task func()) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error(fmt.Sprintf("event loop task panic: %v", rec))
		}
	}()
	task()
}
