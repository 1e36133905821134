package runtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// TimerID identifies a repeating timer. The zero value is never issued.
type TimerID uint64

// NoTimer is the zero TimerID, returned when no timer could be scheduled.
const NoTimer TimerID = 0

//go:generate go run github.com/golang/mock/mockgen -source=scheduler.go -destination=mock/scheduler_mock.go -package=mock

// Scheduler is the host timer facility.
type Scheduler interface {
	// Now returns the current time of the host clock.
	Now() time.Time
	// ScheduleRepeating runs fn once per interval until the timer is cancelled.
	ScheduleRepeating(interval time.Duration, fn func()) TimerID
	// Cancel releases the timer. It returns false if the timer is unknown
	// or was already cancelled.
	Cancel(id TimerID) bool
}

// Dispatcher runs tasks on the host event loop. Post reports whether the
// task was accepted.
type Dispatcher interface {
	Post(task func()) bool
}

// DispatchFunc adapts a function to the Dispatcher interface.
type DispatchFunc func(task func()) bool

// Post calls f(task).
func (f DispatchFunc) Post(task func()) bool {
	return f(task)
}

// Compile-time assertion to ensure ClockScheduler implements the Scheduler interface.
var _ Scheduler = (*ClockScheduler)(nil)

// ClockScheduler implements Scheduler on top of a clockwork clock.
// Every timer owns one ticker and one goroutine; the goroutine never runs
// the callback itself but hands each tick to the dispatcher, so callbacks
// are serialized with rendering on the event loop.
type ClockScheduler struct {
	clock    clockwork.Clock
	dispatch Dispatcher
	observer Observer

	mu     sync.Mutex
	nextID TimerID
	timers map[TimerID]*repeatingTimer
}

type repeatingTimer struct {
	ticker    clockwork.Ticker
	stop      chan struct{}
	cancelled atomic.Bool
}

// SchedulerOption configures a ClockScheduler.
type SchedulerOption func(*ClockScheduler)

// WithSchedulerObserver reports timer events to o.
func WithSchedulerObserver(o Observer) SchedulerOption {
	return func(s *ClockScheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewScheduler creates a scheduler reading time from clock and running
// callbacks through dispatch.
func NewScheduler(clock clockwork.Clock, dispatch Dispatcher, opts ...SchedulerOption) *ClockScheduler {
	s := &ClockScheduler{
		clock:    clock,
		dispatch: dispatch,
		observer: NopObserver{},
		timers:   make(map[TimerID]*repeatingTimer),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the underlying clock.
func (s *ClockScheduler) Now() time.Time {
	return s.clock.Now()
}

// ScheduleRepeating starts a ticker firing every interval.
// It panics if interval is not positive, like time.NewTicker.
func (s *ClockScheduler) ScheduleRepeating(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		panic("runtime: non-positive interval for ScheduleRepeating")
	}

	t := &repeatingTimer{
		ticker: s.clock.NewTicker(interval),
		stop:   make(chan struct{}),
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.timers[id] = t
	s.mu.Unlock()

	s.observer.TimerStarted()
	go s.forward(t, fn)

	return id
}

// forward hands every tick to the dispatcher until the timer is stopped.
func (s *ClockScheduler) forward(t *repeatingTimer, fn func()) {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.Chan():
			s.dispatch.Post(func() {
				// A tick queued before Cancel must not run after it.
				if t.cancelled.Load() {
					return
				}
				s.observer.Ticked()
				fn()
			})
		}
	}
}

// Cancel stops the timer and releases its ticker.
func (s *ClockScheduler) Cancel(id TimerID) bool {
	s.mu.Lock()
	t, ok := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()

	if !ok {
		return false
	}

	t.cancelled.Store(true)
	t.ticker.Stop()
	close(t.stop)
	s.observer.TimerStopped()
	return true
}

// Active returns the number of timers not yet cancelled.
func (s *ClockScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close cancels every active timer.
func (s *ClockScheduler) Close() {
	s.mu.Lock()
	ids := make([]TimerID, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.Cancel(id)
	}
}
