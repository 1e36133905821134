package testcomponents

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

// Compile-time assertion to ensure RecordingSurface implements runtime.Surface.
var _ runtime.Surface = (*RecordingSurface)(nil)

// RecordingSurface is an in-memory surface that keeps every tree it receives.
// It is safe to inspect from the test goroutine while the loop renders.
type RecordingSurface struct {
	mu      sync.Mutex
	mounts  int
	patches int
	clears  int
	current *vdom.VNode
	history []*vdom.VNode
}

// Mount records the initial tree.
func (s *RecordingSurface) Mount(tree *vdom.VNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounts++
	s.current = tree
	s.history = append(s.history, tree)
	return nil
}

// Patch records a re-rendered tree.
func (s *RecordingSurface) Patch(_, next *vdom.VNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches++
	s.current = next
	s.history = append(s.history, next)
	return nil
}

// Clear records a teardown.
func (s *RecordingSurface) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.current = nil
	return nil
}

// Current returns the tree currently on the surface.
func (s *RecordingSurface) Current() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Mounts returns how many times a tree was mounted.
func (s *RecordingSurface) Mounts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounts
}

// Patches returns how many re-renders reached the surface.
func (s *RecordingSurface) Patches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patches
}

// Clears returns how many times the surface was cleared.
func (s *RecordingSurface) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// History returns every tree received, oldest first.
func (s *RecordingSurface) History() []*vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*vdom.VNode, len(s.history))
	copy(out, s.history)
	return out
}

// TestRenderer is a minimal test harness that mounts a component tree
// in memory, without browser or WASM dependencies.
//
// It runs a real runtime.Engine on its own event loop, with a fake clock
// driving the timers, and allows tests to:
// - Mount and unmount the tree
// - Move time forward and let timers fire
// - Inspect the resulting VDOM trees
type TestRenderer struct {
	Clock     *clockwork.FakeClock
	Surface   *RecordingSurface
	Scheduler *runtime.ClockScheduler

	loop   *runtime.Loop
	engine *runtime.Engine
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTestRenderer creates a harness for comp whose clock starts at start.
// Call Close when done, typically with t.Cleanup.
func NewTestRenderer(comp runtime.Component, start time.Time) *TestRenderer {
	clock := clockwork.NewFakeClockAt(start)
	loop := runtime.NewLoop(64)
	scheduler := runtime.NewScheduler(clock, loop)
	surface := &RecordingSurface{}

	engine := runtime.NewEngine(surface, scheduler)
	engine.SetRoot(comp, "")

	ctx, cancel := context.WithCancel(context.Background())
	r := &TestRenderer{
		Clock:     clock,
		Surface:   surface,
		Scheduler: scheduler,
		loop:      loop,
		engine:    engine,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(r.done)
		_ = loop.Run(ctx)
	}()

	return r
}

// Do runs fn on the event loop and waits for it to finish.
func (r *TestRenderer) Do(fn func()) error {
	return r.loop.Do(context.Background(), fn)
}

// RenderRoot performs a render cycle and returns the resulting tree.
// The first call mounts the tree.
func (r *TestRenderer) RenderRoot() (*vdom.VNode, error) {
	var (
		tree *vdom.VNode
		err  error
	)
	if doErr := r.Do(func() {
		err = r.engine.RenderRoot()
		tree = r.engine.CurrentVDOM()
	}); doErr != nil {
		return nil, doErr
	}
	return tree, err
}

// GetCurrentVDOM returns the most recently rendered VDOM tree.
func (r *TestRenderer) GetCurrentVDOM() *vdom.VNode {
	return r.Surface.Current()
}

// State returns the engine lifecycle state.
func (r *TestRenderer) State() runtime.State {
	var state runtime.State
	_ = r.Do(func() { state = r.engine.State() })
	return state
}

// Advance moves the fake clock forward, firing any timer that falls due.
// Timer callbacks run asynchronously on the loop; use WaitForPatches to
// wait for the re-render they trigger.
func (r *TestRenderer) Advance(d time.Duration) {
	r.Clock.Advance(d)
}

// WaitForPatches waits until at least n re-renders reached the surface.
func (r *TestRenderer) WaitForPatches(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if r.Surface.Patches() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return r.Surface.Patches() >= n
}

// Unmount tears the tree down on the loop.
func (r *TestRenderer) Unmount() error {
	var err error
	if doErr := r.Do(func() { err = r.engine.Unmount() }); doErr != nil {
		return doErr
	}
	return err
}

// Close unmounts the tree if it is still mounted, cancels leftover
// timers and stops the loop.
func (r *TestRenderer) Close() {
	_ = r.Do(func() {
		if r.engine.State() != runtime.StateUnmounted {
			_ = r.engine.Unmount()
		}
	})
	r.Scheduler.Close()
	r.cancel()
	<-r.done
}
