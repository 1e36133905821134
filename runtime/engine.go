package runtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/vcrobe/nojs-clock/console"
	"github.com/vcrobe/nojs-clock/vdom"
)

// DefaultRootKey is the instance key used for the root component when
// SetRoot is called with an empty key.
const DefaultRootKey = "__root__"

var (
	// ErrNoRoot is returned when rendering is requested before SetRoot.
	ErrNoRoot = errors.New("no root component set")
	// ErrUnmounted is returned once the engine has been torn down.
	ErrUnmounted = errors.New("engine is unmounted")
)

// Surface is the display a tree is rendered to: the browser document, a
// live socket or an in-memory buffer.
type Surface interface {
	// Mount renders the tree for the first time.
	Mount(tree *vdom.VNode) error
	// Patch replaces the previously rendered tree with next.
	Patch(prev, next *vdom.VNode) error
	// Clear removes everything rendered.
	Clear() error
}

// State is the lifecycle state of an Engine.
type State int

const (
	// StateIdle means nothing has been rendered yet.
	StateIdle State = iota
	// StateMounted means the tree is on the surface and timers may be active.
	StateMounted
	// StateUnmounted is terminal: every component has been torn down.
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMounted:
		return "mounted"
	case StateUnmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Compile-time assertion to ensure Engine implements the Renderer interface.
var _ Renderer = (*Engine)(nil)

// Engine manages the component instance tree and handles the rendering
// lifecycle on a Surface. It is not safe for concurrent use: drive it
// from a single goroutine, normally a Loop.
type Engine struct {
	surface   Surface
	scheduler Scheduler
	observer  Observer

	root    Component
	rootKey string

	instances    map[string]Component
	order        []string        // Keys of live instances in creation order
	activeKeys   map[string]bool // Track which components are active in the current render
	mounted      map[string]bool // Track which components received OnMount
	pendingMount []string        // Created this cycle, mounted once the surface is updated

	prevVDOM  *vdom.VNode // Previous VDOM tree for patching
	state     State
	rendering bool
	dirty     bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithObserver reports render and lifecycle events to o.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// NewEngine creates an engine rendering to surface, with scheduler as
// the timer facility offered to components.
func NewEngine(surface Surface, scheduler Scheduler, opts ...EngineOption) *Engine {
	e := &Engine{
		surface:    surface,
		scheduler:  scheduler,
		observer:   NopObserver{},
		rootKey:    DefaultRootKey,
		instances:  make(map[string]Component),
		activeKeys: make(map[string]bool),
		mounted:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetRoot sets the component to be rendered. Changing the key on a later
// call replaces the tree: instances of the old root are unmounted on the
// next render.
func (e *Engine) SetRoot(comp Component, key string) {
	if key == "" {
		key = DefaultRootKey
	}
	e.root = comp
	e.rootKey = key
}

// Scheduler returns the timer facility offered to components.
func (e *Engine) Scheduler() Scheduler {
	return e.scheduler
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// CurrentVDOM returns the most recently rendered tree, or nil.
func (e *Engine) CurrentVDOM() *vdom.VNode {
	return e.prevVDOM
}

// RenderRoot runs a render cycle. The first successful call mounts the
// tree on the surface; later calls patch it. State changes requested
// while a cycle is running are folded into one more cycle.
func (e *Engine) RenderRoot() error {
	if e.state == StateUnmounted {
		return ErrUnmounted
	}
	if e.root == nil {
		return ErrNoRoot
	}
	if e.rendering {
		e.dirty = true
		return nil
	}

	e.rendering = true
	defer func() { e.rendering = false }()

	for {
		e.dirty = false
		if err := e.renderOnce(); err != nil {
			return err
		}
		if !e.dirty || e.state == StateUnmounted {
			return nil
		}
	}
}

func (e *Engine) renderOnce() error {
	start := time.Now()

	// Reset activeKeys for this render cycle
	e.activeKeys = make(map[string]bool)
	newVDOM := e.RenderChild(e.rootKey, e.root)
	if e.state == StateUnmounted {
		return nil
	}

	initial := e.prevVDOM == nil
	var err error
	if initial {
		err = e.surface.Mount(newVDOM)
	} else {
		err = e.surface.Patch(e.prevVDOM, newVDOM)
	}
	if err != nil {
		return fmt.Errorf("failed to update surface: %w", err)
	}

	e.prevVDOM = newVDOM
	e.state = StateMounted
	e.observer.Rendered(initial, time.Since(start))

	e.cleanupUnmountedComponents()
	e.mountPending()
	return nil
}

// RenderChild renders a child component. It handles the core logic of
// instance creation and reuse: the first component seen under a key is
// kept, and later renders reuse it so its state survives. A reused
// instance that implements PropUpdater receives childWithProps.
func (e *Engine) RenderChild(key string, childWithProps Component) *vdom.VNode {
	if childWithProps == nil {
		return nil
	}

	// Mark this component as active in the current render cycle
	e.activeKeys[key] = true

	instance, exists := e.instances[key]
	if !exists {
		instance = childWithProps
		e.instances[key] = instance
		e.order = append(e.order, key)
		instance.SetRenderer(e)

		// Call OnInit only once, before first render
		if initializer, ok := instance.(Initializer); ok {
			e.callOnInit(initializer, key)
		}
		e.pendingMount = append(e.pendingMount, key)
	} else if updater, ok := instance.(PropUpdater); ok && instance != childWithProps {
		// Preserve the existing instance and pass it the new inputs
		e.callApplyProps(updater, childWithProps, key)
	}

	// Ensure the instance knows about the renderer so it can call StateHasChanged.
	instance.SetRenderer(e)

	if receiver, ok := instance.(ParameterReceiver); ok {
		e.callOnParametersSet(receiver, key)
	}

	node := instance.Render(e)
	if node != nil && node.ComponentKey == "" {
		node.ComponentKey = key
	}
	return node
}

// cleanupUnmountedComponents removes components that are no longer in the
// tree and calls their OnUnmount, children before parents.
func (e *Engine) cleanupUnmountedComponents() {
	kept := e.order[:0:0]
	for i := len(e.order) - 1; i >= 0; i-- {
		key := e.order[i]
		if e.activeKeys[key] {
			kept = append(kept, key)
			continue
		}
		e.release(key)
	}

	// kept was collected back to front
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	e.order = kept

	pending := e.pendingMount[:0]
	for _, key := range e.pendingMount {
		if _, live := e.instances[key]; live {
			pending = append(pending, key)
		}
	}
	e.pendingMount = pending
}

// mountPending calls OnMount for instances created in this cycle,
// children before parents.
func (e *Engine) mountPending() {
	pending := e.pendingMount
	e.pendingMount = nil

	for i := len(pending) - 1; i >= 0; i-- {
		key := pending[i]
		instance, live := e.instances[key]
		if !live || e.mounted[key] {
			continue
		}

		e.mounted[key] = true
		if mounter, ok := instance.(Mounter); ok {
			e.callOnMount(mounter, key)
		}
		e.observer.Mounted(key)

		// OnMount of an earlier instance may have torn the engine down
		if e.state == StateUnmounted {
			return
		}
	}
}

// release drops an instance, calling OnUnmount if it was mounted.
func (e *Engine) release(key string) {
	instance := e.instances[key]
	wasMounted := e.mounted[key]

	delete(e.instances, key)
	delete(e.mounted, key)

	if !wasMounted {
		return
	}
	if unmounter, ok := instance.(Unmounter); ok {
		e.callOnUnmount(unmounter, key)
	}
	e.observer.Unmounted(key)
}

// ReRender requests a new render cycle. Errors are logged; after Unmount
// the request is ignored.
func (e *Engine) ReRender() {
	if e.state == StateUnmounted {
		return
	}
	if err := e.RenderRoot(); err != nil {
		console.Error("render failed:", err.Error())
	}
}

// Unmount tears the tree down: every mounted instance receives OnUnmount,
// children before parents, then the surface is cleared. Unmount is
// terminal; a second call returns ErrUnmounted.
func (e *Engine) Unmount() error {
	if e.state == StateUnmounted {
		return ErrUnmounted
	}
	// Set first so state changes requested by OnUnmount are ignored
	e.state = StateUnmounted

	for i := len(e.order) - 1; i >= 0; i-- {
		e.release(e.order[i])
	}
	e.order = nil
	e.pendingMount = nil
	e.activeKeys = make(map[string]bool)

	hadTree := e.prevVDOM != nil
	e.prevVDOM = nil
	if hadTree {
		if err := e.surface.Clear(); err != nil {
			return fmt.Errorf("failed to clear surface: %w", err)
		}
	}
	return nil
}
