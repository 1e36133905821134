package runtime

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-clock/vdom"
)

// memorySurface records what the engine sends to it.
type memorySurface struct {
	mounts, patches, clears int
	tree                    *vdom.VNode
	failWith                error
}

func (s *memorySurface) Mount(tree *vdom.VNode) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.mounts++
	s.tree = tree
	return nil
}

func (s *memorySurface) Patch(_, next *vdom.VNode) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.patches++
	s.tree = next
	return nil
}

func (s *memorySurface) Clear() error {
	s.clears++
	s.tree = nil
	return nil
}

// tracer records its lifecycle calls into a shared log.
type tracer struct {
	ComponentBase
	name string
	log  *[]string
	text string
}

func (p *tracer) OnInit()    { *p.log = append(*p.log, p.name+":init") }
func (p *tracer) OnMount()   { *p.log = append(*p.log, p.name+":mount") }
func (p *tracer) OnUnmount() { *p.log = append(*p.log, p.name+":unmount") }

func (p *tracer) Render(r Renderer) *vdom.VNode {
	*p.log = append(*p.log, p.name+":render")
	return vdom.Paragraph(p.text, nil)
}

// shell renders a tracer child while ShowChild is set.
type shell struct {
	ComponentBase
	log       *[]string
	ShowChild bool
	child     func() Component
}

func (s *shell) OnMount()   { *s.log = append(*s.log, "shell:mount") }
func (s *shell) OnUnmount() { *s.log = append(*s.log, "shell:unmount") }

func (s *shell) Render(r Renderer) *vdom.VNode {
	var child *vdom.VNode
	if s.ShowChild {
		child = r.RenderChild("child", s.child())
	}
	return vdom.Div(nil, child)
}

func newShell(log *[]string) *shell {
	s := &shell{log: log, ShowChild: true}
	s.child = func() Component { return &tracer{name: "child", log: log, text: "hello"} }
	return s
}

func TestEngine_RenderRoot_MountsThenPatches(t *testing.T) {
	var log []string
	surface := &memorySurface{}
	engine := NewEngine(surface, nil)
	engine.SetRoot(newShell(&log), "")

	require.Equal(t, StateIdle, engine.State())
	require.NoError(t, engine.RenderRoot())

	assert.Equal(t, StateMounted, engine.State())
	assert.Equal(t, 1, surface.mounts)
	assert.Equal(t, 0, surface.patches)
	assert.Equal(t, []string{"child:init", "child:render", "child:mount", "shell:mount"}, log)
	assert.Equal(t, "hello", surface.tree.Text())
	assert.Equal(t, DefaultRootKey, surface.tree.ComponentKey)

	log = nil
	require.NoError(t, engine.RenderRoot())

	assert.Equal(t, 1, surface.mounts)
	assert.Equal(t, 1, surface.patches)
	// The cached child is rendered again but not initialized or mounted again
	assert.Equal(t, []string{"child:render"}, log)
}

func TestEngine_RemovedChildIsUnmounted(t *testing.T) {
	var log []string
	root := newShell(&log)
	engine := NewEngine(&memorySurface{}, nil)
	engine.SetRoot(root, "")
	require.NoError(t, engine.RenderRoot())

	log = nil
	root.ShowChild = false
	root.StateHasChanged()

	assert.Equal(t, []string{"child:unmount"}, log)

	// Showing it again creates a fresh instance
	log = nil
	root.ShowChild = true
	root.StateHasChanged()

	assert.Equal(t, []string{"child:init", "child:render", "child:mount"}, log)
}

func TestEngine_Unmount(t *testing.T) {
	t.Run("unmounts children before parents and clears the surface", func(t *testing.T) {
		var log []string
		surface := &memorySurface{}
		engine := NewEngine(surface, nil)
		engine.SetRoot(newShell(&log), "")
		require.NoError(t, engine.RenderRoot())

		log = nil
		require.NoError(t, engine.Unmount())

		assert.Equal(t, []string{"child:unmount", "shell:unmount"}, log)
		assert.Equal(t, 1, surface.clears)
		assert.Equal(t, StateUnmounted, engine.State())
		assert.Nil(t, engine.CurrentVDOM())
	})

	t.Run("is terminal", func(t *testing.T) {
		var log []string
		root := newShell(&log)
		surface := &memorySurface{}
		engine := NewEngine(surface, nil)
		engine.SetRoot(root, "")
		require.NoError(t, engine.RenderRoot())
		require.NoError(t, engine.Unmount())

		log = nil
		root.StateHasChanged()

		assert.Empty(t, log, "no render may follow teardown")
		assert.Equal(t, 0, surface.patches)
		assert.ErrorIs(t, engine.RenderRoot(), ErrUnmounted)
		assert.ErrorIs(t, engine.Unmount(), ErrUnmounted)
	})

	t.Run("before the first render skips hooks and surface", func(t *testing.T) {
		var log []string
		surface := &memorySurface{}
		engine := NewEngine(surface, nil)
		engine.SetRoot(newShell(&log), "")

		require.NoError(t, engine.Unmount())
		assert.Empty(t, log)
		assert.Equal(t, 0, surface.clears)
	})
}

func TestEngine_SetRootWithNewKeyReplacesTree(t *testing.T) {
	var log []string
	engine := NewEngine(&memorySurface{}, nil)
	engine.SetRoot(&tracer{name: "first", log: &log}, "first")
	require.NoError(t, engine.RenderRoot())

	log = nil
	engine.SetRoot(&tracer{name: "second", log: &log}, "second")
	require.NoError(t, engine.RenderRoot())

	assert.Equal(t, []string{"second:init", "second:render", "first:unmount", "second:mount"}, log)
}

func TestEngine_Errors(t *testing.T) {
	t.Run("no root", func(t *testing.T) {
		engine := NewEngine(&memorySurface{}, nil)
		assert.ErrorIs(t, engine.RenderRoot(), ErrNoRoot)
	})

	t.Run("surface failure is wrapped and nothing is mounted", func(t *testing.T) {
		var log []string
		boom := errors.New("boom")
		surface := &memorySurface{failWith: boom}
		engine := NewEngine(surface, nil)
		engine.SetRoot(&tracer{name: "p", log: &log}, "")

		err := engine.RenderRoot()
		require.ErrorIs(t, err, boom)
		assert.Equal(t, StateIdle, engine.State())
		assert.NotContains(t, log, "p:mount")

		// The retry mounts the cached instance exactly once
		surface.failWith = nil
		require.NoError(t, engine.RenderRoot())
		assert.Equal(t, []string{"p:init", "p:render", "p:render", "p:mount"}, log)
	})
}

// selfUpdating changes its state from OnMount.
type selfUpdating struct {
	ComponentBase
	renders int
	ready   bool
}

func (c *selfUpdating) OnMount() {
	c.ready = true
	c.StateHasChanged()
}

func (c *selfUpdating) Render(r Renderer) *vdom.VNode {
	c.renders++
	if c.ready {
		return vdom.Paragraph("ready", nil)
	}
	return vdom.Paragraph("loading", nil)
}

func TestEngine_StateChangeDuringCycleIsFolded(t *testing.T) {
	surface := &memorySurface{}
	comp := &selfUpdating{}
	engine := NewEngine(surface, nil)
	engine.SetRoot(comp, "")

	require.NoError(t, engine.RenderRoot())

	assert.Equal(t, 2, comp.renders)
	assert.Equal(t, 1, surface.mounts)
	assert.Equal(t, 1, surface.patches)
	assert.Equal(t, "ready", surface.tree.Content)
}

type countingObserver struct {
	NopObserver
	initial, patches   int
	mounted, unmounted []string
	lastRenderDuration time.Duration
}

func (o *countingObserver) Rendered(initial bool, elapsed time.Duration) {
	if initial {
		o.initial++
	} else {
		o.patches++
	}
	o.lastRenderDuration = elapsed
}

func (o *countingObserver) Mounted(key string)   { o.mounted = append(o.mounted, key) }
func (o *countingObserver) Unmounted(key string) { o.unmounted = append(o.unmounted, key) }

func TestEngine_Observer(t *testing.T) {
	var log []string
	obs := &countingObserver{}
	engine := NewEngine(&memorySurface{}, nil, WithObserver(obs))
	engine.SetRoot(newShell(&log), "app")

	require.NoError(t, engine.RenderRoot())
	engine.ReRender()
	require.NoError(t, engine.Unmount())

	assert.Equal(t, 1, obs.initial)
	assert.Equal(t, 1, obs.patches)
	assert.Equal(t, []string{"child", "app"}, obs.mounted)
	assert.Equal(t, []string{"child", "app"}, obs.unmounted)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "mounted", StateMounted.String())
	assert.Equal(t, "unmounted", StateUnmounted.String())
	assert.Equal(t, "State(7)", State(7).String())
}

// labelled keeps a render count as its own state and takes Label from its parent.
type labelled struct {
	ComponentBase
	Label    string
	renders  int
	paramSet []string
}

func (l *labelled) ApplyProps(next Component) {
	if props, ok := next.(*labelled); ok {
		l.Label = props.Label
	}
}

func (l *labelled) OnParametersSet() { l.paramSet = append(l.paramSet, l.Label) }

func (l *labelled) Render(r Renderer) *vdom.VNode {
	l.renders++
	return vdom.Paragraph(l.Label, nil)
}

// labelParent passes its current label to a keyed child.
type labelParent struct {
	ComponentBase
	label string
}

func (p *labelParent) Render(r Renderer) *vdom.VNode {
	return vdom.Div(nil, r.RenderChild("label", &labelled{Label: p.label}))
}

func TestEngine_ReusedInstanceReceivesProps(t *testing.T) {
	surface := &memorySurface{}
	parent := &labelParent{label: "first"}
	engine := NewEngine(surface, nil)
	engine.SetRoot(parent, "")

	require.NoError(t, engine.RenderRoot())
	child, ok := engine.instances["label"].(*labelled)
	require.True(t, ok)

	parent.label = "second"
	require.NoError(t, engine.RenderRoot())

	assert.Same(t, child, engine.instances["label"], "the instance must be reused")
	assert.Equal(t, "second", surface.tree.Children[0].Content)
	assert.Equal(t, 2, child.renders, "state survives the new props")
	assert.Equal(t, []string{"first", "second"}, child.paramSet)
}
