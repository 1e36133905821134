package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-clock/vdom"
)

// DiscardDispatcher drops every task. Schedulers built on it never run
// their callbacks, which is what one-shot renders want.
var DiscardDispatcher Dispatcher = DispatchFunc(func(func()) bool { return false })

// captureSurface keeps the last tree in memory.
type captureSurface struct {
	tree *vdom.VNode
}

func (s *captureSurface) Mount(tree *vdom.VNode) error {
	s.tree = tree
	return nil
}

func (s *captureSurface) Patch(_, next *vdom.VNode) error {
	s.tree = next
	return nil
}

func (s *captureSurface) Clear() error {
	return nil
}

// Snapshot mounts root on an in-memory surface, tears it down again and
// returns the tree of the first render. Every timer the components start
// on mount is cancelled before Snapshot returns.
func Snapshot(root Component, scheduler Scheduler) (*vdom.VNode, error) {
	surface := &captureSurface{}
	engine := NewEngine(surface, scheduler)
	engine.SetRoot(root, "")

	if err := engine.RenderRoot(); err != nil {
		return nil, fmt.Errorf("failed to render snapshot: %w", err)
	}
	tree := surface.tree

	if err := engine.Unmount(); err != nil {
		return nil, fmt.Errorf("failed to unmount snapshot: %w", err)
	}
	return tree, nil
}
