package runtime

import "github.com/vcrobe/nojs-clock/vdom"

// Component is anything the engine can place in the tree. Components embed
// ComponentBase for SetRenderer and implement Render; everything else is
// opt-in through the lifecycle and prop interfaces below.
type Component interface {
	// Render returns the component's tree for the current state. Child
	// components are rendered through r.RenderChild so their instances
	// survive across renders.
	Render(r Renderer) *vdom.VNode

	// SetRenderer attaches the engine. ComponentBase implements it.
	SetRenderer(r Renderer)
}

// PropUpdater is implemented by components whose parent passes inputs.
// On every render after the first, the engine keeps the cached instance
// and hands it the freshly built value so the instance can copy the inputs
// it cares about while keeping its own state.
type PropUpdater interface {
	ApplyProps(next Component)
}

// ParameterReceiver is implemented by components that derive state from
// their inputs. OnParametersSet runs before every render, after OnInit on
// the first one and after ApplyProps on later ones.
type ParameterReceiver interface {
	OnParametersSet()
}
