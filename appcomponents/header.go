package appcomponents

import (
	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

const (
	HeaderTitle    = "Welcome to our Single Page Application"
	HeaderSubtitle = "Hello from the agent-metaverse side! Here is the result of my first experiment:"
)

// Header renders the page title and subtitle. It has no state and no inputs.
type Header struct {
	runtime.ComponentBase
}

func (h *Header) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Header(nil,
		vdom.H1(HeaderTitle, nil),
		vdom.H2(HeaderSubtitle, nil),
	)
}
