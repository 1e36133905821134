package appcomponents

import (
	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

const (
	FooterCopyright   = "© 2022 Our Company. All rights reserved."
	FooterAttribution = "Powered by synapse labs"
)

// AttributionStyle is applied to the attribution line.
var AttributionStyle = vdom.Style{FontSize: "14px", FontStyle: "italic", TextColor: "black"}

// Footer renders the copyright and attribution lines. It has no state and no inputs.
type Footer struct {
	runtime.ComponentBase
}

func (f *Footer) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Footer(nil,
		vdom.Paragraph(FooterCopyright, nil),
		vdom.Paragraph(FooterAttribution, nil).WithStyle(AttributionStyle),
	)
}
