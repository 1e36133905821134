package appcomponents

import (
	"time"

	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

// MainIntro is the instructional line above the clock.
const MainIntro = "This is the main section of our application."

// MainStyle centers the main section.
var MainStyle = vdom.Style{Alignment: "center"}

// Main wraps the intro line and the Clock in a centered section.
type Main struct {
	runtime.ComponentBase

	TimeLayout   string
	TickInterval time.Duration
}

// ApplyProps takes the clock settings of a freshly built Main.
func (m *Main) ApplyProps(next runtime.Component) {
	if props, ok := next.(*Main); ok {
		m.TimeLayout = props.TimeLayout
		m.TickInterval = props.TickInterval
	}
}

func (m *Main) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Main(nil,
		vdom.Paragraph(MainIntro, nil),
		r.RenderChild("main/clock", NewClock(m.TimeLayout, m.TickInterval)),
	).WithStyle(MainStyle)
}
