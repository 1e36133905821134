package appcomponents

import (
	"time"

	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

const (
	// DefaultTimeLayout formats hours, minutes and seconds on a 12-hour
	// clock, e.g. "10:15:32 AM".
	DefaultTimeLayout = "3:04:05 PM"
	// DefaultTickInterval is how often the clock refreshes.
	DefaultTickInterval = time.Second
)

// TimeBlockStyle is applied to the block holding the time.
var TimeBlockStyle = vdom.Style{BackgroundColor: "black", TextColor: "white", Padding: "10px"}

// Clock displays the current time and refreshes it once per interval
// while mounted.
type Clock struct {
	runtime.ComponentBase

	Layout   string
	Interval time.Duration

	// DisplayedTime is the formatted time of the most recent refresh.
	DisplayedTime string

	timer runtime.TimerID
}

// NewClock creates a clock. Empty arguments fall back to
// DefaultTimeLayout and DefaultTickInterval.
func NewClock(layout string, interval time.Duration) *Clock {
	return &Clock{Layout: layout, Interval: interval}
}

// Compile-time assertion to ensure Clock accepts new inputs from Main.
var _ runtime.PropUpdater = (*Clock)(nil)

func (c *Clock) OnInit() {
	c.DisplayedTime = c.format(c.Now())
}

func (c *Clock) OnMount() {
	c.timer = c.Every(c.interval(), c.tick)
}

// ApplyProps takes the layout and interval of a freshly built Clock. A new
// layout is shown right away; a new interval restarts the running timer.
func (c *Clock) ApplyProps(next runtime.Component) {
	props, ok := next.(*Clock)
	if !ok {
		return
	}

	if props.Layout != c.Layout {
		c.Layout = props.Layout
		c.DisplayedTime = c.format(c.Now())
	}

	if props.Interval != c.Interval {
		c.Interval = props.Interval
		if c.timer != runtime.NoTimer {
			c.StopTimer(c.timer)
			c.timer = c.Every(c.interval(), c.tick)
		}
	}
}

func (c *Clock) interval() time.Duration {
	if c.Interval <= 0 {
		return DefaultTickInterval
	}
	return c.Interval
}

func (c *Clock) OnUnmount() {
	c.StopTimer(c.timer)
	c.timer = runtime.NoTimer
}

func (c *Clock) tick() {
	c.DisplayedTime = c.format(c.Now())
	c.StateHasChanged()
}

func (c *Clock) format(t time.Time) string {
	layout := c.Layout
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.Format(layout)
}

func (c *Clock) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(nil,
		vdom.H2(c.DisplayedTime, nil),
	).WithStyle(TimeBlockStyle)
}
