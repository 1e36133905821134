package appcomponents

import (
	"time"

	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

// App is the root of the page: Header, Main and Footer, top to bottom.
// The zero value is ready to use.
type App struct {
	runtime.ComponentBase

	timeLayout   string
	tickInterval time.Duration
}

// Option configures an App.
type Option func(*App)

// WithTimeLayout sets the Go time layout used by the clock.
func WithTimeLayout(layout string) Option {
	return func(a *App) {
		a.timeLayout = layout
	}
}

// WithTickInterval sets how often the clock refreshes.
func WithTickInterval(interval time.Duration) Option {
	return func(a *App) {
		a.tickInterval = interval
	}
}

// NewApp creates the root component.
func NewApp(opts ...Option) *App {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) Render(r runtime.Renderer) *vdom.VNode {
	return vdom.Div(nil,
		r.RenderChild("header", &Header{}),
		r.RenderChild("main", &Main{TimeLayout: a.timeLayout, TickInterval: a.tickInterval}),
		r.RenderChild("footer", &Footer{}),
	)
}
