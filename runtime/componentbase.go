package runtime

import (
	"time"

	"github.com/vcrobe/nojs-clock/console"
)

// ComponentBase is a struct that components can embed to gain access to the
// StateHasChanged method, which triggers a UI re-render, and to the host
// timer facility.
// This type has no build tags and works in both WASM and native environments.
type ComponentBase struct {
	renderer Renderer // Use interface type, not concrete implementation
}

// SetRenderer is called by the framework's runtime to inject a reference
// to the renderer, enabling StateHasChanged. This method should not be
// called by user code.
func (b *ComponentBase) SetRenderer(r Renderer) {
	b.renderer = r
}

// GetRenderer returns the renderer instance associated with this component.
func (b *ComponentBase) GetRenderer() Renderer {
	return b.renderer
}

// StateHasChanged signals to the framework that the component's state has
// been updated and the UI should be re-rendered to reflect the changes.
// It is the explicit notify step: nothing re-renders unless a component
// calls it.
func (b *ComponentBase) StateHasChanged() {
	if b.renderer == nil {
		console.Error("StateHasChanged called, but renderer is nil (component not mounted?)")
		return
	}
	b.renderer.ReRender()
}

// Now returns the current time from the host clock, falling back to the
// system clock when the component is not attached to a renderer.
func (b *ComponentBase) Now() time.Time {
	if b.renderer == nil || b.renderer.Scheduler() == nil {
		return time.Now()
	}
	return b.renderer.Scheduler().Now()
}

// Every schedules fn to run once per interval on the host event loop and
// returns the handle to pass to StopTimer. Call it from OnMount and stop
// the timer in OnUnmount.
//
// Example usage in a component:
//
//	func (c *Ticker) OnMount() {
//	    c.timer = c.Every(time.Second, c.tick)
//	}
//
//	func (c *Ticker) OnUnmount() {
//	    c.StopTimer(c.timer)
//	}
//
// Returns NoTimer if the component is not attached to a renderer.
func (b *ComponentBase) Every(interval time.Duration, fn func()) TimerID {
	if b.renderer == nil || b.renderer.Scheduler() == nil {
		console.Error("Every called, but renderer is nil (component not mounted?)")
		return NoTimer
	}
	return b.renderer.Scheduler().ScheduleRepeating(interval, fn)
}

// StopTimer cancels a timer started with Every. It reports whether the
// timer was active; stopping a timer twice is a no-op.
func (b *ComponentBase) StopTimer(id TimerID) bool {
	if id == NoTimer || b.renderer == nil || b.renderer.Scheduler() == nil {
		return false
	}
	return b.renderer.Scheduler().Cancel(id)
}
