package runtime

import "time"

// Observer receives runtime events. Hosts use it to export metrics.
// Methods are called on the goroutine that produced the event and must not block.
type Observer interface {
	// Rendered is called after a render cycle reached the surface.
	Rendered(initial bool, elapsed time.Duration)
	// Mounted is called after a component's OnMount.
	Mounted(key string)
	// Unmounted is called after a component's OnUnmount.
	Unmounted(key string)
	// TimerStarted is called when a repeating timer is scheduled.
	TimerStarted()
	// TimerStopped is called when a repeating timer is released.
	TimerStopped()
	// Ticked is called each time a timer callback runs.
	Ticked()
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Rendered(bool, time.Duration) {}
func (NopObserver) Mounted(string)               {}
func (NopObserver) Unmounted(string)             {}
func (NopObserver) TimerStarted()                {}
func (NopObserver) TimerStopped()                {}
func (NopObserver) Ticked()                      {}
