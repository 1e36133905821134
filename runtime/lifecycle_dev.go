//go:build dev
// +build dev

package runtime

// callOnInit invokes the OnInit lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (e *Engine) callOnInit(initializer Initializer, key string) {
	initializer.OnInit()
}

// callOnMount invokes the OnMount lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (e *Engine) callOnMount(mounter Mounter, key string) {
	mounter.OnMount()
}

// callOnUnmount invokes the OnUnmount lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (e *Engine) callOnUnmount(unmounter Unmounter, key string) {
	unmounter.OnUnmount()
}

// callApplyProps hands new inputs to a reused instance in development mode.
func (e *Engine) callApplyProps(updater PropUpdater, next Component, key string) {
	updater.ApplyProps(next)
}

// callOnParametersSet invokes OnParametersSet in development mode.
func (e *Engine) callOnParametersSet(receiver ParameterReceiver, key string) {
	receiver.OnParametersSet()
}
