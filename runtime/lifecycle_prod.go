//go:build !dev
// +build !dev

package runtime

import (
	"fmt"

	"github.com/vcrobe/nojs-clock/console"
)

// callOnInit invokes the OnInit lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (e *Engine) callOnInit(initializer Initializer, key string) {
	defer recoverHook("OnInit", key)
	initializer.OnInit()
}

// callOnMount invokes the OnMount lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (e *Engine) callOnMount(mounter Mounter, key string) {
	defer recoverHook("OnMount", key)
	mounter.OnMount()
}

// callOnUnmount invokes the OnUnmount lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (e *Engine) callOnUnmount(unmounter Unmounter, key string) {
	defer recoverHook("OnUnmount", key)
	unmounter.OnUnmount()
}

// callApplyProps hands new inputs to a reused instance in production mode.
func (e *Engine) callApplyProps(updater PropUpdater, next Component, key string) {
	defer recoverHook("ApplyProps", key)
	updater.ApplyProps(next)
}

// callOnParametersSet invokes OnParametersSet in production mode.
func (e *Engine) callOnParametersSet(receiver ParameterReceiver, key string) {
	defer recoverHook("OnParametersSet", key)
	receiver.OnParametersSet()
}

func recoverHook(hook, key string) {
	if rec := recover(); rec != nil {
		console.Error(fmt.Sprintf("%s panic in component %s: %v", hook, key, rec))
	}
}
