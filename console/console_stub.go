//go:build !js && !wasm
// +build !js,!wasm

package console

import "go.uber.org/zap"

// Native builds route console output to the global zap logger, so the
// same component code logs to the browser console under WASM and to the
// process log on the server. Install a logger with zap.ReplaceGlobals.

// Log writes an info entry.
func Log(args ...any) {
	zap.S().Info(args...)
}

// Warn writes a warning entry.
func Warn(args ...any) {
	zap.S().Warn(args...)
}

// Error writes an error entry.
func Error(args ...any) {
	zap.S().Error(args...)
}
