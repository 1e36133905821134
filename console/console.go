//go:build js || wasm

// Package console writes diagnostics to the host log: the browser console
// in WASM builds and the global zap logger otherwise.
package console

import (
	"syscall/js"
)

func write(level string, args []any) {
	js.Global().Get("console").Call(level, args...)
}

func Log(args ...any) {
	write("log", args)
}

func Warn(args ...any) {
	write("warn", args)
}

func Error(args ...any) {
	write("error", args)
}
