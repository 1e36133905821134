//go:build js || wasm
// +build js wasm

package main

import (
	"context"
	"syscall/js"

	"github.com/jonboulle/clockwork"

	"github.com/vcrobe/nojs-clock/appcomponents"
	"github.com/vcrobe/nojs-clock/console"
	"github.com/vcrobe/nojs-clock/runtime"
	"github.com/vcrobe/nojs-clock/vdom"
)

func main() {
	// 1. Create the event loop every render and tick runs on
	loop := runtime.NewLoop(64)

	// 2. Timers use the browser's clock and hand their ticks to the loop
	scheduler := runtime.NewScheduler(clockwork.NewRealClock(), loop)

	// 3. Create the engine rendering into #app
	engine := runtime.NewEngine(vdom.NewDOMSurface("#app"), scheduler)
	engine.SetRoot(appcomponents.NewApp(), "app")

	// 4. Mount once the loop is running
	loop.Post(func() {
		if err := engine.RenderRoot(); err != nil {
			console.Error("Error mounting app: ", err.Error())
		}
	})

	// 5. Tear down when the page goes away. JS callbacks must not block,
	// so the unmount is queued without waiting for room on the loop.
	onUnload := js.FuncOf(func(this js.Value, args []js.Value) any {
		teardown := func() {
			if err := engine.Unmount(); err != nil {
				console.Warn("Error unmounting app: ", err.Error())
			}
			scheduler.Close()
			loop.Stop()
		}
		if !loop.TryPost(teardown) {
			// Queue full: stop the timers now, the page is going away anyway
			scheduler.Close()
			loop.Stop()
		}
		return nil
	})
	defer onUnload.Release()
	js.Global().Call("addEventListener", "beforeunload", onUnload)

	// Keep the Go program running
	_ = loop.Run(context.Background())
}
