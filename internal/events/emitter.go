package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit forwards an event to the frontend. It is a no-op until the Wails
// runtime is available; main enables the runtime emitter on startup so
// services stay testable without a running app.
var Emit = func(ctx context.Context, name string, evt AppEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt AppEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt AppEvent)) {
	if f == nil {
		Emit = func(context.Context, string, AppEvent) {}
		return
	}
	Emit = f
}
