package main

import (
	"context"
	"embed"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/events"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {

	if config.IsDevelopment() {
		if err := utils.LoadEnv(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	store, err := config.Open()
	if err != nil {
		log.Fatalf("resolve app data directory: %v", err)
	}

	app := NewApp(store)
	svc := services.NewServices(store)

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "Inkwell",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "Inkwell",
		},
		BackgroundColour: &options.RGBA{R: 250, G: 248, B: 240, A: 1},
		OnStartup: func(ctx context.Context) {
			events.EnableRuntimeEmitter()
			app.startup(ctx)
			svc.Startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
			svc.Database,
			svc.Settings,
			svc.Transfer,
			svc.Keyring,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
