package main

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm/logger"
)

// App struct
type App struct {
	ctx     context.Context
	store   *config.Store
	dbClose func() error
}

// NewApp creates a new App application struct
func NewApp(store *config.Store) *App {
	return &App{store: store}
}

// startup is called when the app starts. The context is saved so we can call
// the runtime methods. The sqlite handle the UI-layer SQL driver works
// against is opened here at the effective database path.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	dbPath := a.store.DatabasePath()
	runtime.LogInfo(ctx, "database url: "+a.store.DatabaseURL())

	logLevel := logger.Warn
	if config.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := database.Init(database.Config{
		Path:     dbPath,
		LogLevel: logLevel,
	})
	if err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to open database: %v", err))
		return
	}

	// Capture DB close for graceful shutdown
	if sqlDB, err := db.DB(); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to get sql.DB: %v", err))
	} else {
		a.dbClose = sqlDB.Close
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// SelectDirectory opens a native directory picker dialog
func (a *App) SelectDirectory() (string, error) {
	dir, err := runtime.OpenDirectoryDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Directory",
	})
	if err != nil {
		return "", err
	}
	return dir, nil
}

// SelectDatabaseFile opens a native file picker filtered to database files
func (a *App) SelectDatabaseFile() (string, error) {
	file, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Select Database File",
		Filters: []runtime.FileFilter{
			{DisplayName: "SQLite Database (*.db)", Pattern: "*.db"},
		},
	})
	if err != nil {
		return "", err
	}
	return file, nil
}
