//go:build prod

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDataDir returns the application data directory for production mode.
// Config and database are stored in the user's config directory.
func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}

	appDir := filepath.Join(configDir, "inkwell")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", fmt.Errorf("create app data dir: %w", err)
	}

	return appDir, nil
}

func IsDevelopment() bool {
	return false
}
