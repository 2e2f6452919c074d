//go:build !prod

package config

// AppDataDir returns the application data directory for development mode.
// Config and database live in the project root for easy access and debugging.
func AppDataDir() (string, error) {
	return ".", nil
}

func IsDevelopment() bool {
	return true
}
