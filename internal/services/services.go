package services

import (
	"context"

	"inkwell/internal/config"
)

// Services aggregates the backend services bound to the frontend.
type Services struct {
	Database DatabaseService
	Settings SettingsService
	Transfer TransferService
	Keyring  *KeyringService
}

// NewServices constructs the service container over a single config store.
func NewServices(store *config.Store) *Services {
	return &Services{
		Database: NewDatabaseService(store),
		Settings: NewSettingsService(store),
		Transfer: NewTransferService(),
		Keyring:  NewKeyringService(store.Dir()),
	}
}

// Startup hands the Wails context to every service that needs it.
func (s *Services) Startup(ctx context.Context) {
	s.Database.Startup(ctx)
	s.Settings.Startup(ctx)
	s.Transfer.Startup(ctx)
}
