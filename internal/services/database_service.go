package services

import (
	"context"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/events"
)

// DatabaseInfo is the summary the settings screen renders.
type DatabaseInfo struct {
	Path          string `json:"path"`
	Exists        bool   `json:"exists"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"size_formatted"`
	IsCustom      bool   `json:"is_custom"`
}

// DatabaseService exposes database file location management to the frontend.
type DatabaseService interface {
	Startup(ctx context.Context)
	GetDatabasePath() string
	GetDatabaseUrl() string
	GetConfigPath() string
	GetDatabaseInfo() (*DatabaseInfo, error)
	CopyDatabaseTo(targetPath string) error
	ChangeDatabaseLocation(newDir string) (string, error)
}

type databaseService struct {
	store *config.Store
	ctx   context.Context
}

func NewDatabaseService(store *config.Store) DatabaseService {
	return &databaseService{store: store}
}

func (s *databaseService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *databaseService) GetDatabasePath() string {
	return s.store.DatabasePath()
}

func (s *databaseService) GetDatabaseUrl() string {
	return s.store.DatabaseURL()
}

func (s *databaseService) GetConfigPath() string {
	return s.store.ConfigFilePath()
}

func (s *databaseService) GetDatabaseInfo() (*DatabaseInfo, error) {
	path := s.store.DatabasePath()
	exists, err := s.store.DatabaseExists()
	if err != nil {
		return nil, err
	}
	size, err := s.store.DatabaseSize()
	if err != nil {
		return nil, err
	}
	cfg := s.store.Load()

	return &DatabaseInfo{
		Path:          path,
		Exists:        exists,
		Size:          size,
		SizeFormatted: formatSize(size),
		IsCustom:      cfg.DatabasePath != nil,
	}, nil
}

func (s *databaseService) CopyDatabaseTo(targetPath string) error {
	return s.store.CopyDatabase(targetPath)
}

func (s *databaseService) ChangeDatabaseLocation(newDir string) (string, error) {
	newPath, err := s.store.ChangeDatabaseLocation(newDir)
	if err != nil {
		return "", err
	}

	events.Emit(s.ctx, events.DatabaseRelocated,
		events.NewAppEvent(events.EventSuccess, "database moved to "+newPath))
	return newPath, nil
}

func formatSize(bytes int64) string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
