package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	ConfigFileName   = "config.json"
	DatabaseFileName = "inkwell.db"
)

// Store owns the JSON config file and the database file locations inside one
// application data directory. Every accessor re-reads the file; the file on
// disk is the only shared state.
type Store struct {
	dir string
}

// NewStore builds a store over an explicit data directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Open resolves the platform application data directory and builds a store
// over it. A resolution failure is fatal to startup and is returned as-is.
func Open() (*Store, error) {
	dir, err := AppDataDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// Dir returns the application data directory this store operates in.
func (s *Store) Dir() string {
	return s.dir
}

// ConfigFilePath returns the location of the persisted config document.
func (s *Store) ConfigFilePath() string {
	return filepath.Join(s.dir, ConfigFileName)
}

func (s *Store) configBackupPath() string {
	return s.ConfigFilePath() + ".backup"
}

// DefaultDatabasePath returns the fixed database location under the app data
// directory, creating the directory if it is missing.
func (s *Store) DefaultDatabasePath() string {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		log.Printf("create app data dir %s: %v", s.dir, err)
	}
	return filepath.Join(s.dir, DatabaseFileName)
}

// wire types mirror the on-disk schema with presence information so a loose
// legacy document is not mistaken for a current one.
type wireAISettings struct {
	Provider *string `json:"provider"`
	BaseURL  *string `json:"base_url"`
	APIKey   *string `json:"api_key"`
	Model    *string `json:"model"`
}

type wireConfig struct {
	DatabasePath *string         `json:"database_path"`
	AISettings   *wireAISettings `json:"ai_settings"`
}

// decodeStrict parses raw against the current schema. An absent ai_settings
// object defaults; a present one must carry base_url, api_key and model, and
// a provider (when present) must name a known variant.
func decodeStrict(raw []byte) (AppConfig, bool) {
	var w wireConfig
	if err := json.Unmarshal(raw, &w); err != nil {
		return AppConfig{}, false
	}

	cfg := AppConfig{DatabasePath: w.DatabasePath, AISettings: DefaultAISettings()}
	if w.AISettings == nil {
		return cfg, true
	}

	ai := w.AISettings
	if ai.BaseURL == nil || ai.APIKey == nil || ai.Model == nil {
		return AppConfig{}, false
	}
	if ai.Provider != nil && !knownProvider(*ai.Provider) {
		return AppConfig{}, false
	}

	cfg.AISettings.BaseURL = *ai.BaseURL
	cfg.AISettings.APIKey = *ai.APIKey
	cfg.AISettings.Model = *ai.Model
	if ai.Provider != nil {
		cfg.AISettings.Provider = AIProvider(*ai.Provider)
	}
	return cfg, true
}

// Load reads the config document, healing whatever it finds. It never fails
// the caller: a missing file yields defaults without writing, a legacy shape
// is migrated in place, and an unparseable file is backed up and replaced by
// a fresh default document.
func (s *Store) Load() AppConfig {
	path := s.ConfigFilePath()

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("read config file: %v", err)
		}
		return DefaultAppConfig()
	}

	if cfg, ok := decodeStrict(raw); ok {
		return cfg
	}

	if gjson.ValidBytes(raw) && gjson.ParseBytes(raw).IsObject() {
		log.Printf("config file failed strict decode, migrating legacy document")
		return s.migrateLegacy(raw)
	}

	log.Printf("config file is not valid JSON, rebuilding from defaults")
	return s.recoverCorrupt(raw)
}

// migrateLegacy pulls each field independently out of a loose JSON object,
// applying defaults for anything missing or mistyped, then persists the
// migrated document over the original.
func (s *Store) migrateLegacy(raw []byte) AppConfig {
	cfg := DefaultAppConfig()

	if dbPath := gjson.GetBytes(raw, "database_path"); dbPath.Type == gjson.String && dbPath.Str != "" {
		path := dbPath.Str
		cfg.DatabasePath = &path
	}

	if ai := gjson.GetBytes(raw, "ai_settings"); ai.Exists() {
		if baseURL := ai.Get("base_url"); baseURL.Type == gjson.String {
			cfg.AISettings.BaseURL = normalizeBaseURL(baseURL.Str)
		}
		if apiKey := ai.Get("api_key"); apiKey.Type == gjson.String {
			cfg.AISettings.APIKey = apiKey.Str
		}
		if model := ai.Get("model"); model.Type == gjson.String {
			cfg.AISettings.Model = model.Str
		}
		if provider := ai.Get("provider"); provider.Type == gjson.String {
			cfg.AISettings.Provider = ParseProvider(provider.Str)
		}
	}

	if err := s.Save(cfg); err != nil {
		log.Printf("save migrated config: %v", err)
	}
	return cfg
}

// normalizeBaseURL appends the /v1 version segment legacy configs omitted,
// leaving URLs that already carry /v1 or /v4 untouched.
func normalizeBaseURL(baseURL string) string {
	if strings.HasSuffix(baseURL, "/v1") || strings.Contains(baseURL, "/v4") {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/v1"
}

// recoverCorrupt handles a config file that is not JSON at all: recover the
// database path from the sibling backup when one exists, preserve the corrupt
// bytes as that backup when one does not, and rewrite defaults. Every step is
// best-effort; the caller always gets a usable config.
func (s *Store) recoverCorrupt(raw []byte) AppConfig {
	backupPath := s.configBackupPath()

	cfg := DefaultAppConfig()
	if backup, err := os.ReadFile(backupPath); err == nil {
		if dbPath := gjson.GetBytes(backup, "database_path"); dbPath.Type == gjson.String && dbPath.Str != "" {
			log.Printf("recovered database path from config backup: %s", dbPath.Str)
			path := dbPath.Str
			cfg.DatabasePath = &path
		}
	} else if os.IsNotExist(err) {
		if writeErr := os.WriteFile(backupPath, raw, 0644); writeErr != nil {
			log.Printf("back up corrupt config file: %v", writeErr)
		} else {
			log.Printf("corrupt config file backed up to %s", backupPath)
		}
	}

	if err := s.Save(cfg); err != nil {
		log.Printf("save rebuilt config: %v", err)
	}
	return cfg
}

// Save writes the whole config document. The write is direct, not atomic;
// callers needing crash-safety must wrap it.
func (s *Store) Save(cfg AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(s.ConfigFilePath(), data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// DatabasePath resolves the effective database location. A stored override
// whose parent directory cannot be created falls back to the default for this
// call only; the override stays in the config so the user can fix the
// directory and retry.
func (s *Store) DatabasePath() string {
	cfg := s.Load()

	if cfg.DatabasePath != nil && *cfg.DatabasePath != "" {
		path := *cfg.DatabasePath
		parent := filepath.Dir(path)
		if _, err := os.Stat(parent); err == nil {
			return path
		}
		err := os.MkdirAll(parent, 0755)
		if err == nil {
			return path
		}
		log.Printf("create custom database dir %s: %v, falling back to default path", parent, err)
	}

	return s.DefaultDatabasePath()
}

// DatabaseURL returns the connection string handed to the UI-layer SQL driver.
func (s *Store) DatabaseURL() string {
	return "sqlite:" + s.DatabasePath()
}

// DatabaseExists reports whether a database file is present at the effective
// path.
func (s *Store) DatabaseExists() (bool, error) {
	_, err := os.Stat(s.DatabasePath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat database file: %w", err)
}

// DatabaseSize returns the database file size in bytes, zero when the file
// does not exist.
func (s *Store) DatabaseSize() (int64, error) {
	info, err := os.Stat(s.DatabasePath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat database file: %w", err)
	}
	return info.Size(), nil
}

// CopyDatabase copies the current database file to targetPath without
// touching the config.
func (s *Store) CopyDatabase(targetPath string) error {
	currentPath := s.DatabasePath()
	if _, err := os.Stat(currentPath); err != nil {
		return fmt.Errorf("current database file does not exist: %w", err)
	}
	if err := copyFile(currentPath, targetPath); err != nil {
		return fmt.Errorf("copy database file: %w", err)
	}
	return nil
}

// ChangeDatabaseLocation moves the database to newDir and points the config
// at it. The config is backed up before anything else and only updated after
// a successful copy, so a failure mid-way leaves both the original database
// and the stored path untouched. The source file is never deleted.
func (s *Store) ChangeDatabaseLocation(newDir string) (string, error) {
	currentPath := s.DatabasePath()
	newPath := filepath.Join(newDir, DatabaseFileName)

	configPath := s.ConfigFilePath()
	if _, err := os.Stat(configPath); err == nil {
		if err := copyFile(configPath, s.configBackupPath()); err != nil {
			return "", fmt.Errorf("back up config file: %w", err)
		}
	}

	if err := os.MkdirAll(newDir, 0755); err != nil {
		return "", fmt.Errorf("create target directory: %w", err)
	}

	if _, err := os.Stat(currentPath); err == nil {
		if _, err := os.Stat(newPath); err == nil {
			backupPath := newPath + ".backup"
			log.Printf("target already holds a database, backing it up to %s", backupPath)
			if err := copyFile(newPath, backupPath); err != nil {
				return "", fmt.Errorf("back up existing file at target: %w", err)
			}
		}
		if err := copyFile(currentPath, newPath); err != nil {
			return "", fmt.Errorf("copy database file: %w", err)
		}
	}

	cfg := s.Load()
	cfg.DatabasePath = &newPath
	if err := s.Save(cfg); err != nil {
		return "", err
	}

	log.Printf("database location changed to %s", newPath)
	return newPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
