package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, s *Store, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.ConfigFilePath(), []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := NewStore(t.TempDir())

	cfg := s.Load()

	assert.Nil(t, cfg.DatabasePath)
	assert.Equal(t, ProviderOpenAICompatible, cfg.AISettings.Provider)
	assert.Equal(t, DefaultBaseURL, cfg.AISettings.BaseURL)
	assert.Equal(t, "", cfg.AISettings.APIKey)
	assert.Equal(t, DefaultModel, cfg.AISettings.Model)

	// defaults must come back without anything being written
	_, err := os.Stat(s.ConfigFilePath())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSaveRoundTripIsByteStable(t *testing.T) {
	s := NewStore(t.TempDir())

	path := "/tmp/custom/notes.db"
	cfg := AppConfig{
		DatabasePath: &path,
		AISettings: AISettings{
			Provider: ProviderAnthropic,
			BaseURL:  "https://api.anthropic.com/v1",
			APIKey:   "sk-test",
			Model:    "claude-sonnet",
		},
	}
	require.NoError(t, s.Save(cfg))
	first := readFile(t, s.ConfigFilePath())

	loaded := s.Load()
	assert.Equal(t, cfg, loaded)

	require.NoError(t, s.Save(loaded))
	second := readFile(t, s.ConfigFilePath())
	assert.Equal(t, first, second)
}

func TestLoadMigratesLegacyDocument(t *testing.T) {
	s := NewStore(t.TempDir())
	writeConfigFile(t, s, `{"database_path": "/x/y.db", "ai_settings": {"base_url": "https://h", "model": "m"}}`)

	cfg := s.Load()

	require.NotNil(t, cfg.DatabasePath)
	assert.Equal(t, "/x/y.db", *cfg.DatabasePath)
	assert.Equal(t, "https://h/v1", cfg.AISettings.BaseURL)
	assert.Equal(t, ProviderOpenAICompatible, cfg.AISettings.Provider)
	assert.Equal(t, "", cfg.AISettings.APIKey)
	assert.Equal(t, "m", cfg.AISettings.Model)

	// the migrated document was persisted and now parses strictly
	raw, err := os.ReadFile(s.ConfigFilePath())
	require.NoError(t, err)
	migrated, ok := decodeStrict(raw)
	require.True(t, ok)
	assert.Equal(t, cfg, migrated)
}

func TestLoadMigratesUnknownProvider(t *testing.T) {
	s := NewStore(t.TempDir())
	writeConfigFile(t, s, `{
		"database_path": null,
		"ai_settings": {"provider": "Zhipu", "base_url": "https://open.bigmodel.cn/api/paas/v4", "api_key": "k", "model": "glm-4"}
	}`)

	cfg := s.Load()

	assert.Nil(t, cfg.DatabasePath)
	assert.Equal(t, ProviderOpenAICompatible, cfg.AISettings.Provider)
	assert.Equal(t, "https://open.bigmodel.cn/api/paas/v4", cfg.AISettings.BaseURL)
	assert.Equal(t, "k", cfg.AISettings.APIKey)
	assert.Equal(t, "glm-4", cfg.AISettings.Model)
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare host", "https://h", "https://h/v1"},
		{"trailing slash", "https://h/", "https://h/v1"},
		{"already v1", "https://api.deepseek.com/v1", "https://api.deepseek.com/v1"},
		{"contains v4", "https://open.bigmodel.cn/api/paas/v4", "https://open.bigmodel.cn/api/paas/v4"},
	}

	for _, tc := range cases {
		if got := normalizeBaseURL(tc.input); got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}

func TestLoadExplicitNullDatabasePath(t *testing.T) {
	s := NewStore(t.TempDir())
	writeConfigFile(t, s, `{
		"database_path": null,
		"ai_settings": {"provider": "Ollama", "base_url": "http://localhost:11434/v1", "api_key": "", "model": "llama3"}
	}`)

	cfg := s.Load()

	assert.Nil(t, cfg.DatabasePath)
	assert.Equal(t, ProviderOllama, cfg.AISettings.Provider)
}

func TestLoadCorruptFileBacksUpAndRebuilds(t *testing.T) {
	s := NewStore(t.TempDir())
	corrupt := `{{{ this is not json`
	writeConfigFile(t, s, corrupt)

	cfg := s.Load()

	assert.Nil(t, cfg.DatabasePath)
	assert.Equal(t, DefaultAISettings(), cfg.AISettings)

	// original bytes preserved at the backup path
	assert.Equal(t, corrupt, readFile(t, s.configBackupPath()))

	// the rewritten file parses strictly on the next load
	raw, err := os.ReadFile(s.ConfigFilePath())
	require.NoError(t, err)
	_, ok := decodeStrict(raw)
	assert.True(t, ok)
	assert.Equal(t, cfg, s.Load())
}

func TestLoadCorruptFileRecoversPathFromBackup(t *testing.T) {
	s := NewStore(t.TempDir())
	backup := `{"database_path": "/q/z.db"}`
	require.NoError(t, os.WriteFile(s.configBackupPath(), []byte(backup), 0644))
	writeConfigFile(t, s, `garbage`)

	cfg := s.Load()

	require.NotNil(t, cfg.DatabasePath)
	assert.Equal(t, "/q/z.db", *cfg.DatabasePath)

	// an existing backup is never overwritten during recovery
	assert.Equal(t, backup, readFile(t, s.configBackupPath()))
}

func TestDatabasePathDefault(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	assert.Equal(t, filepath.Join(dir, DatabaseFileName), s.DatabasePath())
}

func TestDatabasePathOverride(t *testing.T) {
	s := NewStore(t.TempDir())
	custom := filepath.Join(t.TempDir(), "notes.db")
	cfg := DefaultAppConfig()
	cfg.DatabasePath = &custom
	require.NoError(t, s.Save(cfg))

	assert.Equal(t, custom, s.DatabasePath())
}

func TestDatabasePathCreatesMissingOverrideDir(t *testing.T) {
	s := NewStore(t.TempDir())
	parent := filepath.Join(t.TempDir(), "sub", "dir")
	custom := filepath.Join(parent, "notes.db")
	cfg := DefaultAppConfig()
	cfg.DatabasePath = &custom
	require.NoError(t, s.Save(cfg))

	assert.Equal(t, custom, s.DatabasePath())

	info, err := os.Stat(parent)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDatabasePathFallsBackWhenOverrideDirUncreatable(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	// a regular file where the parent directory should go makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	custom := filepath.Join(blocker, "sub", "notes.db")

	cfg := DefaultAppConfig()
	cfg.DatabasePath = &custom
	require.NoError(t, s.Save(cfg))

	assert.Equal(t, filepath.Join(dir, DatabaseFileName), s.DatabasePath())

	// the stored override survives the fallback
	stored := s.Load()
	require.NotNil(t, stored.DatabasePath)
	assert.Equal(t, custom, *stored.DatabasePath)

	// once the directory problem is fixed, the override wins again
	require.NoError(t, os.Remove(blocker))
	assert.Equal(t, custom, s.DatabasePath())
}

func TestChangeDatabaseLocationWithoutSourceDatabase(t *testing.T) {
	s := NewStore(t.TempDir())
	newDir := filepath.Join(t.TempDir(), "moved")

	newPath, err := s.ChangeDatabaseLocation(newDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(newDir, DatabaseFileName), newPath)

	// no database file is conjured at the target
	_, statErr := os.Stat(newPath)
	assert.True(t, os.IsNotExist(statErr))

	// but the config now points there
	cfg := s.Load()
	require.NotNil(t, cfg.DatabasePath)
	assert.Equal(t, newPath, *cfg.DatabasePath)
}

func TestChangeDatabaseLocationBacksUpExistingTarget(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, s.Save(DefaultAppConfig()))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DatabaseFileName), []byte("source-bytes"), 0644))

	newDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(newDir, DatabaseFileName), []byte("target-bytes"), 0644))

	newPath, err := s.ChangeDatabaseLocation(newDir)
	require.NoError(t, err)

	assert.Equal(t, "source-bytes", readFile(t, newPath))
	assert.Equal(t, "target-bytes", readFile(t, newPath+".backup"))

	// config was backed up before anything else
	_, statErr := os.Stat(s.configBackupPath())
	assert.NoError(t, statErr)
}

func TestChangeDatabaseLocationLeavesSourceInPlace(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	source := filepath.Join(dir, DatabaseFileName)
	require.NoError(t, os.WriteFile(source, []byte("source-bytes"), 0644))

	_, err := s.ChangeDatabaseLocation(filepath.Join(t.TempDir(), "moved"))
	require.NoError(t, err)

	assert.Equal(t, "source-bytes", readFile(t, source))
}

func TestDatabaseExistsAndSize(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	exists, err := s.DatabaseExists()
	require.NoError(t, err)
	assert.False(t, exists)

	size, err := s.DatabaseSize()
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DatabaseFileName), []byte("12345"), 0644))

	exists, err = s.DatabaseExists()
	require.NoError(t, err)
	assert.True(t, exists)

	size, err = s.DatabaseSize()
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
}

func TestCopyDatabase(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	target := filepath.Join(t.TempDir(), "copy.db")

	err := s.CopyDatabase(target)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DatabaseFileName), []byte("payload"), 0644))
	require.NoError(t, s.CopyDatabase(target))
	assert.Equal(t, "payload", readFile(t, target))
}

func TestDatabaseURL(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	assert.Equal(t, "sqlite:"+filepath.Join(dir, DatabaseFileName), s.DatabaseURL())
}
