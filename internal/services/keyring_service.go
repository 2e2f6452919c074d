package services

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zalando/go-keyring"
)

const keyringServiceName = "inkwell"

func GetOS() string {
	return runtime.GOOS
}

// KeyringService stores per-provider API keys in the OS keychain for users
// who prefer not to keep keys in config.json. The provider list itself lives
// in providers.json beside the config file so stored keys can be enumerated.
type KeyringService struct {
	dataDir string
}

func NewKeyringService(dataDir string) *KeyringService {
	return &KeyringService{dataDir: dataDir}
}

func (s *KeyringService) StoreApiKey(provider string, apiKey string) error {
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}

	if err := keyring.Set(keyringServiceName, provider, apiKey); err != nil {
		return err
	}

	return s.addProvider(provider)
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	return keyring.Get(keyringServiceName, provider)
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}

	if err := keyring.Delete(keyringServiceName, provider); err != nil {
		return err
	}

	return s.removeProvider(provider)
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	providers, err := s.loadProviders()
	if err != nil {
		return nil, err
	}

	var results []map[string]string
	for _, provider := range providers {
		if _, err := keyring.Get(keyringServiceName, provider); err != nil {
			continue
		}

		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Inkwell",
		})
	}
	return results, nil
}

func (s *KeyringService) providersConfigPath() (string, error) {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(s.dataDir, "providers.json"), nil
}

func (s *KeyringService) loadProviders() ([]string, error) {
	path, err := s.providersConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var providers []string
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (s *KeyringService) saveProviders(providers []string) error {
	path, err := s.providersConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(providers, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (s *KeyringService) addProvider(provider string) error {
	providers, err := s.loadProviders()
	if err != nil {
		return err
	}

	for _, p := range providers {
		if p == provider {
			return nil
		}
	}

	providers = append(providers, provider)
	return s.saveProviders(providers)
}

func (s *KeyringService) removeProvider(provider string) error {
	providers, err := s.loadProviders()
	if err != nil {
		return err
	}

	var remaining []string
	for _, p := range providers {
		if p != provider {
			remaining = append(remaining, p)
		}
	}

	return s.saveProviders(remaining)
}
