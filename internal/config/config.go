package config

// AIProvider selects the wire dialect the frontend AI client speaks. The
// backend only stores it; no provider connection is ever opened here.
type AIProvider string

const (
	ProviderOpenAICompatible AIProvider = "OpenAICompatible"
	ProviderAnthropic        AIProvider = "Anthropic"
	ProviderGoogle           AIProvider = "Google"
	ProviderOllama           AIProvider = "Ollama"
)

const (
	DefaultBaseURL = "https://api.deepseek.com/v1"
	DefaultModel   = "deepseek-chat"
)

// ParseProvider maps a provider name to a known AIProvider. Unknown or empty
// strings fall back to OpenAICompatible so old or hand-edited configs never
// block loading.
func ParseProvider(s string) AIProvider {
	switch s {
	case string(ProviderAnthropic):
		return ProviderAnthropic
	case string(ProviderGoogle):
		return ProviderGoogle
	case string(ProviderOllama):
		return ProviderOllama
	default:
		return ProviderOpenAICompatible
	}
}

func knownProvider(s string) bool {
	switch AIProvider(s) {
	case ProviderOpenAICompatible, ProviderAnthropic, ProviderGoogle, ProviderOllama:
		return true
	}
	return false
}

// AISettings holds the connection settings the frontend AI client consumes.
type AISettings struct {
	Provider AIProvider `json:"provider"`
	BaseURL  string     `json:"base_url"`
	APIKey   string     `json:"api_key"`
	Model    string     `json:"model"`
}

// AppConfig is the single persisted configuration document. DatabasePath is
// nil when the default location under the app data directory is in use.
type AppConfig struct {
	DatabasePath *string    `json:"database_path"`
	AISettings   AISettings `json:"ai_settings"`
}

func DefaultAISettings() AISettings {
	return AISettings{
		Provider: ProviderOpenAICompatible,
		BaseURL:  DefaultBaseURL,
		APIKey:   "",
		Model:    DefaultModel,
	}
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		DatabasePath: nil,
		AISettings:   DefaultAISettings(),
	}
}
