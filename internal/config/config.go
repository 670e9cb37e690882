package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
	Log      LogConfig      `mapstructure:"log"      validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// Backend is the persistence implementation: "file" or "sqlite".
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`

	// Path is the state file (file backend) or database file (sqlite backend).
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// ProviderConfig contains definition-provider settings. Base URLs are
// overridable so tests can point the clients at local servers.
type ProviderConfig struct {
	DictionaryBaseURL string        `mapstructure:"dictionary_base_url" validate:"required,url"`
	DictionaryTimeout time.Duration `mapstructure:"dictionary_timeout"  validate:"required"`
	DatamuseBaseURL   string        `mapstructure:"datamuse_base_url"   validate:"required,url"`
	DatamuseTimeout   time.Duration `mapstructure:"datamuse_timeout"    validate:"required"`

	// GeminiAPIKey enables the Gemini fallback provider when non-empty.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
}
