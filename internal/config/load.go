package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from defaults, an optional `recite.yaml` in the
// working directory or ~/.config/recite/, and environment variables with a
// RECITE_ prefix (RECITE_STORE_BACKEND, RECITE_LOG_LEVEL, ...). Environment
// variables take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults make the zero-setup case work out of the box.
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "word_memory.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("provider.dictionary_base_url", "https://api.dictionaryapi.dev")
	v.SetDefault("provider.dictionary_timeout", "10s")
	v.SetDefault("provider.datamuse_base_url", "https://api.datamuse.com")
	v.SetDefault("provider.datamuse_timeout", "5s")
	v.SetDefault("provider.gemini_api_key", "")
	v.SetDefault("provider.gemini_model", "")

	v.SetConfigName("recite")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/recite")

	v.SetEnvPrefix("RECITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
