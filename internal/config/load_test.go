package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load fills in the documented defaults when
// no environment variables are set.
func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so a developer's recite.yaml is not picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "word_memory.json", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://api.dictionaryapi.dev", cfg.Provider.DictionaryBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.DictionaryTimeout)
	assert.Equal(t, "https://api.datamuse.com", cfg.Provider.DatamuseBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Provider.DatamuseTimeout)
	assert.Empty(t, cfg.Provider.GeminiAPIKey)
}

// TestLoadEnvOverrides verifies that RECITE_-prefixed environment variables
// take precedence over defaults.
func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RECITE_STORE_BACKEND", "sqlite")
	t.Setenv("RECITE_STORE_PATH", "/tmp/words.db")
	t.Setenv("RECITE_LOG_LEVEL", "debug")
	t.Setenv("RECITE_PROVIDER_DICTIONARY_TIMEOUT", "3s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/words.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3*time.Second, cfg.Provider.DictionaryTimeout)
}

// TestLoadRejectsInvalidValues verifies struct-tag validation failures.
func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown backend", key: "RECITE_STORE_BACKEND", value: "postgres"},
		{name: "unknown log level", key: "RECITE_LOG_LEVEL", value: "loud"},
		{name: "bad provider url", key: "RECITE_PROVIDER_DICTIONARY_BASE_URL", value: "not a url"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
