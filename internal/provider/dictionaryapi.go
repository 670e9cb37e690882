package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// DefaultDictionaryAPIBaseURL is the public Free Dictionary API endpoint.
const DefaultDictionaryAPIBaseURL = "https://api.dictionaryapi.dev"

// apiEntry represents a single entry from the Free Dictionary API response.
// The API returns an array of entries (one per etymology).
type apiEntry struct {
	Word     string       `json:"word"`
	Phonetic string       `json:"phonetic"`
	Meanings []apiMeaning `json:"meanings"`
}

// apiMeaning represents a group of definitions sharing a part of speech.
type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

// apiDefinition represents a single definition with an optional example.
type apiDefinition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// DictionaryAPIClient looks up definitions from the Free Dictionary API
// (dictionaryapi.dev). It is the primary source in the lookup chain.
type DictionaryAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDictionaryAPIClient creates a client for the given base URL with the
// given request timeout. Empty baseURL falls back to the public endpoint.
func NewDictionaryAPIClient(baseURL string, timeout time.Duration, logger *slog.Logger) *DictionaryAPIClient {
	if baseURL == "" {
		baseURL = DefaultDictionaryAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DictionaryAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Lookup implements Provider. The payload keeps the first three definitions
// and first two examples across all meanings, preserving API order.
func (c *DictionaryAPIClient) Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error) {
	endpoint := fmt.Sprintf("%s/api/v2/entries/en/%s", c.baseURL, url.PathEscape(word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrNoDefinition, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDefinition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: dictionary API returned status %s", ErrNoDefinition, resp.Status)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrNoDefinition, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrNoDefinition)
	}

	entry := entries[0]
	var meanings, examples []string
	for _, meaning := range entry.Meanings {
		for _, def := range meaning.Definitions {
			if def.Definition != "" && len(meanings) < domain.MaxMeanings {
				meanings = append(meanings, def.Definition)
			}
			if def.Example != "" && len(examples) < domain.MaxExamples {
				examples = append(examples, def.Example)
			}
		}
	}

	if len(meanings) == 0 {
		return nil, fmt.Errorf("%w: entry has no definitions", ErrNoDefinition)
	}

	c.logger.DebugContext(ctx, "dictionary API lookup succeeded",
		"word", word, "meanings", len(meanings), "examples", len(examples))

	return &domain.DefinitionPayload{
		Word:     word,
		Meanings: meanings,
		Examples: examples,
		Phonetic: entry.Phonetic,
		Source:   domain.SourceDictionaryAPI,
	}, nil
}
