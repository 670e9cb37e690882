package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// DefaultDatamuseBaseURL is the public Datamuse endpoint.
const DefaultDatamuseBaseURL = "https://api.datamuse.com"

// datamuseWord is one result from the Datamuse words endpoint. Definitions
// arrive as strings of the form "n\tthe definition", with the part of speech
// before a tab.
type datamuseWord struct {
	Word string   `json:"word"`
	Defs []string `json:"defs"`
}

// DatamuseClient looks up definitions from the Datamuse API. It is the
// fallback source: a flatter response shape with no examples or phonetics,
// capped to a single meaning.
type DatamuseClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDatamuseClient creates a client for the given base URL with the given
// request timeout. Empty baseURL falls back to the public endpoint.
func NewDatamuseClient(baseURL string, timeout time.Duration, logger *slog.Logger) *DatamuseClient {
	if baseURL == "" {
		baseURL = DefaultDatamuseBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DatamuseClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Lookup implements Provider.
func (c *DatamuseClient) Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error) {
	endpoint := fmt.Sprintf("%s/words?sp=%s&md=d&max=1", c.baseURL, url.QueryEscape(word))

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
		return nil, fmt.Errorf("%w: datamuse returned status %s", ErrNoDefinition, resp.Status)
	}

	var results []datamuseWord
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrNoDefinition, err)
	}

	if len(results) == 0 || len(results[0].Defs) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrNoDefinition)
	}

	meaning := stripPartOfSpeech(results[0].Defs[0])
	if meaning == "" {
		return nil, fmt.Errorf("%w: blank definition", ErrNoDefinition)
	}

	c.logger.DebugContext(ctx, "datamuse lookup succeeded", "word", word)

	return &domain.DefinitionPayload{
		Word:     word,
		Meanings: []string{meaning},
		Source:   domain.SourceDatamuse,
	}, nil
}

// stripPartOfSpeech drops the "pos\t" prefix Datamuse puts in front of each
// definition, if present.
func stripPartOfSpeech(def string) string {
	if _, rest, found := strings.Cut(def, "\t"); found {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(def)
}
