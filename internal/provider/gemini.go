package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/phrazzld/recite/internal/domain"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// geminiPrompt asks for a strict JSON shape so the response can be decoded
// without scraping prose.
const geminiPrompt = `You are a dictionary. For the English word %q, respond with ONLY a JSON object, no markdown, in this exact shape:
{"meanings": ["up to 3 short definitions"], "examples": ["up to 2 short example sentences"], "phonetic": "IPA transcription or empty string"}
If the word is not a real English word, respond with {"meanings": []}.`

// geminiResponse is the JSON shape requested from the model.
type geminiResponse struct {
	Meanings []string `json:"meanings"`
	Examples []string `json:"examples"`
	Phonetic string   `json:"phonetic"`
}

// GeminiProvider asks a Gemini model for definitions. It sits at the end of
// the lookup chain and is only wired in when an API key is configured.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string, logger *slog.Logger) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Lookup implements Provider.
func (p *GeminiProvider) Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error) {
	prompt := fmt.Sprintf(geminiPrompt, word)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini call: %v", ErrNoDefinition, err)
	}

	text := strings.TrimSpace(resp.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed geminiResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding gemini response: %v", ErrNoDefinition, err)
	}

	if len(parsed.Meanings) == 0 {
		return nil, fmt.Errorf("%w: model knows no such word", ErrNoDefinition)
	}

	if len(parsed.Meanings) > domain.MaxMeanings {
		parsed.Meanings = parsed.Meanings[:domain.MaxMeanings]
	}
	if len(parsed.Examples) > domain.MaxExamples {
		parsed.Examples = parsed.Examples[:domain.MaxExamples]
	}

	p.logger.DebugContext(ctx, "gemini lookup succeeded", "word", word, "model", p.model)

	return &domain.DefinitionPayload{
		Word:     word,
		Meanings: parsed.Meanings,
		Examples: parsed.Examples,
		Phonetic: parsed.Phonetic,
		Source:   domain.SourceGemini,
	}, nil
}
