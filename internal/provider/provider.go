// Package provider implements definition lookup for words: typed adapters
// for the Free Dictionary API and Datamuse, an optional Gemini-backed
// adapter, and a chain that tries sources in order.
package provider

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/recite/internal/domain"
)

// ErrNoDefinition is returned when a provider (or the whole chain) has no
// definition for a word. Network failures, non-200 responses, and unparseable
// bodies all collapse into this sentinel from the caller's point of view;
// the underlying cause is preserved via wrapping for logs.
var ErrNoDefinition = errors.New("no definition found")

// Provider defines the interface for definition lookup.
//
// Lookup returns a payload already capped to domain.MaxMeanings meanings and
// domain.MaxExamples examples; the cap is the provider's responsibility, not
// the caller's. A source with nothing to offer returns ErrNoDefinition.
type Provider interface {
	Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error)
}

// Chain tries each provider in order and returns the first non-empty result.
// Individual provider failures are logged and swallowed; only when every
// source comes up empty does the chain return ErrNoDefinition.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a provider chain. Nil providers are skipped.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.Default()
	}

	chain := &Chain{logger: logger}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// Lookup implements Provider.
func (c *Chain) Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error) {
	for _, p := range c.providers {
		payload, err := p.Lookup(ctx, word)
		if err != nil {
			c.logger.DebugContext(ctx, "provider lookup failed, trying next source",
				"word", word, "error", err)
			continue
		}
		return payload, nil
	}

	return nil, ErrNoDefinition
}
