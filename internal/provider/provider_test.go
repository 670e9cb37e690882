package provider

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/recite/internal/domain"
)

// stubProvider returns a fixed payload or error and records whether it was called.
type stubProvider struct {
	payload *domain.DefinitionPayload
	err     error
	called  bool
}

func (s *stubProvider) Lookup(ctx context.Context, word string) (*domain.DefinitionPayload, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func stubPayload(source domain.Source) *domain.DefinitionPayload {
	return &domain.DefinitionPayload{
		Word:     "ephemeral",
		Meanings: []string{"lasting a short time"},
		Source:   source,
	}
}

func TestChainFirstSourceWins(t *testing.T) {
	t.Parallel()

	first := &stubProvider{payload: stubPayload(domain.SourceDictionaryAPI)}
	second := &stubProvider{payload: stubPayload(domain.SourceDatamuse)}
	chain := NewChain(nil, first, second)

	payload, err := chain.Lookup(context.Background(), "ephemeral")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceDictionaryAPI, payload.Source)
	assert.True(t, first.called)
	assert.False(t, second.called, "second source must not be consulted when the first succeeds")
}

func TestChainFallsBack(t *testing.T) {
	t.Parallel()

	first := &stubProvider{err: fmt.Errorf("%w: 404", ErrNoDefinition)}
	second := &stubProvider{payload: stubPayload(domain.SourceDatamuse)}
	chain := NewChain(nil, first, second)

	payload, err := chain.Lookup(context.Background(), "ephemeral")

	require.NoError(t, err)
	assert.Equal(t, domain.SourceDatamuse, payload.Source)
	assert.True(t, first.called)
	assert.True(t, second.called)
}

func TestChainAllSourcesFail(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil,
		&stubProvider{err: fmt.Errorf("%w: down", ErrNoDefinition)},
		&stubProvider{err: fmt.Errorf("%w: empty", ErrNoDefinition)},
	)

	_, err := chain.Lookup(context.Background(), "ephemeral")
	assert.ErrorIs(t, err, ErrNoDefinition)
}

func TestChainSkipsNilProviders(t *testing.T) {
	t.Parallel()

	second := &stubProvider{payload: stubPayload(domain.SourceDatamuse)}
	chain := NewChain(nil, nil, second)

	payload, err := chain.Lookup(context.Background(), "ephemeral")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceDatamuse, payload.Source)
}

func TestChainEmpty(t *testing.T) {
	t.Parallel()

	chain := NewChain(nil)
	_, err := chain.Lookup(context.Background(), "ephemeral")
	assert.ErrorIs(t, err, ErrNoDefinition)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGeminiProvider(context.Background(), "", DefaultGeminiModel, nil)
	assert.Error(t, err)
}
