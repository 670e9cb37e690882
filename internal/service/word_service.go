package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/domain/schedule"
	"github.com/phrazzld/recite/internal/provider"
	"github.com/phrazzld/recite/internal/store"
)

// WordService provides the add/review/list/export operations of the
// memorization system. All operations load the full store state, apply at
// most one in-memory mutation, and save as the final step, so no operation
// leaves partial state behind on error.
type WordService interface {
	// AddWord creates a record for a new word, resolving its definition
	// through the provider chain.
	// Returns store.ErrWordExists if the normalized word is already present,
	// and provider.ErrNoDefinition if no source had a definition; in the
	// latter case no record is created and the caller may fall back to
	// AddWordWithDefinition.
	AddWord(ctx context.Context, word string) (*domain.WordRecord, error)

	// AddWordWithDefinition creates a record with a user-supplied definition,
	// bypassing the provider chain. Source should be domain.SourceCustom for
	// definitions given up front and domain.SourceManual for ones entered
	// after a failed lookup.
	AddWordWithDefinition(
		ctx context.Context,
		word, definition string,
		source domain.Source,
	) (*domain.WordRecord, error)

	// ReviewWord records a review with the given recall quality and
	// reschedules the word. Returns store.ErrWordNotFound for unknown words
	// and domain.ErrInvalidQuality for scores outside 1-5; neither mutates
	// the store.
	ReviewWord(
		ctx context.Context,
		word string,
		quality domain.Quality,
		now time.Time,
	) (*domain.WordRecord, error)

	// GetWord retrieves a single record by word.
	// Returns store.ErrWordNotFound if absent.
	GetWord(ctx context.Context, word string) (*domain.WordRecord, error)

	// DueWords returns all records with next_review_at at or before now,
	// sorted by next review time (ties broken by word). Calling it twice
	// without an intervening review returns the identical slice.
	DueWords(ctx context.Context, now time.Time) ([]domain.WordRecord, error)

	// AllWords returns every record sorted alphabetically by word key.
	AllWords(ctx context.Context) ([]domain.WordRecord, error)
}

// wordService implements the WordService interface.
type wordService struct {
	store     store.WordStore
	provider  provider.Provider
	scheduler schedule.Service
	logger    *slog.Logger

	// now is injectable for tests; AddWord uses it as the record's added-at time.
	now func() time.Time
}

// NewWordService creates a WordService backed by the given collaborators.
func NewWordService(
	wordStore store.WordStore,
	defProvider provider.Provider,
	scheduler schedule.Service,
	logger *slog.Logger,
) WordService {
	if logger == nil {
		logger = slog.Default()
	}

	return &wordService{
		store:     wordStore,
		provider:  defProvider,
		scheduler: scheduler,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddWord implements WordService.
func (s *wordService) AddWord(ctx context.Context, word string) (*domain.WordRecord, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil, domain.ErrEmptyWord
	}

	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("add", "loading store", err)
	}

	if _, exists := words[key]; exists {
		return nil, fmt.Errorf("%w: %q", store.ErrWordExists, key)
	}

	info, err := s.provider.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}

	return s.createRecord(ctx, words, key, *info)
}

// AddWordWithDefinition implements WordService.
func (s *wordService) AddWordWithDefinition(
	ctx context.Context,
	word, definition string,
	source domain.Source,
) (*domain.WordRecord, error) {
	key := domain.NormalizeWord(word)
	if key == "" {
		return nil, domain.ErrEmptyWord
	}

	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("add", "loading store", err)
	}

	if _, exists := words[key]; exists {
		return nil, fmt.Errorf("%w: %q", store.ErrWordExists, key)
	}

	info := domain.DefinitionPayload{
		Word:     key,
		Meanings: []string{definition},
		Source:   source,
	}

	return s.createRecord(ctx, words, key, info)
}

// createRecord assembles, validates, and persists a new record. Mutating the
// map and saving are the last two steps.
func (s *wordService) createRecord(
	ctx context.Context,
	words map[string]domain.WordRecord,
	key string,
	info domain.DefinitionPayload,
) (*domain.WordRecord, error) {
	addedAt := s.now()
	anchors, firstNextReview := s.scheduler.InitialSchedule(addedAt)

	rec, err := domain.NewWordRecord(info, addedAt, anchors, firstNextReview)
	if err != nil {
		return nil, NewWordServiceError("add", "building record", err)
	}

	words[key] = *rec
	if err := s.store.Save(ctx, words); err != nil {
		return nil, NewWordServiceError("add", "saving store", err)
	}

	s.logger.InfoContext(ctx, "word added",
		"word", key, "source", info.Source, "first_review", firstNextReview)

	return rec, nil
}

// ReviewWord implements WordService.
func (s *wordService) ReviewWord(
	ctx context.Context,
	word string,
	quality domain.Quality,
	now time.Time,
) (*domain.WordRecord, error) {
	if !quality.Valid() {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidQuality, quality)
	}

	key := domain.NormalizeWord(word)

	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("review", "loading store", err)
	}

	rec, exists := words[key]
	if !exists {
		return nil, fmt.Errorf("%w: %q", store.ErrWordNotFound, key)
	}

	updated, err := s.scheduler.NextReview(&rec, quality, now)
	if err != nil {
		return nil, NewWordServiceError("review", "rescheduling", err)
	}

	words[key] = *updated
	if err := s.store.Save(ctx, words); err != nil {
		return nil, NewWordServiceError("review", "saving store", err)
	}

	s.logger.InfoContext(ctx, "word reviewed",
		"word", key,
		"quality", int(quality),
		"review_count", updated.ReviewCount,
		"next_review", updated.NextReviewAt)

	return updated, nil
}

// GetWord implements WordService.
func (s *wordService) GetWord(ctx context.Context, word string) (*domain.WordRecord, error) {
	key := domain.NormalizeWord(word)

	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("get", "loading store", err)
	}

	rec, exists := words[key]
	if !exists {
		return nil, fmt.Errorf("%w: %q", store.ErrWordNotFound, key)
	}

	return &rec, nil
}

// DueWords implements WordService.
func (s *wordService) DueWords(ctx context.Context, now time.Time) ([]domain.WordRecord, error) {
	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("due", "loading store", err)
	}

	var due []domain.WordRecord
	for _, rec := range words {
		if rec.Due(now) {
			due = append(due, rec)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].Key() < due[j].Key()
	})

	return due, nil
}

// AllWords implements WordService.
func (s *wordService) AllWords(ctx context.Context) ([]domain.WordRecord, error) {
	words, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewWordServiceError("list", "loading store", err)
	}

	all := make([]domain.WordRecord, 0, len(words))
	for _, rec := range words {
		all = append(all, rec)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Key() < all[j].Key()
	})

	return all, nil
}
