package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source identifies where a definition payload came from.
type Source string

// Known definition sources.
const (
	SourceDictionaryAPI Source = "dictionary-api"
	SourceDatamuse      Source = "datamuse"
	SourceGemini        Source = "gemini"
	SourceCustom        Source = "custom"
	SourceManual        Source = "manual"
)

// Valid reports whether the source is one of the known values.
func (s Source) Valid() bool {
	switch s {
	case SourceDictionaryAPI, SourceDatamuse, SourceGemini, SourceCustom, SourceManual:
		return true
	default:
		return false
	}
}

// Limits applied to a definition payload. Providers enforce the caps
// themselves before handing a payload to the core.
const (
	MaxMeanings = 3
	MaxExamples = 2
)

// AnchorCount is the number of review anchors fixed at record creation,
// one per entry of the Ebbinghaus offset table.
const AnchorCount = 5

// DefinitionPayload holds the looked-up (or user-supplied) definition of a
// word: up to MaxMeanings meaning strings, up to MaxExamples example
// sentences, an optional phonetic transcription, and a source tag.
type DefinitionPayload struct {
	Word     string   `json:"word"`
	Meanings []string `json:"meanings"`
	Examples []string `json:"examples,omitempty"`
	Phonetic string   `json:"phonetic,omitempty"`
	Source   Source   `json:"source"`
}

// Validate checks if the DefinitionPayload has valid data.
// Returns an error if any field fails validation.
func (p *DefinitionPayload) Validate() error {
	if strings.TrimSpace(p.Word) == "" {
		return ErrEmptyWord
	}

	if len(p.Meanings) == 0 {
		return ErrNoMeanings
	}

	if len(p.Meanings) > MaxMeanings {
		return fmt.Errorf("%w: at most %d meanings", ErrValidation, MaxMeanings)
	}

	if len(p.Examples) > MaxExamples {
		return fmt.Errorf("%w: at most %d examples", ErrValidation, MaxExamples)
	}

	if !p.Source.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSource, p.Source)
	}

	return nil
}

// WordRecord is the memory record for a single memorized word. Records are
// keyed in the store by the normalized (trimmed, lowercased) word string.
type WordRecord struct {
	ID uuid.UUID `json:"id"`

	// Info is the definition payload captured when the word was added.
	Info DefinitionPayload `json:"info"`

	// AddedAt is when the record was created.
	AddedAt time.Time `json:"added_at"`

	// ReviewAnchors are the five nominal review timestamps computed at
	// creation (AddedAt plus each Ebbinghaus offset). Fixed at creation,
	// never mutated afterwards.
	ReviewAnchors []time.Time `json:"review_anchors"`

	// LastReviewedAt is nil until the first review.
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`

	// ReviewCount is incremented by exactly one per review.
	ReviewCount int `json:"review_count"`

	// MasteryLevel is set (not incremented) on each review to quality-1.
	MasteryLevel int `json:"mastery_level"`

	// NextReviewAt is when the word is next due. Always well-defined once a
	// record exists; initialized to ReviewAnchors[1] at creation.
	NextReviewAt time.Time `json:"next_review_at"`
}

// NormalizeWord returns the canonical store key for a word:
// whitespace trimmed, lowercased.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// NewWordRecord creates a record for a freshly added word. The anchors and
// first next-review timestamp come from the scheduler; this constructor only
// assembles and validates the record.
func NewWordRecord(
	info DefinitionPayload,
	addedAt time.Time,
	anchors []time.Time,
	nextReviewAt time.Time,
) (*WordRecord, error) {
	rec := &WordRecord{
		ID:            uuid.New(),
		Info:          info,
		AddedAt:       addedAt,
		ReviewAnchors: anchors,
		ReviewCount:   0,
		MasteryLevel:  0,
		NextReviewAt:  nextReviewAt,
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Key returns the normalized store key for this record.
func (r *WordRecord) Key() string {
	return NormalizeWord(r.Info.Word)
}

// Due reports whether the record is due for review at the given time.
func (r *WordRecord) Due(now time.Time) bool {
	return !r.NextReviewAt.After(now)
}

// Validate checks if the WordRecord has valid data.
// Returns an error if any field fails validation.
func (r *WordRecord) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: record ID cannot be empty", ErrValidation)
	}

	if err := r.Info.Validate(); err != nil {
		return err
	}

	if len(r.ReviewAnchors) != AnchorCount {
		return fmt.Errorf("%w: expected %d anchors, got %d",
			ErrInvalidAnchors, AnchorCount, len(r.ReviewAnchors))
	}

	if !r.ReviewAnchors[0].Equal(r.AddedAt) {
		return fmt.Errorf("%w: first anchor must equal added_at", ErrInvalidAnchors)
	}

	for i := 1; i < len(r.ReviewAnchors); i++ {
		if !r.ReviewAnchors[i].After(r.ReviewAnchors[i-1]) {
			return fmt.Errorf("%w: anchors must be strictly increasing", ErrInvalidAnchors)
		}
	}

	if r.ReviewCount < 0 {
		return ErrInvalidReviewCount
	}

	if r.MasteryLevel < 0 || r.MasteryLevel > 4 {
		return ErrInvalidMastery
	}

	if r.NextReviewAt.IsZero() {
		return fmt.Errorf("%w: next_review_at must be set", ErrValidation)
	}

	return nil
}
