package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyWord is returned when a word is empty after normalization.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrNoMeanings is returned when a definition payload carries no meanings.
	ErrNoMeanings = errors.New("definition must have at least one meaning")

	// ErrInvalidSource is returned when a definition source tag is not one
	// of the known values.
	ErrInvalidSource = errors.New("invalid definition source")

	// ErrInvalidQuality is returned when a recall quality score is outside
	// the 1-5 range.
	ErrInvalidQuality = errors.New("recall quality must be between 1 and 5")

	// ErrInvalidAnchors is returned when a record's review anchors are not
	// exactly the expected strictly increasing sequence.
	ErrInvalidAnchors = errors.New("invalid review anchors")

	// ErrInvalidMastery is returned when a mastery level is outside the 0-4 range.
	ErrInvalidMastery = errors.New("mastery level must be between 0 and 4")

	// ErrInvalidReviewCount is returned when a review count is negative.
	ErrInvalidReviewCount = errors.New("review count cannot be negative")
)
