package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// Common errors
var (
	ErrNilRecord = errors.New("word record cannot be nil")
)

// Service defines the interface for review scheduling operations.
type Service interface {
	// InitialSchedule computes the review anchors for a word added at the
	// given time and the first next-review timestamp (the day-1 anchor).
	InitialSchedule(addedAt time.Time) (anchors []time.Time, firstNextReview time.Time)

	// NextReview computes the record state after a review with the given
	// quality, following immutability principles by returning a new record
	// rather than modifying the existing one.
	NextReview(
		rec *domain.WordRecord,
		quality domain.Quality,
		now time.Time,
	) (*domain.WordRecord, error)

	// Offsets returns a copy of the Ebbinghaus offset table in days.
	Offsets() []int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduler with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// InitialSchedule implements the Service interface. It is a pure function of
// the added-at timestamp and the constant offset table; there are no error
// conditions.
func (s *defaultService) InitialSchedule(addedAt time.Time) ([]time.Time, time.Time) {
	anchors := initialAnchors(addedAt, s.params)
	return anchors, anchors[1]
}

// NextReview implements the Service interface for computing post-review state.
func (s *defaultService) NextReview(
	rec *domain.WordRecord,
	quality domain.Quality,
	now time.Time,
) (*domain.WordRecord, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}

	if !quality.Valid() {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidQuality, quality)
	}

	return reviewedRecord(rec, quality, now, s.params), nil
}

// Offsets implements the Service interface.
func (s *defaultService) Offsets() []int {
	offsets := make([]int, len(s.params.Offsets))
	copy(offsets, s.params.Offsets)
	return offsets
}
