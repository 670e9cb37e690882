package schedule

import (
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// initialAnchors computes the nominal review timestamps for a word added at
// the given time: one anchor per offset in the Ebbinghaus table. The first
// anchor always equals addedAt itself (offset 0).
func initialAnchors(addedAt time.Time, params *Params) []time.Time {
	anchors := make([]time.Time, len(params.Offsets))
	for i, offset := range params.Offsets {
		anchors[i] = addedAt.AddDate(0, 0, offset)
	}
	return anchors
}

// nextAfterReview determines the next review timestamp given the quality
// score just recorded and the review count including the review just
// completed.
//
// Algorithm behavior:
//   - Good recall (quality >= RememberedThreshold) advances one step through
//     the offset table: the next review lands offsets[idx+1] days from now,
//     where idx is the post-review count clamped to the table. Once the
//     table is exhausted the word is pushed out by ExhaustedInterval.
//   - Partial recall (quality >= PartialThreshold) schedules a retry after
//     PartialRecallDelay, regardless of position in the table.
//   - A forgotten word (quality below PartialThreshold) comes back after
//     ForgotDelay.
//
// The function deliberately consults only the review counter and the fixed
// offset table, never the record's original anchors, so a user who reviews
// early or late drifts off the nominal anchor plan. That drift is the
// intended behavior of the scheduler, not an accident.
func nextAfterReview(
	now time.Time,
	reviewCount int,
	quality domain.Quality,
	params *Params,
) time.Time {
	if int(quality) >= params.RememberedThreshold {
		idx := reviewCount
		if idx > len(params.Offsets)-1 {
			idx = len(params.Offsets) - 1
		}
		if idx < len(params.Offsets)-1 {
			return now.AddDate(0, 0, params.Offsets[idx+1])
		}
		return now.Add(params.ExhaustedInterval)
	}

	if int(quality) >= params.PartialThreshold {
		return now.Add(params.PartialRecallDelay)
	}

	return now.Add(params.ForgotDelay)
}

// reviewedRecord creates a new WordRecord reflecting a completed review,
// following the immutable update pattern: the input record is never modified.
//
// The new record has its review count incremented by one, its mastery level
// set to quality-1, its last-reviewed time set to now, and its next review
// computed by nextAfterReview. Anchors and creation data carry over unchanged.
func reviewedRecord(
	rec *domain.WordRecord,
	quality domain.Quality,
	now time.Time,
	params *Params,
) *domain.WordRecord {
	anchors := make([]time.Time, len(rec.ReviewAnchors))
	copy(anchors, rec.ReviewAnchors)

	newRec := &domain.WordRecord{
		ID:            rec.ID,
		Info:          rec.Info,
		AddedAt:       rec.AddedAt,
		ReviewAnchors: anchors,
		ReviewCount:   rec.ReviewCount,
		MasteryLevel:  rec.MasteryLevel,
		NextReviewAt:  rec.NextReviewAt,
	}

	reviewedAt := now
	newRec.LastReviewedAt = &reviewedAt
	newRec.NextReviewAt = nextAfterReview(now, rec.ReviewCount+1, quality, params)
	newRec.ReviewCount++
	newRec.MasteryLevel = quality.Mastery()

	return newRec
}
