package domain

import (
	"errors"
	"testing"
	"time"
)

func validAnchors(addedAt time.Time) []time.Time {
	return []time.Time{
		addedAt,
		addedAt.AddDate(0, 0, 1),
		addedAt.AddDate(0, 0, 2),
		addedAt.AddDate(0, 0, 6),
		addedAt.AddDate(0, 0, 31),
	}
}

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in       string
		expected string
	}{
		{"Ephemeral", "ephemeral"},
		{"  serendipity  ", "serendipity"},
		{"ALREADY", "already"},
		{"   ", ""},
	}

	for _, tc := range testCases {
		if got := NormalizeWord(tc.in); got != tc.expected {
			t.Errorf("NormalizeWord(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestNewWordRecord(t *testing.T) {
	t.Parallel()

	addedAt := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	anchors := validAnchors(addedAt)

	rec, err := NewWordRecord(DefinitionPayload{
		Word:     "ephemeral",
		Meanings: []string{"lasting a short time"},
		Source:   SourceCustom,
	}, addedAt, anchors, anchors[1])
	if err != nil {
		t.Fatalf("NewWordRecord() error: %v", err)
	}

	if rec.ReviewCount != 0 {
		t.Errorf("New record must start with zero reviews, got %d", rec.ReviewCount)
	}
	if rec.MasteryLevel != 0 {
		t.Errorf("New record must start at mastery 0, got %d", rec.MasteryLevel)
	}
	if rec.LastReviewedAt != nil {
		t.Errorf("New record must have nil last-reviewed time")
	}
	if !rec.NextReviewAt.Equal(addedAt.AddDate(0, 0, 1)) {
		t.Errorf("First review must be one day out, got %v", rec.NextReviewAt)
	}
	if rec.Key() != "ephemeral" {
		t.Errorf("Expected key %q, got %q", "ephemeral", rec.Key())
	}
}

func TestWordRecordValidate(t *testing.T) {
	t.Parallel()

	addedAt := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	info := DefinitionPayload{
		Word:     "ephemeral",
		Meanings: []string{"lasting a short time"},
		Source:   SourceManual,
	}

	testCases := []struct {
		name     string
		mutate   func(r *WordRecord)
		expected error
	}{
		{
			name:     "wrong anchor count",
			mutate:   func(r *WordRecord) { r.ReviewAnchors = r.ReviewAnchors[:3] },
			expected: ErrInvalidAnchors,
		},
		{
			name:     "first anchor not added_at",
			mutate:   func(r *WordRecord) { r.ReviewAnchors[0] = addedAt.Add(time.Minute) },
			expected: ErrInvalidAnchors,
		},
		{
			name: "anchors not strictly increasing",
			mutate: func(r *WordRecord) {
				r.ReviewAnchors[2] = r.ReviewAnchors[1]
			},
			expected: ErrInvalidAnchors,
		},
		{
			name:     "negative review count",
			mutate:   func(r *WordRecord) { r.ReviewCount = -1 },
			expected: ErrInvalidReviewCount,
		},
		{
			name:     "mastery out of range",
			mutate:   func(r *WordRecord) { r.MasteryLevel = 5 },
			expected: ErrInvalidMastery,
		},
		{
			name:     "zero next review",
			mutate:   func(r *WordRecord) { r.NextReviewAt = time.Time{} },
			expected: ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			anchors := validAnchors(addedAt)
			rec, err := NewWordRecord(info, addedAt, anchors, anchors[1])
			if err != nil {
				t.Fatalf("NewWordRecord() error: %v", err)
			}

			tc.mutate(rec)

			if err := rec.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestDefinitionPayloadValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		payload  DefinitionPayload
		expected error
	}{
		{
			name:     "empty word",
			payload:  DefinitionPayload{Meanings: []string{"x"}, Source: SourceManual},
			expected: ErrEmptyWord,
		},
		{
			name:     "no meanings",
			payload:  DefinitionPayload{Word: "w", Source: SourceManual},
			expected: ErrNoMeanings,
		},
		{
			name: "too many meanings",
			payload: DefinitionPayload{
				Word:     "w",
				Meanings: []string{"a", "b", "c", "d"},
				Source:   SourceManual,
			},
			expected: ErrValidation,
		},
		{
			name: "too many examples",
			payload: DefinitionPayload{
				Word:     "w",
				Meanings: []string{"a"},
				Examples: []string{"a", "b", "c"},
				Source:   SourceManual,
			},
			expected: ErrValidation,
		},
		{
			name: "unknown source",
			payload: DefinitionPayload{
				Word:     "w",
				Meanings: []string{"a"},
				Source:   Source("wiktionary"),
			},
			expected: ErrInvalidSource,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.payload.Validate(); !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 4, 10, 0, 0, 0, time.UTC)
	rec := WordRecord{NextReviewAt: now}

	if !rec.Due(now) {
		t.Errorf("Record due exactly at next_review_at must count as due")
	}
	if !rec.Due(now.Add(time.Minute)) {
		t.Errorf("Record past next_review_at must count as due")
	}
	if rec.Due(now.Add(-time.Minute)) {
		t.Errorf("Record before next_review_at must not count as due")
	}
}

func TestQuality(t *testing.T) {
	t.Parallel()

	for q := Quality(1); q <= 5; q++ {
		if !q.Valid() {
			t.Errorf("Quality %d should be valid", q)
		}
		if q.Mastery() != int(q)-1 {
			t.Errorf("Quality %d: expected mastery %d, got %d", q, int(q)-1, q.Mastery())
		}
	}

	for _, q := range []Quality{0, 6, -3} {
		if q.Valid() {
			t.Errorf("Quality %d should be invalid", q)
		}
	}
}
