package schedule

import (
	"testing"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

func TestInitialAnchors(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	addedAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	anchors := initialAnchors(addedAt, params)

	if len(anchors) != 5 {
		t.Fatalf("Expected 5 anchors, got %d", len(anchors))
	}

	expected := []time.Time{
		addedAt,
		addedAt.AddDate(0, 0, 1),
		addedAt.AddDate(0, 0, 2),
		addedAt.AddDate(0, 0, 6),
		addedAt.AddDate(0, 0, 31),
	}

	for i, want := range expected {
		if !anchors[i].Equal(want) {
			t.Errorf("Anchor %d: expected %v, got %v", i, want, anchors[i])
		}
	}

	if !anchors[0].Equal(addedAt) {
		t.Errorf("First anchor must equal the added-at time")
	}
}

func TestNextAfterReviewGoodRecall(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	// reviewCount includes the review just completed.
	testCases := []struct {
		name        string
		reviewCount int
		quality     domain.Quality
		expected    time.Time
	}{
		{
			name:        "first review advances to day-2 offset",
			reviewCount: 1,
			quality:     domain.QualityClear,
			expected:    now.AddDate(0, 0, 2),
		},
		{
			name:        "second review advances to day-6 offset",
			reviewCount: 2,
			quality:     domain.QualityMastered,
			expected:    now.AddDate(0, 0, 6),
		},
		{
			name:        "third review advances to day-31 offset",
			reviewCount: 3,
			quality:     domain.QualityClear,
			expected:    now.AddDate(0, 0, 31),
		},
		{
			name:        "table exhausted saturates to a year out",
			reviewCount: 4,
			quality:     domain.QualityMastered,
			expected:    now.Add(365 * 24 * time.Hour),
		},
		{
			name:        "count beyond the table stays saturated",
			reviewCount: 9,
			quality:     domain.QualityClear,
			expected:    now.Add(365 * 24 * time.Hour),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := nextAfterReview(now, tc.reviewCount, tc.quality, params)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected next review %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestReviewedRecordGoodRecallLadder(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	addedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	anchors := initialAnchors(addedAt, params)

	rec, err := domain.NewWordRecord(domain.DefinitionPayload{
		Word:     "ladder",
		Meanings: []string{"a structure for climbing"},
		Source:   domain.SourceCustom,
	}, addedAt, anchors, anchors[1])
	if err != nil {
		t.Fatalf("NewWordRecord() error: %v", err)
	}

	// Consecutive mastered reviews climb the offset table one step at a
	// time: the first lands 2 days out, then 6, then 31, then the table is
	// exhausted and every further review pushes a year out.
	intervals := []time.Duration{
		48 * time.Hour,
		6 * 24 * time.Hour,
		31 * 24 * time.Hour,
		365 * 24 * time.Hour,
		365 * 24 * time.Hour,
	}

	now := addedAt.AddDate(0, 0, 1)
	for i, interval := range intervals {
		rec = reviewedRecord(rec, domain.QualityMastered, now, params)

		if rec.ReviewCount != i+1 {
			t.Fatalf("Review %d: expected review count %d, got %d", i+1, i+1, rec.ReviewCount)
		}
		if want := now.Add(interval); !rec.NextReviewAt.Equal(want) {
			t.Fatalf("Review %d: expected next review %v, got %v", i+1, want, rec.NextReviewAt)
		}

		now = rec.NextReviewAt
	}
}

func TestNextAfterReviewPartialRecall(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	// Partial recall ignores the review counter entirely.
	for _, quality := range []domain.Quality{domain.QualityVague, domain.QualityEffortful} {
		for count := 0; count <= 5; count++ {
			got := nextAfterReview(now, count, quality, params)
			if want := now.Add(12 * time.Hour); !got.Equal(want) {
				t.Errorf("quality=%d count=%d: expected %v, got %v", quality, count, want, got)
			}
		}
	}
}

func TestNextAfterReviewForgot(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	for count := 0; count <= 5; count++ {
		got := nextAfterReview(now, count, domain.QualityForgot, params)
		if want := now.Add(time.Hour); !got.Equal(want) {
			t.Errorf("count=%d: expected %v, got %v", count, want, got)
		}
	}
}

func TestReviewedRecord(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	addedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	anchors := initialAnchors(addedAt, params)

	rec, err := domain.NewWordRecord(domain.DefinitionPayload{
		Word:     "ephemeral",
		Meanings: []string{"lasting a short time"},
		Source:   domain.SourceCustom,
	}, addedAt, anchors, anchors[1])
	if err != nil {
		t.Fatalf("NewWordRecord() error: %v", err)
	}

	// First review, fully mastered: advances to offsets[2]=2 days out.
	now := addedAt.AddDate(0, 0, 1)
	after := reviewedRecord(rec, domain.QualityMastered, now, params)

	if after.ReviewCount != 1 {
		t.Errorf("Expected review count 1, got %d", after.ReviewCount)
	}
	if after.MasteryLevel != 4 {
		t.Errorf("Expected mastery level 4, got %d", after.MasteryLevel)
	}
	if after.LastReviewedAt == nil || !after.LastReviewedAt.Equal(now) {
		t.Errorf("Expected last reviewed at %v, got %v", now, after.LastReviewedAt)
	}
	if want := now.AddDate(0, 0, 2); !after.NextReviewAt.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, after.NextReviewAt)
	}

	// Second review, forgot: back in an hour, mastery drops to 0.
	later := now.AddDate(0, 0, 2)
	again := reviewedRecord(after, domain.QualityForgot, later, params)

	if again.ReviewCount != 2 {
		t.Errorf("Expected review count 2, got %d", again.ReviewCount)
	}
	if again.MasteryLevel != 0 {
		t.Errorf("Expected mastery level 0, got %d", again.MasteryLevel)
	}
	if want := later.Add(time.Hour); !again.NextReviewAt.Equal(want) {
		t.Errorf("Expected next review %v, got %v", want, again.NextReviewAt)
	}

	// Anchors never change after creation.
	for i := range rec.ReviewAnchors {
		if !again.ReviewAnchors[i].Equal(rec.ReviewAnchors[i]) {
			t.Errorf("Anchor %d mutated by review", i)
		}
	}

	// The input record is untouched.
	if rec.ReviewCount != 0 || rec.LastReviewedAt != nil {
		t.Errorf("reviewedRecord must not modify its input")
	}
}
