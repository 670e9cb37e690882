package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// Display formats shared by the interactive views and the export file.
const (
	timestampFormat = "2006-01-02 15:04:05"
	shortTimeFormat = "01-02 15:04"

	// meaningDisplayWidth is where list views cut the first meaning off.
	meaningDisplayWidth = 35
)

// ListFilter selects which records a list view shows.
type ListFilter string

// Available list filters.
const (
	FilterAll      ListFilter = "all"
	FilterDue      ListFilter = "due"
	FilterMastered ListFilter = "mastered"
)

// masteryStars renders a 0-4 mastery level as level+1 filled stars out of five.
func masteryStars(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	return strings.Repeat("★", level+1) + strings.Repeat("☆", 4-level)
}

// truncateMeaning cuts a meaning down to the list display width.
func truncateMeaning(meaning string) string {
	runes := []rune(meaning)
	if len(runes) <= meaningDisplayWidth {
		return meaning
	}
	return string(runes[:meaningDisplayWidth]) + "..."
}

// WriteWordInfo prints the definition block for a word.
func WriteWordInfo(w io.Writer, info domain.DefinitionPayload) {
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Word: %s\n", info.Word)

	if info.Phonetic != "" {
		fmt.Fprintf(w, "Phonetic: /%s/\n", info.Phonetic)
	}

	fmt.Fprintln(w, "\nDefinitions:")
	for i, meaning := range info.Meanings {
		fmt.Fprintf(w, "  %d. %s\n", i+1, meaning)
	}

	if len(info.Examples) > 0 {
		fmt.Fprintln(w, "\nExamples:")
		for i, example := range info.Examples {
			fmt.Fprintf(w, "  %d. %s\n", i+1, example)
		}
	}

	if info.Source != "" {
		fmt.Fprintf(w, "\nData source: %s\n", info.Source)
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
}

// WriteList prints the word list view, one line per record passing the
// filter, with the first meaning truncated for display.
func WriteList(w io.Writer, records []domain.WordRecord, filter ListFilter, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No words in memory system.")
		return
	}

	fmt.Fprintf(w, "%-20s %-40s\n", "Word", "Definition")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	shown := 0
	for _, rec := range records {
		switch filter {
		case FilterDue:
			if !rec.Due(now) {
				continue
			}
		case FilterMastered:
			if rec.MasteryLevel < 3 {
				continue
			}
		}

		meaning := "No definition"
		if len(rec.Info.Meanings) > 0 {
			meaning = truncateMeaning(rec.Info.Meanings[0])
		}

		fmt.Fprintf(w, "%-20s %-40s\n", rec.Key(), meaning)
		shown++
	}

	fmt.Fprintf(w, "\nTotal: %d words\n", shown)
}

// WriteScheduleTable prints the all-words schedule overview sorted by next
// review time, with an overdue marker on words already due.
func WriteScheduleTable(w io.Writer, records []domain.WordRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No words in memory system.")
		return
	}

	sorted := make([]domain.WordRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].NextReviewAt.Equal(sorted[j].NextReviewAt) {
			return sorted[i].NextReviewAt.Before(sorted[j].NextReviewAt)
		}
		return sorted[i].Key() < sorted[j].Key()
	})

	fmt.Fprintf(w, "%-15s %-10s %-8s %-20s\n", "Word", "Mastery", "Reviews", "Next Review")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for _, rec := range sorted {
		next := rec.NextReviewAt.Format(shortTimeFormat)
		if rec.Due(now) {
			next = "⚠ " + next
		}

		fmt.Fprintf(w, "%-15s %-10s %-8d %-20s\n",
			rec.Key(), masteryStars(rec.MasteryLevel), rec.ReviewCount, next)
	}
}

// WriteWordSchedule prints the per-anchor detail for one word: its stats and
// each nominal review date with a completed/pending marker. An anchor counts
// as completed once that many reviews have been recorded.
func WriteWordSchedule(w io.Writer, rec *domain.WordRecord, offsets []int) {
	fmt.Fprintf(w, "\nWord: %s\n", rec.Key())
	fmt.Fprintf(w, "Added: %s\n", rec.AddedAt.Format(timestampFormat))
	fmt.Fprintf(w, "Reviews: %d\n", rec.ReviewCount)
	fmt.Fprintf(w, "Mastery: %s\n", masteryStars(rec.MasteryLevel))

	if rec.LastReviewedAt != nil {
		fmt.Fprintf(w, "Last reviewed: %s\n", rec.LastReviewedAt.Format(timestampFormat))
	}

	fmt.Fprintf(w, "\nNext review: %s\n", rec.NextReviewAt.Format(timestampFormat))

	fmt.Fprintln(w, "\nEbbinghaus review schedule:")
	for i, anchor := range rec.ReviewAnchors {
		status := "○ Pending"
		if i < rec.ReviewCount {
			status = "✓ Completed"
		}

		offset := 0
		if i < len(offsets) {
			offset = offsets[i]
		}

		label := fmt.Sprintf("Review %d", i)
		if i == 0 {
			label = "Initial learning"
		}

		fmt.Fprintf(w, "  %2d days (%s): %s %s\n",
			offset, anchor.Format(shortTimeFormat), label, status)
	}
}
