package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phrazzld/recite/internal/domain"
)

// WriteExport writes the human-readable dump of all records: a header with
// the export time, then one block per word separated by a dashed rule.
func WriteExport(w io.Writer, records []domain.WordRecord, exportedAt time.Time) error {
	var b strings.Builder

	b.WriteString("Vocabulary Memory List\n")
	fmt.Fprintf(&b, "Export time: %s\n", exportedAt.Format(timestampFormat))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "Word: %s\n", rec.Info.Word)

		if rec.Info.Phonetic != "" {
			fmt.Fprintf(&b, "Phonetic: /%s/\n", rec.Info.Phonetic)
		}

		b.WriteString("Definitions:\n")
		for i, meaning := range rec.Info.Meanings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, meaning)
		}

		if len(rec.Info.Examples) > 0 {
			b.WriteString("Examples:\n")
			for i, example := range rec.Info.Examples {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, example)
			}
		}

		fmt.Fprintf(&b, "Added: %s\n", rec.AddedAt.Format(timestampFormat))
		fmt.Fprintf(&b, "Reviews: %d\n", rec.ReviewCount)
		fmt.Fprintf(&b, "Mastery: %s\n", masteryStars(rec.MasteryLevel))
		fmt.Fprintf(&b, "Next review: %s\n", rec.NextReviewAt.Format(timestampFormat))
		b.WriteString(strings.Repeat("-", 40) + "\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
