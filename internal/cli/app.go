package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/recite/internal/domain"
	"github.com/phrazzld/recite/internal/provider"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/store"
)

// App implements the command flows behind each CLI flag and the interactive
// menu. User-recoverable failures (duplicate word, unknown word, failed
// lookup) are reported on the output stream and do not surface as errors;
// only unrecoverable problems such as storage I/O propagate.
type App struct {
	svc      service.WordService
	offsets  []int
	prompter *Prompter
	out      io.Writer
	logger   *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewApp creates an App with the given collaborators. offsets is the
// scheduler's Ebbinghaus table, used to label per-anchor schedule views.
func NewApp(
	svc service.WordService,
	offsets []int,
	prompter *Prompter,
	out io.Writer,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		svc:      svc,
		offsets:  offsets,
		prompter: prompter,
		out:      out,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Add runs the non-interactive add flow: provider lookup only, no manual
// fallback prompt.
func (a *App) Add(ctx context.Context, word string) error {
	fmt.Fprintf(a.out, "\nLooking up word: %s\n", strings.TrimSpace(word))

	rec, err := a.svc.AddWord(ctx, word)
	switch {
	case err == nil:
		a.reportAdded(rec)
		return nil
	case errors.Is(err, provider.ErrNoDefinition):
		fmt.Fprintln(a.out, "Unable to fetch definition from online resources.")
		return nil
	case store.IsDuplicateError(err):
		fmt.Fprintf(a.out, "Word %q is already in the memory list!\n", domain.NormalizeWord(word))
		return nil
	case errors.Is(err, domain.ErrEmptyWord):
		fmt.Fprintln(a.out, "Please provide a non-empty word.")
		return nil
	default:
		return err
	}
}

// addInteractive runs the add flow with the manual-entry fallback offered
// when no online source has a definition.
func (a *App) addInteractive(ctx context.Context, word string) error {
	fmt.Fprintf(a.out, "\nLooking up word: %s\n", strings.TrimSpace(word))

	rec, err := a.svc.AddWord(ctx, word)
	switch {
	case err == nil:
		a.reportAdded(rec)
		return nil
	case store.IsDuplicateError(err):
		fmt.Fprintf(a.out, "Word %q is already in the memory list!\n", domain.NormalizeWord(word))
		return nil
	case errors.Is(err, domain.ErrEmptyWord):
		fmt.Fprintln(a.out, "Please provide a non-empty word.")
		return nil
	case errors.Is(err, provider.ErrNoDefinition):
		// Fall through to manual entry below.
	default:
		return err
	}

	fmt.Fprintln(a.out, "Unable to fetch definition from online resources.")
	useManual, err := a.prompter.Confirm("Enter definition manually? (y/n): ")
	if err != nil || !useManual {
		return nil
	}

	definition, err := a.prompter.ReadLine("Enter definition: ")
	if err != nil || definition == "" {
		return nil
	}

	rec, err = a.svc.AddWordWithDefinition(ctx, word, definition, domain.SourceManual)
	if err != nil {
		return err
	}

	a.reportAdded(rec)
	return nil
}

func (a *App) reportAdded(rec *domain.WordRecord) {
	fmt.Fprintln(a.out)
	WriteWordInfo(a.out, rec.Info)
	fmt.Fprintf(a.out, "\n✓ Word %q added to memory system!\n", rec.Key())
	fmt.Fprintf(a.out, "  First review: %s\n", rec.NextReviewAt.Format("2006-01-02 15:04"))
}

// ReviewDue reviews every currently due word in due-date order, prompting
// for a recall rating per word.
func (a *App) ReviewDue(ctx context.Context) error {
	due, err := a.svc.DueWords(ctx, a.now())
	if err != nil {
		return err
	}

	if len(due) == 0 {
		fmt.Fprintln(a.out, "No words need review.")
		return nil
	}

	for i := range due {
		if err := a.reviewOne(ctx, &due[i]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}

	return nil
}

// reviewOne shows one word and records the user's recall rating.
func (a *App) reviewOne(ctx context.Context, rec *domain.WordRecord) error {
	fmt.Fprintln(a.out)
	WriteWordInfo(a.out, rec.Info)

	fmt.Fprintln(a.out, "\nRate your memory:")
	fmt.Fprintln(a.out, "1. Completely forgot")
	fmt.Fprintln(a.out, "2. Vague memory")
	fmt.Fprintln(a.out, "3. Remember with effort")
	fmt.Fprintln(a.out, "4. Remember clearly")
	fmt.Fprintln(a.out, "5. Fully mastered")

	rating, err := a.prompter.ReadIntRange("\nSelect (1-5): ", 1, 5)
	if err != nil {
		return err
	}

	updated, err := a.svc.ReviewWord(ctx, rec.Key(), domain.Quality(rating), a.now())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n✓ Review completed! Next review: %s\n",
		updated.NextReviewAt.Format("2006-01-02 15:04"))

	return nil
}

// List prints all words with the given filter.
func (a *App) List(ctx context.Context, filter ListFilter) error {
	records, err := a.svc.AllWords(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	WriteList(a.out, records, filter, a.now())
	return nil
}

// Schedule prints either the per-anchor detail for one word, or the
// overview table for every word when word is empty.
func (a *App) Schedule(ctx context.Context, word string) error {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, strings.Repeat("=", 60))
	fmt.Fprintln(a.out, "Ebbinghaus Forgetting Curve Review Schedule")
	fmt.Fprintln(a.out, strings.Repeat("=", 60))

	if word == "" {
		records, err := a.svc.AllWords(ctx)
		if err != nil {
			return err
		}
		WriteScheduleTable(a.out, records, a.now())
		return nil
	}

	rec, err := a.svc.GetWord(ctx, word)
	if err != nil {
		if store.IsNotFoundError(err) {
			fmt.Fprintf(a.out, "Word %q not found!\n", domain.NormalizeWord(word))
			return nil
		}
		return err
	}

	WriteWordSchedule(a.out, rec, a.offsets)
	return nil
}

// Export writes the full dump to the named file.
func (a *App) Export(ctx context.Context, filename string) error {
	records, err := a.svc.AllWords(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteExport(f, records, a.now()); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Words exported to: %s\n", filename)
	return nil
}

// Details prints the stored definition of one word.
func (a *App) Details(ctx context.Context, word string) error {
	rec, err := a.svc.GetWord(ctx, word)
	if err != nil {
		if store.IsNotFoundError(err) {
			fmt.Fprintf(a.out, "Word %q not found!\n", domain.NormalizeWord(word))
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out)
	WriteWordInfo(a.out, rec.Info)
	return nil
}

// Interactive runs the menu loop until the user quits or input ends.
func (a *App) Interactive(ctx context.Context) error {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, strings.Repeat("=", 50))
		fmt.Fprintln(a.out, "Vocabulary Memory System - Ebbinghaus Forgetting Curve")
		fmt.Fprintln(a.out, strings.Repeat("=", 50))

		due, err := a.svc.DueWords(ctx, a.now())
		if err != nil {
			return err
		}
		if len(due) > 0 {
			fmt.Fprintf(a.out, "⚠ %d words need review!\n", len(due))
		}

		fmt.Fprintln(a.out, "\n1. Add new word")
		fmt.Fprintln(a.out, "2. Review words")
		fmt.Fprintln(a.out, "3. View review schedule")
		fmt.Fprintln(a.out, "4. List all words")
		fmt.Fprintln(a.out, "5. Export words")
		fmt.Fprintln(a.out, "6. View word details")
		fmt.Fprintln(a.out, "7. Exit")

		choice, err := a.prompter.ReadLine("\nSelect option (1-7): ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		done, err := a.dispatch(ctx, choice)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if done {
			fmt.Fprintln(a.out, "Thank you for using the system. Goodbye!")
			return nil
		}
	}
}

// dispatch handles one menu selection. It reports done=true on the exit choice.
func (a *App) dispatch(ctx context.Context, choice string) (bool, error) {
	switch choice {
	case "1":
		word, err := a.prompter.ReadLine("Enter word to memorize: ")
		if err != nil {
			return false, err
		}
		if word == "" {
			return false, nil
		}
		return false, a.addInteractive(ctx, word)

	case "2":
		return false, a.reviewMenu(ctx)

	case "3":
		word, err := a.prompter.ReadLine("Enter word to view schedule (press Enter for all): ")
		if err != nil {
			return false, err
		}
		return false, a.Schedule(ctx, word)

	case "4":
		return false, a.listMenu(ctx)

	case "5":
		filename, err := a.prompter.ReadLine("Enter export filename (default: words_export.txt): ")
		if err != nil {
			return false, err
		}
		if filename == "" {
			filename = "words_export.txt"
		}
		return false, a.Export(ctx, filename)

	case "6":
		word, err := a.prompter.ReadLine("Enter word to view details: ")
		if err != nil {
			return false, err
		}
		return false, a.Details(ctx, word)

	case "7":
		return true, nil

	default:
		fmt.Fprintln(a.out, "Invalid selection, please try again!")
		return false, nil
	}
}

// reviewMenu lists due words and reviews either all of them or one picked
// by number.
func (a *App) reviewMenu(ctx context.Context) error {
	due, err := a.svc.DueWords(ctx, a.now())
	if err != nil {
		return err
	}

	if len(due) == 0 {
		fmt.Fprintln(a.out, "No words need review at this time.")
		return nil
	}

	fmt.Fprintf(a.out, "\n%d words need review:\n", len(due))
	for i, rec := range due {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, rec.Key())
	}

	selection, err := a.prompter.ReadLine("\nEnter word number (or press Enter to review all): ")
	if err != nil {
		return err
	}

	if selection == "" {
		for i := range due {
			if err := a.reviewOne(ctx, &due[i]); err != nil {
				return err
			}
		}
		return nil
	}

	idx, err := strconv.Atoi(selection)
	if err != nil || idx < 1 || idx > len(due) {
		fmt.Fprintln(a.out, "Invalid selection!")
		return nil
	}

	return a.reviewOne(ctx, &due[idx-1])
}

// listMenu asks which filter to apply and prints the list.
func (a *App) listMenu(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n1. All words")
	fmt.Fprintln(a.out, "2. Words needing review")
	fmt.Fprintln(a.out, "3. Mastered words")

	choice, err := a.prompter.ReadLine("Select: ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.List(ctx, FilterAll)
	case "2":
		return a.List(ctx, FilterDue)
	case "3":
		return a.List(ctx, FilterMastered)
	default:
		fmt.Fprintln(a.out, "Invalid selection!")
		return nil
	}
}
