// Package main is the entry point for the recite vocabulary trainer.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"

	"github.com/phrazzld/recite/internal/cli"
	"github.com/phrazzld/recite/internal/config"
	"github.com/phrazzld/recite/internal/domain/schedule"
	"github.com/phrazzld/recite/internal/platform/logger"
	"github.com/phrazzld/recite/internal/provider"
	"github.com/phrazzld/recite/internal/service"
	"github.com/phrazzld/recite/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("recite failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	addFlag := flag.String("add", "", "Add a word to the memory list")
	reviewFlag := flag.Bool("review", false, "Review all currently due words")
	listFlag := flag.Bool("list", false, "List all words")
	scheduleFlag := flag.String("schedule", "", "Show the review schedule for a word")
	exportFlag := flag.String("export", "", "Export all words to a file")
	interactiveFlag := flag.Bool("interactive", false, "Run the interactive menu")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wordStore, cleanup, err := buildStore(cfg, log)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	defer cleanup()

	chain, err := buildProviders(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initializing definition providers: %w", err)
	}

	scheduler := schedule.NewDefaultService()
	svc := service.NewWordService(wordStore, chain, scheduler, log)
	app := cli.NewApp(svc, scheduler.Offsets(), cli.NewPrompter(os.Stdin, os.Stdout), os.Stdout, log)

	switch {
	case *addFlag != "":
		return app.Add(ctx, *addFlag)
	case *reviewFlag:
		return app.ReviewDue(ctx)
	case *listFlag:
		return app.List(ctx, cli.FilterAll)
	case *scheduleFlag != "":
		return app.Schedule(ctx, *scheduleFlag)
	case *exportFlag != "":
		return app.Export(ctx, *exportFlag)
	case *interactiveFlag:
		return app.Interactive(ctx)
	default:
		return app.Interactive(ctx)
	}
}

// buildStore selects the persistence backend from configuration. The
// returned cleanup closes any underlying handle and is safe to call once.
func buildStore(cfg *config.Config, log *slog.Logger) (store.WordStore, func(), error) {
	switch cfg.Store.Backend {
	case "sqlite":
		db, err := sql.Open("sqlite3", cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite database %q: %w", cfg.Store.Path, err)
		}
		st, err := store.NewSQLiteStore(db, log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, func() { db.Close() }, nil
	case "file":
		st, err := store.NewFileStore(cfg.Store.Path, log)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// buildProviders assembles the lookup chain: dictionary API first, datamuse
// as fallback, and Gemini last when an API key is configured.
func buildProviders(ctx context.Context, cfg *config.Config, log *slog.Logger) (provider.Provider, error) {
	providers := []provider.Provider{
		provider.NewDictionaryAPIClient(cfg.Provider.DictionaryBaseURL, cfg.Provider.DictionaryTimeout, log),
		provider.NewDatamuseClient(cfg.Provider.DatamuseBaseURL, cfg.Provider.DatamuseTimeout, log),
	}

	if cfg.Provider.GeminiAPIKey != "" {
		gemini, err := provider.NewGeminiProvider(ctx, cfg.Provider.GeminiAPIKey, cfg.Provider.GeminiModel, log)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
	}

	return provider.NewChain(log, providers...), nil
}
