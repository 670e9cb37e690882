package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/recite/internal/domain"
)

// sqliteSchema creates the words table. Definition info and the anchor list
// are stored as JSON text columns; timestamps are RFC 3339 strings.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS words (
	word             TEXT PRIMARY KEY,
	id               TEXT NOT NULL,
	info             TEXT NOT NULL,
	added_at         TEXT NOT NULL,
	review_anchors   TEXT NOT NULL,
	last_reviewed_at TEXT,
	review_count     INTEGER NOT NULL,
	mastery_level    INTEGER NOT NULL,
	next_review_at   TEXT NOT NULL
);
`

// SQLiteStore persists word records in a local SQLite database. It keeps the
// same whole-map Load/Save contract as the file store; saves replace the
// table contents inside a single transaction.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore wraps an open database handle and ensures the schema exists.
// The caller owns the handle and is responsible for closing it. The sqlite3
// driver must be registered by the importing package.
func NewSQLiteStore(db *sql.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, NewStoreError("sqlite", "init", "database handle cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, NewStoreError("sqlite", "init", "creating schema", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
	}, nil
}

// Load implements WordStore.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]domain.WordRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, id, info, added_at, review_anchors,
		       last_reviewed_at, review_count, mastery_level, next_review_at
		FROM words`)
	if err != nil {
		return nil, NewStoreError("sqlite", "load", "querying words", err)
	}
	defer rows.Close()

	words := map[string]domain.WordRecord{}
	for rows.Next() {
		var (
			key, idStr, infoJSON, addedAt, anchorsJSON, nextReviewAt string
			lastReviewedAt                                           sql.NullString
			rec                                                      domain.WordRecord
		)

		err := rows.Scan(&key, &idStr, &infoJSON, &addedAt, &anchorsJSON,
			&lastReviewedAt, &rec.ReviewCount, &rec.MasteryLevel, &nextReviewAt)
		if err != nil {
			return nil, NewStoreError("sqlite", "load", "scanning row", err)
		}

		rec.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("%w: record ID: %v", ErrCorruptState, err)
		}

		if err := json.Unmarshal([]byte(infoJSON), &rec.Info); err != nil {
			return nil, fmt.Errorf("%w: info payload: %v", ErrCorruptState, err)
		}

		if err := json.Unmarshal([]byte(anchorsJSON), &rec.ReviewAnchors); err != nil {
			return nil, fmt.Errorf("%w: review anchors: %v", ErrCorruptState, err)
		}

		if rec.AddedAt, err = parseStoredTime(addedAt); err != nil {
			return nil, err
		}
		if rec.NextReviewAt, err = parseStoredTime(nextReviewAt); err != nil {
			return nil, err
		}

		if lastReviewedAt.Valid {
			t, err := parseStoredTime(lastReviewedAt.String)
			if err != nil {
				return nil, err
			}
			rec.LastReviewedAt = &t
		}

		words[key] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, NewStoreError("sqlite", "load", "iterating rows", err)
	}

	return words, nil
}

// Save implements WordStore. The table is rewritten wholesale in one
// transaction, matching the full-store save semantics of the file backend.
func (s *SQLiteStore) Save(ctx context.Context, words map[string]domain.WordRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStoreError("sqlite", "save", "beginning transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return NewStoreError("sqlite", "save", "clearing table", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (word, id, info, added_at, review_anchors,
			last_reviewed_at, review_count, mastery_level, next_review_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return NewStoreError("sqlite", "save", "preparing insert", err)
	}
	defer stmt.Close()

	for key, rec := range words {
		infoJSON, err := json.Marshal(rec.Info)
		if err != nil {
			return NewStoreError("sqlite", "save", "encoding info payload", err)
		}

		anchorsJSON, err := json.Marshal(rec.ReviewAnchors)
		if err != nil {
			return NewStoreError("sqlite", "save", "encoding review anchors", err)
		}

		var lastReviewedAt any
		if rec.LastReviewedAt != nil {
			lastReviewedAt = formatStoredTime(*rec.LastReviewedAt)
		}

		_, err = stmt.ExecContext(ctx, key, rec.ID.String(), string(infoJSON),
			formatStoredTime(rec.AddedAt), string(anchorsJSON), lastReviewedAt,
			rec.ReviewCount, rec.MasteryLevel, formatStoredTime(rec.NextReviewAt))
		if err != nil {
			return NewStoreError("sqlite", "save", fmt.Sprintf("inserting %q", key), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStoreError("sqlite", "save", "committing transaction", err)
	}

	s.logger.DebugContext(ctx, "store state saved", "backend", "sqlite", "words", len(words))
	return nil
}

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrCorruptState, s, err)
	}
	return t, nil
}
