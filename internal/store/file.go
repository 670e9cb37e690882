package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/recite/internal/domain"
)

// fileSchemaVersion is the schema version written by this binary. Bump it
// whenever the envelope or record shape changes incompatibly.
const fileSchemaVersion = 1

// fileEnvelope is the on-disk shape of the file store: a versioned wrapper
// around the word mapping so that future rewrites can detect old state
// instead of misparsing it.
type fileEnvelope struct {
	Version int                          `json:"version"`
	Words   map[string]domain.WordRecord `json:"words"`
}

// FileStore persists word records as a single versioned JSON document.
// Saves go through a temp-file-then-rename sequence so a crash mid-save
// leaves the previous state intact.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, NewStoreError("file", "init", "path cannot be empty", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		path:   path,
		logger: logger,
	}, nil
}

// Load implements WordStore. A missing file yields an empty map.
func (s *FileStore) Load(ctx context.Context) (map[string]domain.WordRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.DebugContext(ctx, "no prior store state, starting empty", "path", s.path)
			return map[string]domain.WordRecord{}, nil
		}
		return nil, NewStoreError("file", "load", "reading state file", err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	if envelope.Version != fileSchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrUnsupportedVersion, envelope.Version, fileSchemaVersion)
	}

	if envelope.Words == nil {
		envelope.Words = map[string]domain.WordRecord{}
	}

	return envelope.Words, nil
}

// Save implements WordStore. The document is written to a temp file in the
// destination directory and renamed into place.
func (s *FileStore) Save(ctx context.Context, words map[string]domain.WordRecord) error {
	envelope := fileEnvelope{
		Version: fileSchemaVersion,
		Words:   words,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return NewStoreError("file", "save", "encoding state", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".recite-*.json")
	if err != nil {
		return NewStoreError("file", "save", "creating temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewStoreError("file", "save", "writing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewStoreError("file", "save", "closing temp file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return NewStoreError("file", "save", "replacing state file", err)
	}

	s.logger.DebugContext(ctx, "store state saved", "path", s.path, "words", len(words))
	return nil
}
