package store

import (
	"context"

	"github.com/phrazzld/recite/internal/domain"
)

// WordStore defines the interface for word record persistence.
// Version: 1.0
//
// The store is a whole-map load/save pair: the application loads the full
// word-to-record mapping once at startup and saves the full mapping after
// each mutation. There is no row-level access and no locking; the design
// assumes a single process and a single user.
type WordStore interface {
	// Load reads the full word-to-record mapping, keyed by normalized word.
	// A store with no prior state returns an empty, non-nil map.
	// Returns ErrUnsupportedVersion if the persisted state was written by an
	// unknown schema version, or ErrCorruptState if it cannot be decoded.
	Load(ctx context.Context) (map[string]domain.WordRecord, error)

	// Save writes the full mapping, replacing any previous state.
	// Implementations must not leave partially written state visible if the
	// process dies mid-save.
	Save(ctx context.Context, words map[string]domain.WordRecord) error
}
