package storage

import (
	"context"

	"github.com/poiesic/deskindex/core"
)

// PassageRepository provides write access to the vector-indexed passage
// store. The store's query path is deliberately absent: indexing is a
// write-only concern and retrieval belongs to downstream consumers.
// Implementations must be thread-safe; the indexer writes a ticket's
// passages concurrently.
type PassageRepository interface {
	// UpsertPassage writes one passage row keyed by (URL, ChunkNumber).
	// Re-writing the same key with new content replaces the row, so
	// re-running a whole indexing pass never creates duplicates.
	UpsertPassage(ctx context.Context, passage *core.Passage) error

	// Close releases the repository's resources.
	Close() error
}

// CheckpointRepository persists per-status-filter watermarks between runs.
// It backs the optional incremental indexing mode; the default full-reindex
// mode never touches it.
type CheckpointRepository interface {
	// SaveCheckpoint persists the checkpoint for its status filter.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a status filter.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, statusFilter string) (*core.Checkpoint, error)

	// Close releases the repository's resources.
	Close() error
}
