package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/deskindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *CheckpointRepository {
	t.Helper()
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewCheckpointRepository(backend)
}

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	require.NotNil(t, backend)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestCheckpoint_SaveAndLoad(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	checkpoint := &core.Checkpoint{
		StatusFilter:   "solved",
		LastUpdatedAt:  time.Date(2025, 2, 2, 3, 4, 5, 0, time.UTC),
		TicketsIndexed: 150,
	}
	require.NoError(t, repo.SaveCheckpoint(ctx, checkpoint))

	loaded, err := repo.LoadCheckpoint(ctx, "solved")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "solved", loaded.StatusFilter)
	assert.Equal(t, checkpoint.LastUpdatedAt, loaded.LastUpdatedAt)
	assert.Equal(t, 150, loaded.TicketsIndexed)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestCheckpoint_LoadMissing(t *testing.T) {
	repo := newTestRepo(t)

	loaded, err := repo.LoadCheckpoint(context.Background(), "closed")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCheckpoint_Overwrite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &core.Checkpoint{
		StatusFilter:   "solved",
		LastUpdatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TicketsIndexed: 10,
	}
	require.NoError(t, repo.SaveCheckpoint(ctx, first))

	second := &core.Checkpoint{
		StatusFilter:   "solved",
		LastUpdatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		TicketsIndexed: 25,
	}
	require.NoError(t, repo.SaveCheckpoint(ctx, second))

	loaded, err := repo.LoadCheckpoint(ctx, "solved")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, second.LastUpdatedAt, loaded.LastUpdatedAt)
	assert.Equal(t, 25, loaded.TicketsIndexed)
}

func TestCheckpoint_FiltersAreIndependent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{
		StatusFilter:   "solved",
		TicketsIndexed: 5,
	}))
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{
		StatusFilter:   "closed",
		TicketsIndexed: 9,
	}))

	solved, err := repo.LoadCheckpoint(ctx, "solved")
	require.NoError(t, err)
	require.NotNil(t, solved)
	assert.Equal(t, 5, solved.TicketsIndexed)

	closed, err := repo.LoadCheckpoint(ctx, "closed")
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.Equal(t, 9, closed.TicketsIndexed)
}

func TestCheckpoint_SurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(tmpDir, false)
	require.NoError(t, err)
	repo := NewCheckpointRepository(backend)
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{
		StatusFilter:   "solved",
		LastUpdatedAt:  time.Date(2025, 2, 2, 3, 4, 5, 0, time.UTC),
		TicketsIndexed: 42,
	}))
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(tmpDir, false)
	require.NoError(t, err)
	defer backend.Close()

	loaded, err := NewCheckpointRepository(backend).LoadCheckpoint(ctx, "solved")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 42, loaded.TicketsIndexed)
}
