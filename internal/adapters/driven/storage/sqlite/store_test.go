package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/namedrop/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "spans.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='accepted_spans'",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_ReopenDoesNotReapplyMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SpanStore().Add(context.Background(), "doc", []domain.AcceptedSpan{{Start: 0, Length: 4}}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	spans, err := second.SpanStore().List(context.Background(), "doc")
	require.NoError(t, err)
	assert.Len(t, spans, 1)
}

func TestStore_Migrate_FailedMigrationIsNotRecorded(t *testing.T) {
	store := setupTestStore(t)

	bad := fstest.MapFS{
		"002_broken.up.sql": &fstest.MapFile{Data: []byte("CREATE TABLE broken (;")},
	}

	err := store.migrate(bad)
	require.Error(t, err)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_Migrate_SkipsUnversionedFiles(t *testing.T) {
	store := setupTestStore(t)

	extra := fstest.MapFS{
		"readme.up.sql":      &fstest.MapFile{Data: []byte("garbage")},
		"002_notes.down.sql": &fstest.MapFile{Data: []byte("garbage")},
	}

	assert.NoError(t, store.migrate(extra))
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== SpanStore Tests ====================

func TestSpanStore_AddAndList(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()

	err := spans.Add(ctx, "chapter-1", []domain.AcceptedSpan{
		{Start: 103, Length: 5, NameType: "placeName", URI: "http://dbpedia.org/resource/Paris", SurfaceForm: "Paris"},
		{Start: 7, Length: 10, NameType: "persName", SurfaceForm: "Victor Hugo"},
	})
	require.NoError(t, err)

	got, err := spans.List(ctx, "chapter-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 7, got[0].Start)
	assert.Equal(t, domain.NameType("persName"), got[0].NameType)
	assert.Equal(t, 103, got[1].Start)
	assert.Equal(t, 5, got[1].Length)
	assert.Equal(t, "http://dbpedia.org/resource/Paris", got[1].URI)
	assert.Equal(t, "Paris", got[1].SurfaceForm)
	for _, s := range got {
		assert.NotEmpty(t, s.ID)
		assert.False(t, s.CreatedAt.IsZero())
	}
}

func TestSpanStore_PreservesIDAndCreatedAt(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()
	created := time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

	require.NoError(t, spans.Add(ctx, "doc", []domain.AcceptedSpan{
		{ID: "fixed-id", Start: 1, Length: 2, CreatedAt: created},
	}))

	got, err := spans.List(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fixed-id", got[0].ID)
	assert.True(t, created.Equal(got[0].CreatedAt), "got %v", got[0].CreatedAt)
	assert.Equal(t, domain.Untyped, got[0].NameType)
}

func TestSpanStore_List_Empty(t *testing.T) {
	spans := setupTestStore(t).SpanStore()

	got, err := spans.List(context.Background(), "unknown")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSpanStore_Add_Empty(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	assert.NoError(t, spans.Add(context.Background(), "doc", nil))
}

func TestSpanStore_Add_InvalidSpanStoresNothing(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()

	err := spans.Add(ctx, "doc", []domain.AcceptedSpan{
		{Start: 0, Length: 3},
		{Start: 10, Length: 0},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, _ := spans.List(ctx, "doc")
	assert.Empty(t, got)
}

func TestSpanStore_Add_DuplicateIDRollsBack(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()
	require.NoError(t, spans.Add(ctx, "doc", []domain.AcceptedSpan{{ID: "taken", Start: 50, Length: 1}}))

	err := spans.Add(ctx, "doc", []domain.AcceptedSpan{
		{Start: 0, Length: 3},
		{ID: "taken", Start: 10, Length: 2},
	})

	require.Error(t, err)
	got, _ := spans.List(ctx, "doc")
	require.Len(t, got, 1)
	assert.Equal(t, "taken", got[0].ID)
}

func TestSpanStore_Remove(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()
	require.NoError(t, spans.Add(ctx, "doc", []domain.AcceptedSpan{
		{ID: "a", Start: 0, Length: 1},
		{ID: "b", Start: 5, Length: 1},
	}))

	require.NoError(t, spans.Remove(ctx, "doc", "a"))

	got, _ := spans.List(ctx, "doc")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	assert.ErrorIs(t, spans.Remove(ctx, "doc", "a"), domain.ErrNotFound)
	assert.ErrorIs(t, spans.Remove(ctx, "other-doc", "b"), domain.ErrNotFound)
}

func TestSpanStore_Clear(t *testing.T) {
	spans := setupTestStore(t).SpanStore()
	ctx := context.Background()
	require.NoError(t, spans.Add(ctx, "doc", []domain.AcceptedSpan{{Start: 0, Length: 1}, {Start: 3, Length: 1}}))
	require.NoError(t, spans.Add(ctx, "keep", []domain.AcceptedSpan{{Start: 0, Length: 1}}))

	require.NoError(t, spans.Clear(ctx, "doc"))

	got, _ := spans.List(ctx, "doc")
	assert.Empty(t, got)
	kept, _ := spans.List(ctx, "keep")
	assert.Len(t, kept, 1)
}
