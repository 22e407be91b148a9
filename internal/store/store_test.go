package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/wirenorm/internal/database"
	"newswire/wirenorm/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	cfg := database.NewConfig(filepath.Join(t.TempDir(), "test.db"))
	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db)
}

func testRecord(externalID string) *models.ProcessedRecord {
	return &models.ProcessedRecord{
		ExternalID: externalID,
		Supplier:   "PA",
		Content: models.NormalizedInputBody{
			Headline: "Test headline",
			Keywords: []string{"test"},
			BodyText: "<p>Body.</p>",
		},
		CategoryCodes: []string{"paCat:HHH"},
	}
}

func TestInsertIfAbsent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	inserted, err := s.InsertIfAbsent(ctx, testRecord("item-1"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// Second delivery of the same id is a duplicate, not an error.
	inserted, err = s.InsertIfAbsent(ctx, testRecord("item-1"))
	require.NoError(t, err)
	assert.False(t, inserted)

	since := time.Now().UTC().Add(-time.Hour)
	records, err := s.ListRecords(ctx, 10, &since, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "item-1", records[0].ExternalID)
	assert.Equal(t, []string{"paCat:HHH"}, records[0].CategoryCodes)
	assert.Equal(t, "Test headline", records[0].Content.Headline)
}

func TestInsertBatchCountsDuplicates(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	batch := []models.ProcessedRecord{
		*testRecord("item-1"),
		*testRecord("item-2"),
		*testRecord("item-1"),
	}
	inserted, duplicates, failed, err := s.InsertBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 1, duplicates)
	assert.Equal(t, 0, failed)
}

func TestFetchPageAndUpdateCategoryCodes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.InsertIfAbsent(ctx, testRecord(id))
		require.NoError(t, err)
	}

	page, err := s.FetchPage(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)

	rest, err := s.FetchPage(ctx, page[1].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	require.NoError(t, s.UpdateCategoryCodes(ctx, page[0].ID, "PA", []string{"paCat:NEW"}))
	reread, err := s.FetchPage(ctx, page[0].ID-1, 1)
	require.NoError(t, err)
	require.Len(t, reread, 1)
	assert.Equal(t, []string{"paCat:NEW"}, reread[0].CategoryCodes)
}

func TestPurgeOlderThan(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.InsertIfAbsent(ctx, testRecord("keep"))
	require.NoError(t, err)

	purged, err := s.PurgeOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	purged, err = s.PurgeOlderThan(ctx, time.Now().UTC().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
