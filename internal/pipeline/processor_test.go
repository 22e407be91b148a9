package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/wirenorm/internal/database"
	"newswire/wirenorm/internal/rules"
	"newswire/wirenorm/internal/store"
)

func testStoreAndSpool(t *testing.T) (*store.Store, string) {
	t.Helper()

	cfg := database.NewConfig(filepath.Join(t.TempDir(), "test.db"))
	db, err := database.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	spool := t.TempDir()
	return store.New(db), spool
}

func writePayload(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestProcessSpool(t *testing.T) {
	s, spool := testStoreAndSpool(t)
	p := New(rules.Default(), noPlaces)

	writePayload(t, spool, "pa-1.json", `{"sourceFeed": "PA NEWS", "headline": "One", "subjects": ["HHH"]}`)
	writePayload(t, spool, "pa-2.json", `{"sourceFeed": "PA NEWS", "headline": "Two"}`)
	writePayload(t, spool, "broken.json", `{"headline": `)
	writePayload(t, spool, "notes.txt", `ignored, not a payload`)

	sp, err := NewSpoolProcessor(s, p, 2)
	require.NoError(t, err)

	require.NoError(t, sp.ProcessSpool(context.Background(), spool))

	processed, duplicates, failures := sp.Stats()
	assert.Equal(t, int64(2), processed)
	assert.Equal(t, int64(0), duplicates)
	assert.Equal(t, int64(1), failures)

	since := time.Now().UTC().Add(-time.Hour)
	records, err := s.ListRecords(context.Background(), 10, &since, nil, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// A second run over the same spool must count everything as duplicates.
func TestProcessSpoolIdempotentRerun(t *testing.T) {
	s, spool := testStoreAndSpool(t)
	p := New(rules.Default(), noPlaces)

	writePayload(t, spool, "pa-1.json", `{"sourceFeed": "PA NEWS", "headline": "One"}`)

	first, err := NewSpoolProcessor(s, p, 2)
	require.NoError(t, err)
	require.NoError(t, first.ProcessSpool(context.Background(), spool))

	second, err := NewSpoolProcessor(s, p, 2)
	require.NoError(t, err)
	require.NoError(t, second.ProcessSpool(context.Background(), spool))

	processed, duplicates, _ := second.Stats()
	assert.Equal(t, int64(0), processed)
	assert.Equal(t, int64(1), duplicates)
}

func TestRecompute(t *testing.T) {
	s, spool := testStoreAndSpool(t)
	p := New(rules.Default(), noPlaces)

	writePayload(t, spool, "pa-1.json", `{"sourceFeed": "PA NEWS", "subjects": ["iptccat:HHH"]}`)
	sp, err := NewSpoolProcessor(s, p, 1)
	require.NoError(t, err)
	require.NoError(t, sp.ProcessSpool(context.Background(), spool))

	updated, err := Recompute(context.Background(), s, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	page, err := s.FetchPage(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, []string{"paCat:HHH"}, page[0].CategoryCodes)
}
