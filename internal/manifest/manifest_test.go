// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/pdftext/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()

	store, err := NewStore(types.ManifestConfig{Dir: dir, MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, dir
}

func sampleRecord(id string) types.DocumentRecord {
	return types.DocumentRecord{
		ID:          id,
		SourcePath:  id + ".pdf",
		Pages:       3,
		Chars:       420,
		Parts:       2,
		OutputFiles: []string{id + "_часть1_из2.txt", id + "_часть2_из2.txt"},
		Status:      types.ExtractSplit,
		ProcessedAt: time.Now().UTC(),
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, sampleRecord("report"), []string{"first half", "second half"}))
	require.NoError(t, store.Record(ctx, types.DocumentRecord{
		ID:          "broken",
		SourcePath:  "broken.pdf",
		Status:      types.ExtractFailed,
		Error:       "malformed xref",
		ProcessedAt: time.Now().UTC().Add(time.Second),
	}, nil))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recently processed first.
	assert.Equal(t, "broken", records[0].ID)
	assert.Equal(t, types.ExtractFailed, records[0].Status)
	assert.Equal(t, "malformed xref", records[0].Error)

	assert.Equal(t, "report", records[1].ID)
	assert.Equal(t, 2, records[1].Parts)
	assert.Equal(t, 420, records[1].Chars)
}

func TestStore_RecordReplacesParts(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("doc")
	require.NoError(t, store.Record(ctx, rec, []string{"old content alpha", "old content beta"}))

	// Reprocess with a single part; the old parts must be gone.
	rec.Parts = 1
	rec.OutputFiles = []string{"doc.txt"}
	rec.Status = types.ExtractSaved
	require.NoError(t, store.Record(ctx, rec, []string{"fresh content gamma"}))

	results, err := store.Search(ctx, "alpha", 0)
	require.NoError(t, err)
	assert.Empty(t, results, "replaced parts must leave the index")

	results, err = store.Search(ctx, "gamma", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc", results[0].DocumentID)
	assert.Equal(t, 1, results[0].PartNum)
	assert.Equal(t, "doc.txt", results[0].FileName)
}

func TestStore_Search(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, sampleRecord("quarterly"),
		[]string{"revenue grew in the first quarter", "expenses dominated the second quarter"}))

	results, err := store.Search(ctx, "revenue", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "quarterly", results[0].DocumentID)
	assert.Contains(t, results[0].Snippet, "[revenue]")

	results, err = store.Search(ctx, "quarter", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2, "both parts match")

	_, err = store.Search(ctx, "", 0)
	assert.Error(t, err, "empty query is rejected")
}

func TestStore_SearchLimit(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		rec := sampleRecord(id)
		rec.Parts = 1
		rec.OutputFiles = []string{id + ".txt"}
		require.NoError(t, store.Record(ctx, rec, []string{"shared keyword text for " + id}))
	}

	results, err := store.Search(ctx, "keyword", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestStore_Export(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, sampleRecord("exported"), []string{"some text", "more text"}))

	require.NoError(t, store.ExportYAML(ctx))
	yamlData, err := os.ReadFile(filepath.Join(dir, indexDir, "export.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "id: exported")
	assert.Contains(t, string(yamlData), "status: split")

	require.NoError(t, store.ExportJSON(ctx))
	jsonData, err := os.ReadFile(filepath.Join(dir, indexDir, "export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"id": "exported"`)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ManifestConfig{Dir: dir}

	store, err := NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), sampleRecord("persisted"), []string{"text body"}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "persisted", records[0].ID)

	results, err := reopened.Search(context.Background(), "body", 0)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStore_CyrillicContentSearchable(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	rec := sampleRecord("отчет")
	rec.Parts = 1
	rec.OutputFiles = []string{"отчет.txt"}
	require.NoError(t, store.Record(ctx, rec, []string{"годовой отчет компании за прошлый год"}))

	results, err := store.Search(ctx, "компании", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.Contains(results[0].Snippet, "компании") ||
		strings.Contains(results[0].Snippet, "[компании]"))
}
