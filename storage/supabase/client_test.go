package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{URL: srv.URL, APIKey: "service-key"})
}

func TestCreateDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/documents", r.URL.Path)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "memo.pdf", payload["title"])
		assert.Equal(t, "queued", payload["status"])

		io.WriteString(w, `[{"id":"doc-1","title":"memo.pdf","pipeline":"offering_memo_om_pipeline","status":"queued"}]`)
	})

	doc, err := client.CreateDocument(context.Background(), &core.Document{
		Title:      "memo.pdf",
		SourceType: "application/pdf",
		Pipeline:   "offering_memo_om_pipeline",
		Status:     core.StatusQueued,
	})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, core.StatusQueued, doc.Status)
}

func TestGetDocumentNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.missing", r.URL.Query().Get("id"))
		io.WriteString(w, `[]`)
	})

	_, err := client.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateDocumentPartialPatch(t *testing.T) {
	var patch map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.doc-1", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		w.WriteHeader(http.StatusNoContent)
	})

	status := core.StatusParsing
	path := "doc-1/abc-memo.pdf"
	err := client.UpdateDocument(context.Background(), "doc-1", storage.DocumentUpdate{
		Status:      &status,
		StoragePath: &path,
	})
	require.NoError(t, err)

	assert.Equal(t, "parsing", patch["status"])
	assert.Equal(t, path, patch["storage_path"])
	assert.NotContains(t, patch, "parsed_json")
}

func TestDeleteAndInsertChunks(t *testing.T) {
	var deleted string
	var inserted []map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			deleted = r.URL.Query().Get("document_id")
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&inserted))
			w.WriteHeader(http.StatusCreated)
		}
	})

	require.NoError(t, client.DeleteChunks(context.Background(), "doc-1"))
	assert.Equal(t, "eq.doc-1", deleted)

	chunks := []*core.Chunk{
		{DocumentID: "doc-1", ChunkIndex: 0, Content: "first", Embedding: []float32{0.1}},
		{DocumentID: "doc-1", ChunkIndex: 1, Content: "second", Embedding: []float32{0.2}},
	}
	require.NoError(t, client.InsertChunks(context.Background(), chunks))
	require.Len(t, inserted, 2)
	assert.Equal(t, float64(0), inserted[0]["chunk_index"])
	assert.Equal(t, "second", inserted[1]["content"])
}

func TestInsertChunksEmptyBatchSkipsRequest(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	require.NoError(t, client.InsertChunks(context.Background(), nil))
	assert.False(t, called)
}

func TestUploadSetsUpsertAndContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/documents/doc-1/tok-memo.pdf", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "binary", string(data))
		w.WriteHeader(http.StatusOK)
	})

	err := client.Upload(context.Background(), "doc-1/tok-memo.pdf", "application/pdf", []byte("binary"))
	require.NoError(t, err)
}

func TestSignedURL(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/sign/documents/doc-1/tok-memo.pdf", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		io.WriteString(w, `{"signedURL":"/object/sign/documents/doc-1/tok-memo.pdf?token=xyz"}`)
	})

	url, err := client.SignedURL(context.Background(), "doc-1/tok-memo.pdf", 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, float64(1800), payload["expiresIn"])
	assert.Contains(t, url, "/storage/v1/object/sign/documents/doc-1/tok-memo.pdf?token=xyz")
}

func TestMatchChunks(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/match_document_embeddings", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		io.WriteString(w, `[
			{"id":"c1","document_id":"doc-1","chunk_index":2,"content":"noi rose","score":0.91},
			{"id":"c2","document_id":"doc-1","chunk_index":5,"content":"vacancy fell","score":0.78}
		]`)
	})

	matches, err := client.MatchChunks(context.Background(), []float32{0.5, 0.5}, 5, 0.7)
	require.NoError(t, err)

	assert.Equal(t, float64(5), payload["match_limit"])
	assert.Equal(t, 0.7, payload["match_threshold"])
	require.Len(t, matches, 2)
	assert.Equal(t, "noi rose", matches[0].Chunk)
	assert.Equal(t, 0.91, matches[0].Score)
	assert.Equal(t, 5, matches[1].ChunkIndex)
}

func TestExecuteSQL(t *testing.T) {
	var payload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sql/v1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		io.WriteString(w, `[{"metric":"noi","value":1250000}]`)
	})

	rows, err := client.ExecuteSQL(context.Background(),
		"select metric, value from financial_facts where property_id = :pid",
		map[string]any{"pid": "p-1"})
	require.NoError(t, err)

	assert.Equal(t, "select metric, value from financial_facts where property_id = :pid", payload["query"])
	require.Len(t, rows, 1)
	assert.Equal(t, "noi", rows[0]["metric"])
}

func TestRequestFailureCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"duplicate key"}`)
	})

	_, err := client.CreateDocument(context.Background(), &core.Document{Title: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrRequestFailed)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "duplicate key")
}
