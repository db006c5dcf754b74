package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atriumdata/docpipe/core"
)

const chunksTable = "/rest/v1/document_embeddings"

// DeleteChunks removes all chunk rows belonging to a document.
// Deleting when no chunks exist is a no-op, not an error.
func (c *Client) DeleteChunks(ctx context.Context, documentID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, chunksTable+"?document_id=eq."+url.QueryEscape(documentID), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// InsertChunks inserts a batch of chunk rows.
func (c *Client) InsertChunks(ctx context.Context, chunks []*core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([]map[string]any, len(chunks))
	for i, chunk := range chunks {
		rows[i] = map[string]any{
			"document_id": chunk.DocumentID,
			"chunk_index": chunk.ChunkIndex,
			"content":     chunk.Content,
			"embedding":   chunk.Embedding,
		}
	}

	body, err := marshalBody(rows)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, chunksTable, body)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
