package supabase

import (
	"context"
	"net/http"

	"github.com/atriumdata/docpipe/core"
)

const matchRPC = "/rest/v1/rpc/match_document_embeddings"

// MatchChunks performs a nearest-neighbor search over stored chunk vectors
// via the match_document_embeddings RPC. Results arrive ranked by
// descending similarity.
func (c *Client) MatchChunks(ctx context.Context, embedding []float32, limit int, threshold float64) ([]core.VectorMatch, error) {
	payload := map[string]any{
		"query_embedding": embedding,
		"match_limit":     limit,
		"match_threshold": threshold,
	}
	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, matchRPC, body)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID         string  `json:"id"`
		DocumentID string  `json:"document_id"`
		ChunkIndex int     `json:"chunk_index"`
		Content    string  `json:"content"`
		Score      float64 `json:"score"`
	}
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}

	matches := make([]core.VectorMatch, len(rows))
	for i, row := range rows {
		matches[i] = core.VectorMatch{
			ID:         row.ID,
			DocumentID: row.DocumentID,
			ChunkIndex: row.ChunkIndex,
			Chunk:      row.Content,
			Score:      row.Score,
		}
	}
	return matches, nil
}
