package supabase

import (
	"context"
	"net/http"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
)

const extractedTable = "/rest/v1/extracted_data"

// InsertExtractedRecord persists the cleansed full-document artifact and
// returns the stored row with its generated ID.
func (c *Client) InsertExtractedRecord(ctx context.Context, record *core.ExtractedRecord) (*core.ExtractedRecord, error) {
	payload := map[string]any{
		"document_id":  record.DocumentID,
		"raw_json":     record.RawJSON,
		"text_content": record.TextContent,
	}
	// A blank document legitimately has no embedding; send explicit null.
	if record.Embedding != nil {
		payload["embedding"] = record.Embedding
	} else {
		payload["embedding"] = nil
	}

	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, extractedTable, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []core.ExtractedRecord
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}
