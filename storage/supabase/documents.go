package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/storage"
)

const documentsTable = "/rest/v1/documents"

// CreateDocument inserts a new document row and returns the stored row
// with generated ID and timestamps.
func (c *Client) CreateDocument(ctx context.Context, doc *core.Document) (*core.Document, error) {
	payload := map[string]any{
		"title":       doc.Title,
		"source_type": doc.SourceType,
		"pipeline":    doc.Pipeline,
		"status":      doc.Status,
	}
	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, documentsTable, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	var rows []core.Document
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}

	c.logger.Debug("created document row", "id", rows[0].ID, "pipeline", rows[0].Pipeline)
	return &rows[0], nil
}

// GetDocument retrieves one document row by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (*core.Document, error) {
	query := documentsTable + "?id=eq." + url.QueryEscape(id) + "&select=*"
	req, err := c.newRequest(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	var rows []core.Document
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrNotFound
	}
	return &rows[0], nil
}

// UpdateDocument applies a partial update to the document row.
// Nil fields of the update are left untouched.
func (c *Client) UpdateDocument(ctx context.Context, id string, update storage.DocumentUpdate) error {
	patch := map[string]any{}
	if update.Status != nil {
		patch["status"] = *update.Status
	}
	if update.StoragePath != nil {
		patch["storage_path"] = *update.StoragePath
	}
	if update.ParsedJSON != nil {
		patch["parsed_json"] = update.ParsedJSON
	}
	if len(patch) == 0 {
		return nil
	}

	body, err := marshalBody(patch)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPatch, documentsTable+"?id=eq."+url.QueryEscape(id), body)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}
