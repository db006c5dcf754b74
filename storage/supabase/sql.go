package supabase

import (
	"context"
	"net/http"
)

// ExecuteSQL forwards raw parameterized SQL to the relational service and
// returns the result rows. No parsing or validation happens here; the
// trust boundary is the caller's.
func (c *Client) ExecuteSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	if params == nil {
		params = map[string]any{}
	}
	payload := map[string]any{
		"query":  query,
		"params": params,
	}
	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/sql/v1", body)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := c.doJSON(req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
