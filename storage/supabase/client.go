// Package supabase implements the storage interfaces against a hosted
// Supabase project: document rows through the PostgREST API, binaries
// through the storage API, nearest-neighbor search through an RPC, and
// raw SQL through the sql endpoint.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/atriumdata/docpipe/storage"
)

// Config holds connection details for a Supabase project.
type Config struct {
	// URL is the project base URL, e.g. "https://abc.supabase.co".
	URL string

	// APIKey is the service key, sent both as apikey header and bearer token.
	APIKey string

	// Bucket is the object storage bucket for uploaded binaries.
	// Defaults to "documents".
	Bucket string

	// Timeout bounds each request round trip. Zero means 60s.
	Timeout time.Duration
}

// Client is a REST client to a Supabase project implementing all the
// storage interfaces.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
	logger  *slog.Logger
}

var (
	_ storage.DocumentStore  = (*Client)(nil)
	_ storage.ExtractedStore = (*Client)(nil)
	_ storage.ChunkStore     = (*Client)(nil)
	_ storage.ObjectStore    = (*Client)(nil)
	_ storage.VectorSearcher = (*Client)(nil)
	_ storage.SQLRunner      = (*Client)(nil)
)

// NewClient creates a Supabase storage client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "documents"
	}
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: timeout},
		logger:  slog.Default().With("component", "supabase-client"),
	}
}

// newRequest builds a request with auth headers set. Content-Type defaults
// to JSON; callers overriding it do so after the call.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doJSON executes the request and decodes a JSON response into out when
// out is non-nil. Non-2xx responses become ErrRequestFailed with the
// service's status and body text preserved.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		message := string(bytes.TrimSpace(body))
		if message == "" {
			message = resp.Status
		}
		return fmt.Errorf("%w: %s %s (%d): %s", storage.ErrRequestFailed,
			req.Method, req.URL.Path, resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", storage.ErrRequestFailed, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", storage.ErrRequestFailed, err)
	}
	return nil
}

func marshalBody(payload any) (io.Reader, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
