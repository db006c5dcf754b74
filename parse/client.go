// Package parse provides the client for the external document parsing
// service. The service accepts either a raw file upload or a URL pointing
// at a stored binary, applies the named extraction pipeline, and returns a
// semi-structured document tree.
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/atriumdata/docpipe/doctree"
)

// Response is the parsing service reply: the pipeline that was applied and
// the extracted document tree.
type Response struct {
	Pipeline string        `json:"pipeline"`
	Document doctree.Value `json:"document"`
}

// Config holds connection details for the parsing service.
type Config struct {
	// Endpoint is the full parse URL, e.g. "https://api.example.com/v1/parse".
	Endpoint string

	// APIKey is sent as a bearer token.
	APIKey string

	// Timeout bounds each request round trip. Zero means 120s; parsing
	// large documents is slow.
	Timeout time.Duration
}

// Client is a minimal REST client to the parsing service.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient creates a parsing service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		logger:   slog.Default().With("component", "parse-client"),
	}
}

// ParseURL submits a stored binary by URL together with the pipeline to
// apply. The schema mirrors the pipeline name.
func (c *Client) ParseURL(ctx context.Context, fileURL, pipeline string) (*Response, error) {
	payload := map[string]string{
		"url":      fileURL,
		"pipeline": pipeline,
		"schema":   pipeline,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("submitting document url for parsing", "pipeline", pipeline)
	return c.do(req)
}

// ParseFile submits a raw file as multipart form data. An optional
// pipeline hint tells the service which extraction profile to prefer.
func (c *Client) ParseFile(ctx context.Context, file io.Reader, filename, pipelineHint string) (*Response, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if pipelineHint != "" {
		if err := form.WriteField("pipeline", pipelineHint); err != nil {
			return nil, err
		}
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	c.logger.Debug("submitting document file for parsing", "filename", filename, "pipeline", pipelineHint)
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		message := string(bytes.TrimSpace(body))
		if message == "" {
			message = resp.Status
		}
		return nil, fmt.Errorf("document parsing failed (%d): %s", resp.StatusCode, message)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding parse response: %w", err)
	}
	return &parsed, nil
}
