package supabase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/atriumdata/docpipe/storage"
)

// Upload stores the binary at path within the configured bucket,
// overwriting any existing object there.
func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte) error {
	req, err := c.newRequest(ctx, http.MethodPost,
		"/storage/v1/object/"+c.bucket+"/"+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	c.logger.Debug("uploading object", "path", path, "bytes", len(data))
	return c.doJSON(req, nil)
}

// SignedURL returns a time-limited read URL for the object at path.
func (c *Client) SignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error) {
	payload := map[string]any{
		"expiresIn": int(expiresIn.Seconds()),
	}
	body, err := marshalBody(payload)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost,
		"/storage/v1/object/sign/"+c.bucket+"/"+path, body)
	if err != nil {
		return "", err
	}

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := c.doJSON(req, &signed); err != nil {
		return "", err
	}
	if signed.SignedURL == "" {
		return "", fmt.Errorf("%w: sign response carried no URL", storage.ErrRequestFailed)
	}

	// The service returns a path relative to the storage API root.
	return c.baseURL + "/storage/v1" + signed.SignedURL, nil
}
