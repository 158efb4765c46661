// Package netx holds small HTTP helpers shared by client code.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response is echoed into the error.
const maxErrorBody = 512

// UploadToS3PresignedURL PUTs file to a presigned URL. contentType must be
// the one the URL was signed with, otherwise S3 rejects the signature.
func UploadToS3PresignedURL(ctx context.Context, hc *http.Client, url, contentType string, file []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(file))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
