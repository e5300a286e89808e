package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download starts a GET of url and returns the open body with its content
// type. The caller must close the body.
func Download(ctx context.Context, client *http.Client, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, "", fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
