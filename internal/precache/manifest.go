package precache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ManifestEntry is one build asset: its path and a revision fingerprint
// that changes whenever the content does.
type ManifestEntry struct {
	URL      string `json:"url"`
	Revision string `json:"revision"`
}

// Fetcher downloads the manifest and asset bodies from the storefront
// origin.
type Fetcher struct {
	origin string
	client *http.Client
}

func NewFetcher(origin string, timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		origin: strings.TrimRight(origin, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Manifest fetches and decodes the precache manifest.
func (f *Fetcher) Manifest(ctx context.Context, path string) ([]ManifestEntry, error) {
	body, _, err := f.Download(ctx, path)
	if err != nil {
		return nil, err
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return entries, nil
}

func (f *Fetcher) Download(ctx context.Context, url string) ([]byte, string, error) {
	if strings.HasPrefix(url, "/") {
		url = f.origin + url
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d for %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
