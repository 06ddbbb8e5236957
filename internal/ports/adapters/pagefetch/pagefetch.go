// Package pagefetch retrieves video page markup over plain HTTP. The
// embedded initial-data blob is present in the static page response, so no
// browser automation is needed.
package pagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// A desktop user agent keeps the platform from serving the degraded
// no-script page variant, which omits the initial-data blob.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

type Adapter struct {
	client *http.Client
}

func New(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Adapter{client: &http.Client{Timeout: timeout}}
}

func (a *Adapter) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	return string(b), nil
}
