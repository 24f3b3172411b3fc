// Package fetcher retrieves raw product page content over HTTP.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "pricewatch/internal/errors"
)

// Fetcher performs one GET per call with a browser-like identity and a
// bounded timeout. Transport failures come back as ErrFetchFailed; the
// caller decides what a failed URL means for the rest of the cycle.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher with the given timeout and User-Agent header.
func New(timeout time.Duration, userAgent string) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch GETs the URL and returns the response body. Any transport-level
// failure — timeout, DNS, non-2xx status — is an error; Fetch never
// panics and never retries (the polling interval is the retry backoff).
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.Wrap(apperrors.ErrFetchFailed,
			fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	return string(body), nil
}
