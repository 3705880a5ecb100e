// Package timeutils fetches the current time from a world time service and
// applies it to the system clock.
package timeutils

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the time service endpoint for the fixed America/Sao_Paulo zone.
const DefaultURL = "http://worldtimeapi.org/api/timezone/America/Sao_Paulo"

// Fetcher retrieves the raw time service response.
type Fetcher struct {
	URL    string
	Client *http.Client
}

// NewFetcher returns a Fetcher for url. A zero timeout leaves the client default.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch issues one GET against the configured URL and returns the body.
// There are no retries.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	body, _, err := f.fetch(ctx)
	return body, err
}

func (f *Fetcher) fetch(ctx context.Context) (string, time.Duration, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", 0, &FetchError{URL: f.URL, Err: err}
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", 0, &FetchError{URL: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, &FetchError{URL: f.URL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, &FetchError{URL: f.URL, Err: err}
	}
	rtt := time.Since(start)

	return string(data), rtt, nil
}
