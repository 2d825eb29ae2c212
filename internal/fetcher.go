package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Fetcher performs single GETs against addon endpoints. One shared client,
// one fixed per-request timeout; a slow provider times out on its own without
// affecting anything else.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: requestTimeout},
	}
}

// GetJSON fetches url and decodes the body into v. Any failure comes back as
// a *FetchError so callers can log it and move on to the next provider.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{URL: url, Kind: fetchNetwork, Err: err}
	}
	req.Header.Set("User-Agent", "DeckFlix/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return &FetchError{URL: url, Kind: fetchNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &FetchError{URL: url, Kind: fetchHTTPStatus, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &FetchError{URL: url, Kind: fetchBadBody, Err: err}
	}
	return nil
}
