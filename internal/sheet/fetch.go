// Package sheet retrieves the project workbook and decodes its first
// worksheet into schema-less records.
package sheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxWorkbookSize bounds how much of the upstream body is read.
const maxWorkbookSize = 32 << 20

// Fetcher downloads the workbook on every call. It keeps no cache.
type Fetcher struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

type Option func(*Fetcher)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithTimeout bounds each Fetch call. Zero means no deadline beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

func NewFetcher(url string, opts ...Option) *Fetcher {
	f := &Fetcher{url: url, client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) URL() string { return f.url }

// Fetch retrieves the workbook and returns its first worksheet as records,
// in worksheet row order. Any failure is returned as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) ([]*Record, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, newFetchError(StageFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, newFetchError(StageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newFetchError(StageStatus, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWorkbookSize))
	if err != nil {
		return nil, newFetchError(StageFetch, err)
	}

	records, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, newFetchError(StageParse, err)
	}
	return records, nil
}
