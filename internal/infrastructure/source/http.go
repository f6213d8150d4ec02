package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	ucerrors "github.com/johnquangdev/meeting-archive/internal/usecase/errors"
)

// HTTPOptions tunes HTTPSource
type HTTPOptions struct {
	Timeout      time.Duration
	MaxRetryTime time.Duration
	MaxSizeBytes int64
	Client       *http.Client
}

// HTTPSource downloads the archive document. Network errors and 5xx/429
// responses are retried with exponential backoff; other 4xx fail at once.
type HTTPSource struct {
	url  string
	opts HTTPOptions
}

func NewHTTPSource(url string, opts HTTPOptions) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPSource{url: url, opts: opts}
}

func (s *HTTPSource) Name() string { return "http:" + s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	var data []byte

	fetchFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.opts.Client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ucerrors.ErrSourceUnavailable, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("%w: unexpected status %d", ucerrors.ErrSourceUnavailable, resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("%w: unexpected status %d", ucerrors.ErrSourceUnavailable, resp.StatusCode))
		}

		body, err := readLimited(resp.Body, s.opts.MaxSizeBytes)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read archive body: %w", err))
		}
		data = body
		return nil
	}

	if err := backoff.Retry(fetchFn, newBackOff(ctx, s.opts.MaxRetryTime)); err != nil {
		return nil, err
	}
	return data, nil
}
