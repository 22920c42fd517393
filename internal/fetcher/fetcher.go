// Package fetcher issues the HTTP requests for listing, detail and file
// addresses. It owns the client identity, retries with exponential backoff
// and the politeness rate limit. Nothing is cached.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// Options configures a Fetcher. Zero values fall back to the defaults below.
type Options struct {
	UserAgent         string
	Timeout           time.Duration // per attempt
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	RequestsPerSecond float64 // 0 disables the limiter
}

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxAttempts    = 3
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 8 * time.Second
	backoffMultiplier     = 2.0
)

// Fetcher performs GET requests against the listing site.
type Fetcher struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
	log     *zap.Logger
}

// New creates a Fetcher. The client keeps cookies across requests so that
// any session the site hands out survives between listing and detail pages.
func New(opts Options, log *zap.Logger) (*Fetcher, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}
	if log == nil {
		log = zap.NewNop()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	// Streamed downloads may legitimately take minutes, so the client has no
	// overall timeout; only waiting for response headers is bounded.
	transport.ResponseHeaderTimeout = opts.Timeout

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Fetcher{
		client:  &http.Client{Transport: transport, Jar: jar},
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}, nil
}

// Fetch returns the full body of address. The whole attempt, body
// included, is bounded by the configured timeout.
func (f *Fetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	var body []byte
	err := f.retry(ctx, address, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()

		resp, err := f.do(attemptCtx, address)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return classify(attemptCtx, address, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Open returns the live response for address so the caller can stream the
// body. Only connecting and receiving headers are retried. The caller must
// close the body.
func (f *Fetcher) Open(ctx context.Context, address string) (*http.Response, error) {
	var resp *http.Response
	err := f.retry(ctx, address, func(ctx context.Context) error {
		var err error
		resp, err = f.do(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// do issues a single GET and turns non-2xx responses into FetchErrors.
func (f *Fetcher) do(ctx context.Context, address string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, classify(ctx, address, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", address, err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, address, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		resp.Body.Close()
		return nil, &FetchError{Kind: KindHTTPStatus, URL: address, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// retry runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. Delays grow exponentially up to MaxBackoff.
func (f *Fetcher) retry(ctx context.Context, address string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= f.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var fe *FetchError
		if !errors.As(err, &fe) {
			return err
		}
		fe.Attempts = attempt
		if !fe.Retryable() || attempt == f.opts.MaxAttempts {
			return fe
		}

		delay := f.backoff(attempt)
		f.log.Debug("retrying request",
			zap.String("url", address),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (f *Fetcher) backoff(attempt int) time.Duration {
	d := time.Duration(float64(f.opts.InitialBackoff) * math.Pow(backoffMultiplier, float64(attempt-1)))
	if d > f.opts.MaxBackoff {
		d = f.opts.MaxBackoff
	}
	return d
}

// classify maps transport errors onto FetchError kinds. A cancelled parent
// context is returned as-is so callers see context.Canceled.
func classify(ctx context.Context, address string, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{Kind: KindTimeout, URL: address, Err: err}
	}
	return &FetchError{Kind: KindNetwork, URL: address, Err: err}
}
