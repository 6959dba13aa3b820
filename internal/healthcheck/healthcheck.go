// Package healthcheck posts run summaries to a healthchecks.io-style
// endpoint, keyed by severity.
package healthcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkoosis/dw/dw"
)

// Defaults match the transport contract the wrapper has always had: a
// bounded per-request timeout and a fixed retry budget.
const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 5
)

// Pinger delivers severity-qualified pings over HTTP. The zero value is not
// usable; construct with New.
type Pinger struct {
	client  *http.Client
	retries int
	backoff func(attempt int) time.Duration
}

// Option configures a Pinger.
type Option func(*Pinger)

// WithTimeout bounds each HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(p *Pinger) { p.client.Timeout = d }
}

// WithRetries sets the retry budget after the first attempt.
func WithRetries(n int) Option {
	return func(p *Pinger) { p.retries = n }
}

// WithBackoff overrides the inter-attempt delay, for tests.
func WithBackoff(f func(attempt int) time.Duration) Option {
	return func(p *Pinger) { p.backoff = f }
}

// New returns a Pinger with the default timeout and retry budget.
func New(opts ...Option) *Pinger {
	p := &Pinger{
		client:  &http.Client{Timeout: DefaultTimeout},
		retries: DefaultRetries,
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s, ... capped at 16s.
			d := time.Duration(1<<(attempt-1)) * time.Second
			if d > 16*time.Second {
				d = 16 * time.Second
			}
			return d
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ping POSTs body to <endpoint>/<severity>. Network errors and 5xx
// responses are retried up to the budget; other non-2xx responses fail
// immediately. The caller decides what a failure means — for the wrapper it
// is always non-fatal.
func (p *Pinger) Ping(ctx context.Context, endpoint string, severity dw.Severity, body string) error {
	if err := ValidateURL(endpoint); err != nil {
		return err
	}
	target := fmt.Sprintf("%s/%d", strings.TrimRight(endpoint, "/"), int(severity))

	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			t := time.NewTimer(p.backoff(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "text/plain; charset=utf-8")

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, target)
		if resp.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}

// ValidateURL is the explicit acceptance policy for captured ping URLs: an
// http or https scheme and a non-empty host. The capture regex itself stays
// permissive so the policy can evolve independently.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid health-check URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("health-check URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("health-check URL %q: missing host", raw)
	}
	return nil
}
