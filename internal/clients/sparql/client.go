// Package sparql provides the resilient client for the public SPARQL
// query endpoint that feeds the atlas data layer.
package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ErrorKind classifies a definitive fetch failure
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"      // attempt deadline fired
	KindRateLimited ErrorKind = "rate_limited" // endpoint throttled us
	KindHTTP        ErrorKind = "http"         // other HTTP error status
	KindTransport   ErrorKind = "transport"    // network-level failure
	KindMalformed   ErrorKind = "malformed"    // 200 with an unparseable body
)

// FetchError is the definitive failure surfaced once a query cannot
// succeed: either a non-retryable response or an exhausted retry budget.
type FetchError struct {
	Kind      ErrorKind
	Status    int  // last HTTP status, 0 if none received
	Attempts  int  // total attempts made
	Exhausted bool // true when the retry budget ran out
	Err       error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("query failed (%s) after %d attempts: %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("query failed (%s): %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Value is a single SPARQL binding value. Every value arrives as a
// string regardless of its datatype and is coerced by the consumer.
type Value struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Binding is one result row: field name to value, fields optional
type Binding map[string]Value

// Result is the SPARQL JSON results envelope
type Result struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Options configures retry and timeout behavior
type Options struct {
	MaxRetries int           // retries after the initial attempt; 0 means a single attempt
	BaseDelay  time.Duration // backoff base (default 400ms)
	Timeout    time.Duration // per-attempt deadline (default 15s)
}

const (
	defaultBaseDelay = 400 * time.Millisecond
	defaultTimeout   = 15 * time.Second

	backoffCap = 800 * time.Millisecond
	jitterMax  = 400 * time.Millisecond

	acceptHeader = "application/sparql-results+json"
	userAgent    = "atlas/1.0 (https://github.com/aristath/atlas)"
)

// Client for a SPARQL query endpoint. Stateless between calls and safe
// to use concurrently for independent queries.
type Client struct {
	endpointURL string
	httpClient  *http.Client
	opts        Options
	log         zerolog.Logger

	// Injection points for tests
	sleep  func(time.Duration)
	jitter func() time.Duration
}

// NewClient creates a new SPARQL endpoint client
func NewClient(endpointURL string, opts Options, log zerolog.Logger) *Client {
	// Zero is a valid budget (single attempt); the default retry count
	// is supplied by config, not assumed here.
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		endpointURL: endpointURL,
		httpClient:  &http.Client{},
		opts:        opts,
		log:         log.With().Str("client", "sparql").Logger(),
		sleep:       time.Sleep,
		jitter:      func() time.Duration { return time.Duration(rand.Int63n(int64(jitterMax))) },
	}
}

// Query runs a SPARQL query against the endpoint. Transient failures
// (network errors, attempt timeouts, throttling statuses) are retried
// with capped linear backoff and jitter until the budget is spent; the
// call either returns the fully parsed result or a *FetchError.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	attempts := c.opts.MaxRetries + 1

	var lastKind ErrorKind
	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		result, kind, status, err := c.attempt(ctx, query)
		if err == nil {
			return result, nil
		}

		// A cancelled parent context is the caller's decision, not a
		// transient endpoint failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if !retryable(kind) {
			c.log.Warn().Int("status", status).Str("kind", string(kind)).Err(err).Msg("Query failed")
			return nil, &FetchError{Kind: kind, Status: status, Attempts: attempt, Err: err}
		}

		lastKind, lastStatus, lastErr = kind, status, err

		if attempt == attempts {
			break
		}

		delay := c.backoff(attempt)
		c.log.Debug().
			Int("attempt", attempt).
			Int("status", status).
			Str("kind", string(kind)).
			Dur("delay", delay).
			Msg("Transient failure, retrying")
		c.sleep(delay)
	}

	c.log.Warn().
		Int("attempts", attempts).
		Str("kind", string(lastKind)).
		Err(lastErr).
		Msg("Retry budget exhausted")

	return nil, &FetchError{
		Kind:      lastKind,
		Status:    lastStatus,
		Attempts:  attempts,
		Exhausted: true,
		Err:       lastErr,
	}
}

// attempt performs a single request with its own deadline
func (c *Client) attempt(ctx context.Context, query string) (*Result, ErrorKind, int, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	reqURL := c.endpointURL + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, KindTransport, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The attempt deadline firing aborts the in-flight request; it
		// counts as transient and against the retry budget.
		if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() == context.DeadlineExceeded {
			return nil, KindTimeout, 0, fmt.Errorf("attempt timed out after %s: %w", c.opts.Timeout, err)
		}
		return nil, KindTransport, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		kind := KindHTTP
		switch resp.StatusCode {
		case http.StatusTooManyRequests, http.StatusForbidden, http.StatusServiceUnavailable:
			kind = KindRateLimited
		}
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, kind, resp.StatusCode, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, KindMalformed, resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, "", resp.StatusCode, nil
}

// backoff computes the delay before retry n: capped linear growth plus
// jitter so the three parallel domain fetches desynchronize.
func (c *Client) backoff(attempt int) time.Duration {
	delay := c.opts.BaseDelay * time.Duration(attempt)
	if delay > backoffCap {
		delay = backoffCap
	}
	return delay + c.jitter()
}

// retryable reports whether a failure kind is worth another attempt
func retryable(kind ErrorKind) bool {
	switch kind {
	case KindTimeout, KindTransport, KindRateLimited:
		return true
	default:
		return false
	}
}
