// Package http provides an HTTP-based result writer that pushes extraction
// results to an external inventory endpoint.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/printwatch"
)

// DefaultPushTimeout is the default timeout for push requests.
const DefaultPushTimeout = 10 * time.Second

// DefaultRetryDelays returns the backoff delays for push retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure PushWriter implements printwatch.ResultWriter at compile time.
var _ printwatch.ResultWriter = (*PushWriter)(nil)

// PushWriter POSTs each result as a JSON object to a configured endpoint.
// Transient failures are retried with exponential backoff.
type PushWriter struct {
	url     string
	token   string
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
}

// Option configures a PushWriter.
type Option func(*PushWriter)

// WithTimeout sets the timeout for push requests.
// Defaults to DefaultPushTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(w *PushWriter) {
		w.timeout = d
	}
}

// WithRetryDelays sets the backoff delays between retry attempts.
// Useful for testing without waiting for real delays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(w *PushWriter) {
		w.delays = delays
	}
}

// NewPushWriter creates a PushWriter for the given endpoint. The token, if
// not empty, is sent as a bearer credential; it should come from the
// environment, never from code.
func NewPushWriter(url, token string, opts ...Option) *PushWriter {
	w := &PushWriter{
		url:     url,
		token:   token,
		timeout: DefaultPushTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.client = &http.Client{Timeout: w.timeout}

	return w
}

// WriteResult pushes the result to the endpoint, retrying transient
// failures with exponential backoff.
func (w *PushWriter) WriteResult(ctx context.Context, result *printwatch.ExtractionResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(result)
	if err != nil {
		return printwatch.Errorf(printwatch.EINTERNAL, "marshal result for %s: %v", result.SourceFile, err)
	}

	maxAttempts := len(w.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = w.push(ctx, body)
		if lastErr == nil {
			return nil
		}

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.delays[attempt]):
		}
	}

	return printwatch.Errorf(printwatch.EINTERNAL, "push %s after %d attempts: %v", result.SourceFile, maxAttempts, lastErr)
}

func (w *PushWriter) push(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
