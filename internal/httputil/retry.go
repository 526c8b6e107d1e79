// Package httputil provides HTTP helpers shared by the upstream clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay is the first backoff step. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// DoWithRetry executes req and retries transport errors and 5xx responses with
// exponential backoff (RetryBaseDelay, 2x, 4x, ...). 429 is never retried so the
// caller can surface the rate limit. maxRetries <= 0 means a single attempt.
//
// Requests with a body must be built with http.NewRequestWithContext so GetBody is set.
// After exhausting retries the last response or error is returned as-is.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	for attempt := 0; ; attempt++ {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := client.Do(attemptReq)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}
		if ctx.Err() != nil {
			if resp != nil {
				resp.Body.Close()
			}
			return nil, ctx.Err()
		}
		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
