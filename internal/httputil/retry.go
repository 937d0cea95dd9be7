// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the platform adapters.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBackoff is the fixed delay before the single retry. Tests override
// this to avoid real sleeps.
var RetryBackoff = 500 * time.Millisecond

// DoWithRetry executes an HTTP request and retries it at most once, on a
// transport error, an HTTP 429, or a 5xx response. The calls are
// read-only, so the retry is safe; a malformed body is the caller's
// concern and is never retried here.
//
// On a retryable first attempt the response body is drained and closed
// before the fixed backoff wait. If the context is cancelled during the
// wait the function returns ctx.Err(). A failing second attempt is
// returned as-is so the caller can classify it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req.Clone(ctx))
	if err == nil && !retryable(resp.StatusCode) {
		return resp, nil
	}

	if err == nil {
		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(RetryBackoff):
	}

	return client.Do(req.Clone(ctx))
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
