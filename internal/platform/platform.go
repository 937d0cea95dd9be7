// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package platform implements the per-platform search adapters and the
// registry that maps platform identifiers to them. Each adapter issues
// one read-only call to its platform's public search surface and
// normalizes the platform-native response into types.Result; raw
// platform shapes never leave this package.
package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// Cause classifies an adapter failure.
type Cause string

const (
	CauseTimeout           Cause = "timeout"
	CauseRateLimited       Cause = "rate_limited"
	CauseTransport         Cause = "transport"
	CauseMalformedResponse Cause = "malformed_response"
	CauseEmptyCredentials  Cause = "empty_credentials"
)

// Error is an adapter failure, isolated to one platform.
type Error struct {
	Platform types.PlatformID
	Cause    Cause
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Platform, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Platform, e.Cause, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Adapter searches a single platform. Each platform implements this
// interface per the Strategy pattern; the orchestrator never branches
// on platform identity.
type Adapter interface {
	Platform() types.PlatformID
	Search(ctx context.Context, query string) ([]types.Result, error)
}

// Registry maps a PlatformID to its adapter. It is the source of truth
// for which platforms are supported at runtime.
type Registry struct {
	adapters map[types.PlatformID]Adapter
}

// NewRegistry builds the three platform adapters from config. All
// adapters share one HTTP client bounded by cfg.Timeout.
func NewRegistry(cfg types.SearchConfig) *Registry {
	client := &http.Client{Timeout: cfg.Timeout}
	r := &Registry{adapters: make(map[types.PlatformID]Adapter)}
	r.Register(NewRedditAdapter(client, cfg))
	r.Register(NewHackerNewsAdapter(client, cfg))
	r.Register(NewDevtoAdapter(client, cfg))
	return r
}

// Register adds or replaces an adapter. Tests use this to install mocks.
func (r *Registry) Register(a Adapter) {
	if r.adapters == nil {
		r.adapters = make(map[types.PlatformID]Adapter)
	}
	r.adapters[a.Platform()] = a
}

// Lookup returns the adapter for a platform.
func (r *Registry) Lookup(p types.PlatformID) (Adapter, bool) {
	a, ok := r.adapters[p]
	return a, ok
}

// AsError extracts a platform *Error from err, wrapping a foreign error
// as a transport failure for the given platform when it is not one.
func AsError(p types.PlatformID, err error) *Error {
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return &Error{Platform: p, Cause: CauseTransport, Err: err}
}

// classify maps a transport-level error from client.Do to a Cause.
// Context expiry is the per-adapter timeout firing.
func classify(ctx context.Context, err error) Cause {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return CauseTimeout
	}
	return CauseTransport
}

// statusCause maps a non-200 status to a Cause. A 429 surviving the
// single retry is a rate limit; everything else is transport.
func statusCause(status int) Cause {
	if status == http.StatusTooManyRequests {
		return CauseRateLimited
	}
	return CauseTransport
}

// excerptLimit caps excerpt length in runes.
const excerptLimit = 280

// sanitizeExcerpt collapses whitespace, strips control characters, and
// truncates to excerptLimit runes on a word boundary where possible.
func sanitizeExcerpt(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	clean := strings.Join(strings.Fields(b.String()), " ")

	runes := []rune(clean)
	if len(runes) <= excerptLimit {
		return clean
	}
	cut := string(runes[:excerptLimit])
	if idx := strings.LastIndex(cut, " "); idx > excerptLimit/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// newLimiter builds the per-adapter outbound rate limiter.
func newLimiter(cfg types.SearchConfig) *rate.Limiter {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return rate.NewLimiter(rate.Limit(rps), 2)
}

// maxItems resolves the per-platform item cap.
func maxItems(cfg types.SearchConfig) int {
	if cfg.MaxPerPlatform > 0 {
		return cfg.MaxPerPlatform
	}
	return 25
}
