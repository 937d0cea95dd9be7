// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrate fans a validated search out to the selected
// platform adapters concurrently and merges the successes. One adapter's
// failure never cancels or delays the others; partial coverage is the
// normal happy path.
package orchestrate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/signal-scout/internal/platform"
	"github.com/pdiddy/signal-scout/pkg/types"
)

var adapterFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "signal_scout_adapter_failures_total",
	Help: "Platform adapter failures by platform and cause.",
}, []string{"platform", "cause"})

// AggregationError reports that every selected adapter failed, so there
// is nothing to return.
type AggregationError struct {
	Failures []*platform.Error
}

func (e *AggregationError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return "all platforms failed: " + strings.Join(msgs, "; ")
}

// InternalError is an invariant violation, such as a validated platform
// with no registered adapter. It is always a defect.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal: " + e.Msg }

// Run invokes one adapter per requested platform in parallel, each under
// its own timeout, joins on all of them, and concatenates the successful
// normalized results in platform precedence order so the merged output
// is independent of completion order. It returns the merged results and
// the platforms actually attempted.
//
// Individual failures degrade coverage and are logged, not returned;
// only the all-failed case yields an *AggregationError.
func Run(ctx context.Context, req types.SearchRequest, reg *platform.Registry, timeout time.Duration, logger *logrus.Logger) ([]types.Result, []types.PlatformID, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	attempted := req.Platforms()

	adapters := make(map[types.PlatformID]platform.Adapter, len(attempted))
	for _, p := range attempted {
		a, ok := reg.Lookup(p)
		if !ok {
			return nil, nil, &InternalError{Msg: "no adapter registered for platform " + string(p)}
		}
		adapters[p] = a
	}

	type outcome struct {
		platform types.PlatformID
		results  []types.Result
		err      *platform.Error
	}

	ch := make(chan outcome, len(attempted))
	var wg sync.WaitGroup

	for _, p := range attempted {
		wg.Add(1)
		go func(p types.PlatformID, a platform.Adapter) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results, err := a.Search(callCtx, req.Query())
			if err != nil {
				ch <- outcome{platform: p, err: platform.AsError(p, err)}
				return
			}
			ch <- outcome{platform: p, results: results}
		}(p, adapters[p])
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	byPlatform := make(map[types.PlatformID][]types.Result, len(attempted))
	var failures []*platform.Error
	for out := range ch {
		if out.err != nil {
			failures = append(failures, out.err)
			adapterFailures.WithLabelValues(string(out.err.Platform), string(out.err.Cause)).Inc()
			logger.WithFields(logrus.Fields{
				"platform": out.err.Platform,
				"cause":    out.err.Cause,
				"query":    req.Query(),
			}).Warn("platform search failed")
			continue
		}
		byPlatform[out.platform] = out.results
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Platform.Precedence() < failures[j].Platform.Precedence()
	})

	if len(failures) == len(attempted) {
		return nil, attempted, &AggregationError{Failures: failures}
	}

	// Merge in request (precedence) order, not completion order.
	var merged []types.Result
	for _, p := range attempted {
		merged = append(merged, byPlatform[p]...)
	}
	return merged, attempted, nil
}
