// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes the cross-platform signal score. Each
// platform's heterogeneous engagement metrics are folded into one
// unit-less 0-10 magnitude so that ranking across platforms compares
// like with like. Scoring is centralized here rather than in the
// adapters to keep the model consistent.
package scoring

import (
	"math"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// model holds one platform's scoring parameters: which metrics to read,
// their weights, and the normalization ceiling that maps onto 10.0.
type model struct {
	primary    string
	secondary  string
	wPrimary   float64
	wSecondary float64

	// ceiling is the weighted raw value that lands at 10.0 after the
	// log transform. Calibrated per platform so a typical strong post
	// scores near the same band everywhere.
	ceiling float64
}

var models = map[types.PlatformID]model{
	types.PlatformReddit:     {primary: "upvotes", secondary: "comments", wPrimary: 0.7, wSecondary: 0.3, ceiling: 20000},
	types.PlatformHackerNews: {primary: "points", secondary: "comments", wPrimary: 0.7, wSecondary: 0.3, ceiling: 3000},
	types.PlatformDevto:      {primary: "reactions", secondary: "comments", wPrimary: 0.7, wSecondary: 0.3, ceiling: 1500},
}

// Score computes the signal score for one result. It is pure and
// deterministic: a weighted sum of the platform's primary and secondary
// metrics, a ln(1+x) diminishing-returns transform so outliers cannot
// dominate, scaled onto a 0-10 band by the platform ceiling, rounded to
// one decimal place. Missing metrics read as 0 and negative counts are
// clamped, so the score is never negative and never NaN.
func Score(r types.Result) float64 {
	m, ok := models[r.Platform]
	if !ok {
		return 0
	}

	weighted := m.wPrimary*r.Metric(m.primary) + m.wSecondary*r.Metric(m.secondary)
	scaled := 10 * math.Log1p(weighted) / math.Log1p(m.ceiling)
	if scaled > 10 {
		scaled = 10
	}
	return math.Round(scaled*10) / 10
}

// Apply scores every result in place.
func Apply(results []types.Result) {
	for i := range results {
		results[i].Score = Score(results[i])
	}
}
