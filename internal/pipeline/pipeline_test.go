// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/signal-scout/internal/orchestrate"
	"github.com/pdiddy/signal-scout/internal/platform"
	"github.com/pdiddy/signal-scout/pkg/types"
)

type stubAdapter struct {
	platform types.PlatformID
	results  []types.Result
	err      error
}

func (s *stubAdapter) Platform() types.PlatformID { return s.platform }

func (s *stubAdapter) Search(_ context.Context, _ string) ([]types.Result, error) {
	return s.results, s.err
}

func stubRegistry() *platform.Registry {
	reg := &platform.Registry{}
	reg.Register(&stubAdapter{platform: types.PlatformReddit, results: []types.Result{
		{ID: "reddit:1", Platform: types.PlatformReddit, Title: "Agent memory patterns",
			Metadata: map[string]float64{"upvotes": 900, "comments": 120}},
		{ID: "reddit:2", Platform: types.PlatformReddit, Title: "Memory and retrieval",
			Metadata: map[string]float64{"upvotes": 40, "comments": 3}},
	}})
	reg.Register(&stubAdapter{platform: types.PlatformHackerNews, results: []types.Result{
		{ID: "hackernews:9", Platform: types.PlatformHackerNews, Title: "Agent memory revisited",
			Metadata: map[string]float64{"points": 310, "comments": 150}},
	}})
	reg.Register(&stubAdapter{platform: types.PlatformDevto, results: nil})
	return reg
}

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig:     types.HTTPConfig{Timeout: time.Second, UserAgent: "test/0.1"},
		MaxPerPlatform: 25,
		MaxResults:     40,
		AdapterTimeout: time.Second,
	}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func validPayload() map[string]any {
	return map[string]any{
		"query":     "ai agents",
		"platforms": []any{"reddit", "hackernews", "devto"},
	}
}

func TestHandleEndToEnd(t *testing.T) {
	resp, err := Handle(context.Background(), validPayload(), stubRegistry(), testCfg(), quietLogger())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(resp.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(resp.Results))
	}

	// Sorted by score descending, every score finite on the 0-10 band.
	for i, r := range resp.Results {
		if r.Score < 0 || r.Score > 10 {
			t.Errorf("Results[%d].Score = %v, outside band", i, r.Score)
		}
		if i > 0 && resp.Results[i-1].Score < r.Score {
			t.Errorf("Results not sorted at %d: %v < %v", i, resp.Results[i-1].Score, r.Score)
		}
	}

	// IDs unique within the response.
	seen := make(map[string]bool)
	for _, r := range resp.Results {
		if seen[r.ID] {
			t.Errorf("duplicate ID %q", r.ID)
		}
		seen[r.ID] = true
	}

	if resp.Meta.Query != "ai agents" {
		t.Errorf("Meta.Query = %q", resp.Meta.Query)
	}
	if len(resp.Meta.Platforms) != 3 {
		t.Errorf("Meta.Platforms = %v, want all three attempted", resp.Meta.Platforms)
	}
	if resp.Meta.GeneratedAt.IsZero() {
		t.Error("Meta.GeneratedAt not stamped")
	}
	if len(resp.Meta.RecommendedAngles) < 3 || len(resp.Meta.NextPrompts) < 3 {
		t.Errorf("insights too thin: %d angles, %d prompts",
			len(resp.Meta.RecommendedAngles), len(resp.Meta.NextPrompts))
	}
}

func TestHandleValidationFailureSkipsAdapters(t *testing.T) {
	reg := &platform.Registry{}
	reg.Register(&stubAdapter{platform: types.PlatformReddit, err: errors.New("must not be called")})

	_, err := Handle(context.Background(), map[string]any{"query": "", "platforms": []any{"reddit"}}, reg, testCfg(), quietLogger())

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
}

func TestHandleTotalFailure(t *testing.T) {
	reg := &platform.Registry{}
	for _, p := range types.AllPlatforms() {
		reg.Register(&stubAdapter{platform: p, err: &platform.Error{Platform: p, Cause: platform.CauseTransport}})
	}

	_, err := Handle(context.Background(), validPayload(), reg, testCfg(), quietLogger())

	var agg *orchestrate.AggregationError
	if !errors.As(err, &agg) {
		t.Fatalf("err = %v, want *AggregationError", err)
	}
	if len(agg.Failures) != 3 {
		t.Errorf("len(Failures) = %d, want 3", len(agg.Failures))
	}
}

func TestHandleIdempotentModuloTimestamp(t *testing.T) {
	first, err := Handle(context.Background(), validPayload(), stubRegistry(), testCfg(), quietLogger())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	second, err := Handle(context.Background(), validPayload(), stubRegistry(), testCfg(), quietLogger())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	// Only generatedAt may differ.
	second.Meta.GeneratedAt = first.Meta.GeneratedAt

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("responses differ for identical inputs:\n%s\n%s", a, b)
	}
}
