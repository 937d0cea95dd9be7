// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the search stages together: validate the
// payload, fan out to the platform adapters, score, rank, synthesize
// insights, and assemble the response envelope.
package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/signal-scout/internal/insight"
	"github.com/pdiddy/signal-scout/internal/orchestrate"
	"github.com/pdiddy/signal-scout/internal/platform"
	"github.com/pdiddy/signal-scout/internal/scoring"
	"github.com/pdiddy/signal-scout/pkg/types"
)

// Handle runs the whole pipeline for one untyped payload. Failures are
// *ValidationError when the payload is bad, *orchestrate.AggregationError
// when every platform failed, and *orchestrate.InternalError on an
// invariant violation; the boundary layer maps those onto its own
// status codes.
func Handle(ctx context.Context, payload map[string]any, reg *platform.Registry, cfg types.SearchConfig, logger *logrus.Logger) (types.SearchResponse, error) {
	req, err := Validate(payload)
	if err != nil {
		return types.SearchResponse{}, err
	}
	return Run(ctx, req, reg, cfg, logger)
}

// Run executes the pipeline for an already-validated request.
func Run(ctx context.Context, req types.SearchRequest, reg *platform.Registry, cfg types.SearchConfig, logger *logrus.Logger) (types.SearchResponse, error) {
	merged, attempted, err := orchestrate.Run(ctx, req, reg, cfg.AdapterTimeout, logger)
	if err != nil {
		return types.SearchResponse{}, err
	}

	scoring.Apply(merged)
	ranked := Rank(merged, cfg.MaxResults)
	angles, prompts := insight.Synthesize(req.Query(), ranked, attempted)

	return assemble(req.Query(), ranked, attempted, angles, prompts), nil
}

// assemble builds the response envelope and stamps the assembly time.
// Pure composition; no failure modes of its own.
func assemble(query string, ranked []types.Result, attempted []types.PlatformID, angles, prompts []string) types.SearchResponse {
	return types.SearchResponse{
		Results: ranked,
		Meta: types.ResponseMeta{
			Query:             query,
			GeneratedAt:       time.Now().UTC(),
			Platforms:         attempted,
			RecommendedAngles: angles,
			NextPrompts:       prompts,
		},
	}
}
