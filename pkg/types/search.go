// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the signal-scout pipeline.
package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// PlatformID identifies a supported content platform. The set is closed:
// adding a platform means adding an adapter and a registry entry.
type PlatformID string

const (
	PlatformReddit     PlatformID = "reddit"
	PlatformHackerNews PlatformID = "hackernews"
	PlatformDevto      PlatformID = "devto"
)

// AllPlatforms returns the supported platforms in fixed precedence order.
// This order is also the ranking tie-break order.
func AllPlatforms() []PlatformID {
	return []PlatformID{PlatformReddit, PlatformHackerNews, PlatformDevto}
}

// ParsePlatform converts a raw string into a PlatformID. Unknown
// identifiers are an error, never silently dropped.
func ParsePlatform(s string) (PlatformID, error) {
	switch PlatformID(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformReddit:
		return PlatformReddit, nil
	case PlatformHackerNews:
		return PlatformHackerNews, nil
	case PlatformDevto:
		return PlatformDevto, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Precedence returns the platform's position in the fixed precedence
// order. Lower sorts first on score ties.
func (p PlatformID) Precedence() int {
	for i, q := range AllPlatforms() {
		if p == q {
			return i
		}
	}
	return len(AllPlatforms())
}

// SearchRequest is a validated search: a trimmed non-empty query and a
// deduplicated, non-empty set of platforms. The zero value is invalid;
// NewSearchRequest is the only way to obtain a usable one.
type SearchRequest struct {
	query     string
	platforms []PlatformID
}

// NewSearchRequest validates the query and platform set. The query is
// trimmed and must be non-empty; platforms must be non-empty and are
// deduplicated and normalized to precedence order.
func NewSearchRequest(query string, platforms []PlatformID) (SearchRequest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchRequest{}, fmt.Errorf("query is empty")
	}
	if len(platforms) == 0 {
		return SearchRequest{}, fmt.Errorf("no platforms selected")
	}

	seen := make(map[PlatformID]bool, len(platforms))
	deduped := make([]PlatformID, 0, len(platforms))
	for _, p := range platforms {
		if _, err := ParsePlatform(string(p)); err != nil {
			return SearchRequest{}, err
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		deduped = append(deduped, p)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].Precedence() < deduped[j].Precedence()
	})

	return SearchRequest{query: query, platforms: deduped}, nil
}

// Query returns the trimmed query text.
func (r SearchRequest) Query() string { return r.query }

// Platforms returns the selected platforms in precedence order.
func (r SearchRequest) Platforms() []PlatformID {
	out := make([]PlatformID, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// Result is one normalized item from a platform search. Adapters own the
// mapping from platform-native shapes into this one; nothing upstream of
// an adapter sees a raw platform payload.
type Result struct {
	// ID is globally unique within a response: "<platform>:<native-id>".
	ID string `json:"id" yaml:"id"`

	// Platform identifies the source platform.
	Platform PlatformID `json:"platform" yaml:"platform"`

	// Title is the item title as returned by the platform.
	Title string `json:"title" yaml:"title"`

	// URL links to the item on its platform.
	URL string `json:"url" yaml:"url"`

	// Excerpt is a plain-text, length-capped snippet of the item body.
	Excerpt string `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`

	// Author is the item author, when the platform exposes one.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Metadata maps engagement metric names to counts. Keys vary by
	// platform: upvotes/comments (reddit), points/comments (hackernews),
	// reactions/comments (devto).
	Metadata map[string]float64 `json:"metadata" yaml:"metadata"`

	// Score is the cross-platform signal score on a 0-10 band, rounded
	// to one decimal place. Always finite and non-negative.
	Score float64 `json:"score" yaml:"score"`
}

// Metric returns the named metadata value. An absent key reads as 0 and
// negative counts are clamped to 0.
func (r Result) Metric(name string) float64 {
	v, ok := r.Metadata[name]
	if !ok || v < 0 {
		return 0
	}
	return v
}

// ResponseMeta describes how a SearchResponse was produced.
type ResponseMeta struct {
	Query             string       `json:"query" yaml:"query"`
	GeneratedAt       time.Time    `json:"generatedAt" yaml:"generated_at"`
	Platforms         []PlatformID `json:"platforms" yaml:"platforms"`
	RecommendedAngles []string     `json:"recommendedAngles" yaml:"recommended_angles"`
	NextPrompts       []string     `json:"nextPrompts" yaml:"next_prompts"`
}

// SearchResponse is the final output envelope: ranked results plus meta.
type SearchResponse struct {
	Results []Result     `json:"results" yaml:"results"`
	Meta    ResponseMeta `json:"meta" yaml:"meta"`
}
