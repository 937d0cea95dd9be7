// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/signal-scout/pkg/types"
)

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"empty query", map[string]any{"query": "", "platforms": []any{"reddit"}}},
		{"whitespace query", map[string]any{"query": "   ", "platforms": []any{"reddit"}}},
		{"missing query", map[string]any{"platforms": []any{"reddit"}}},
		{"query not a string", map[string]any{"query": 7, "platforms": []any{"reddit"}}},
		{"empty platforms", map[string]any{"query": "x", "platforms": []any{}}},
		{"missing platforms", map[string]any{"query": "x"}},
		{"platforms not an array", map[string]any{"query": "x", "platforms": "reddit"}},
		{"non-string platform entry", map[string]any{"query": "x", "platforms": []any{42}}},
		{"unknown platform rejects whole request", map[string]any{"query": "x", "platforms": []any{"reddit", "myspace"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.payload)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("err = %v, want *ValidationError", err)
			}
		})
	}
}

func TestValidateTrimsAndCollapses(t *testing.T) {
	req, err := Validate(map[string]any{
		"query":     "  ai agents  ",
		"platforms": []any{"reddit", "reddit"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if req.Query() != "ai agents" {
		t.Errorf("Query() = %q, want %q", req.Query(), "ai agents")
	}
	if got := req.Platforms(); !reflect.DeepEqual(got, []types.PlatformID{types.PlatformReddit}) {
		t.Errorf("Platforms() = %v, want [reddit]", got)
	}
}

func TestValidateNormalizesPlatformOrder(t *testing.T) {
	req, err := Validate(map[string]any{
		"query":     "x",
		"platforms": []any{"devto", "reddit", "hackernews"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []types.PlatformID{types.PlatformReddit, types.PlatformHackerNews, types.PlatformDevto}
	if got := req.Platforms(); !reflect.DeepEqual(got, want) {
		t.Errorf("Platforms() = %v, want precedence order %v", got, want)
	}
}

func TestValidateAcceptsStringSlice(t *testing.T) {
	// CLI callers pass []string directly rather than decoded JSON.
	req, err := Validate(map[string]any{
		"query":     "x",
		"platforms": []string{"devto"},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := req.Platforms(); !reflect.DeepEqual(got, []types.PlatformID{types.PlatformDevto}) {
		t.Errorf("Platforms() = %v, want [devto]", got)
	}
}
