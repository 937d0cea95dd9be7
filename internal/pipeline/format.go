// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// FormatTable writes the response as a human-readable table followed by
// the recommended angles and follow-up prompts.
func FormatTable(resp types.SearchResponse, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
	} else {
		fmt.Fprintf(w, "%-4s  %-5s  %-10s  %-60s  %s\n",
			"Rank", "Score", "Platform", "Title", "Author")
		fmt.Fprintln(w, strings.Repeat("-", 100))

		for i, r := range resp.Results {
			title := r.Title
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Fprintf(w, "%-4d  %-5.1f  %-10s  %-60s  %s\n",
				i+1, r.Score, r.Platform, title, truncate(r.Author, 20))
		}
		fmt.Fprintf(w, "\n%d results across %d platforms\n", len(resp.Results), len(resp.Meta.Platforms))
	}

	fmt.Fprintln(w, "\nRecommended angles:")
	for _, a := range resp.Meta.RecommendedAngles {
		fmt.Fprintf(w, "  - %s\n", a)
	}
	fmt.Fprintln(w, "\nNext prompts:")
	for _, p := range resp.Meta.NextPrompts {
		fmt.Fprintf(w, "  - %s\n", p)
	}
}

// FormatJSON writes the response as indented JSON to w.
func FormatJSON(resp types.SearchResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// FormatYAML writes the response as YAML to w.
func FormatYAML(resp types.SearchResponse, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(resp)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
