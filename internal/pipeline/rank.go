// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"sort"

	"github.com/pdiddy/signal-scout/pkg/types"
)

// Rank orders results by score descending. Equal scores fall back to
// the fixed platform precedence; the sort is stable, so within one
// platform the adapter's original order survives. The ranked set is
// truncated to maxResults afterwards, never before scoring, so a
// higher-scored item is never dropped in favor of a lower-scored one.
func Rank(results []types.Result, maxResults int) []types.Result {
	ranked := make([]types.Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Platform.Precedence() < ranked[j].Platform.Precedence()
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}
