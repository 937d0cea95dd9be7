// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/signal-scout/internal/httputil"
	"github.com/pdiddy/signal-scout/pkg/types"
)

// hackerNewsAPIBase is the HN Algolia search endpoint. Declared as a var
// so tests can substitute an httptest server.
var hackerNewsAPIBase = "https://hn.algolia.com/api/v1/search"

// HackerNewsAdapter queries the Hacker News Algolia search API. No
// credentials are required.
type HackerNewsAdapter struct {
	client  *http.Client
	cfg     types.SearchConfig
	limiter *rate.Limiter
}

// NewHackerNewsAdapter builds the hackernews adapter.
func NewHackerNewsAdapter(client *http.Client, cfg types.SearchConfig) *HackerNewsAdapter {
	return &HackerNewsAdapter{client: client, cfg: cfg, limiter: newLimiter(cfg)}
}

// Platform returns the adapter's platform identifier.
func (a *HackerNewsAdapter) Platform() types.PlatformID { return types.PlatformHackerNews }

// Search queries HN Algolia and normalizes the hits into Results.
func (a *HackerNewsAdapter) Search(ctx context.Context, query string) ([]types.Result, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &Error{Platform: types.PlatformHackerNews, Cause: classify(ctx, err), Err: err}
	}

	params := url.Values{
		"query":       {query},
		"tags":        {"story"},
		"hitsPerPage": {fmt.Sprintf("%d", maxItems(a.cfg))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hackerNewsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Platform: types.PlatformHackerNews, Cause: CauseTransport, Err: err}
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, a.client, req)
	if err != nil {
		return nil, &Error{Platform: types.PlatformHackerNews, Cause: classify(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Platform: types.PlatformHackerNews,
			Cause:    statusCause(resp.StatusCode),
			Err:      fmt.Errorf("hn algolia returned HTTP %d", resp.StatusCode),
		}
	}

	var body hnResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Platform: types.PlatformHackerNews, Cause: CauseMalformedResponse, Err: err}
	}

	var results []types.Result
	for _, hit := range body.Hits {
		if hit.ObjectID == "" || hit.Title == "" {
			continue
		}

		link := hit.URL
		if link == "" {
			// Ask HN and text posts have no external URL.
			link = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}

		results = append(results, types.Result{
			ID:       string(types.PlatformHackerNews) + ":" + hit.ObjectID,
			Platform: types.PlatformHackerNews,
			Title:    hit.Title,
			URL:      link,
			Excerpt:  sanitizeExcerpt(hit.StoryText),
			Author:   hit.Author,
			Metadata: map[string]float64{
				"points":   float64(hit.Points),
				"comments": float64(hit.NumComments),
			},
		})
		if len(results) >= maxItems(a.cfg) {
			break
		}
	}
	return results, nil
}

// HN Algolia API JSON structures.
type hnResponse struct {
	Hits   []hnHit `json:"hits"`
	NbHits int     `json:"nbHits"`
}

type hnHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	StoryText   string `json:"story_text"`
}
