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

// devtoAPIBase is the dev.to feed-content search endpoint. Declared as a
// var so tests can substitute an httptest server.
var devtoAPIBase = "https://dev.to/search/feed_content"

// DevtoAdapter queries dev.to's article search. An API key is optional
// and only raises rate limits.
type DevtoAdapter struct {
	client  *http.Client
	cfg     types.SearchConfig
	limiter *rate.Limiter
}

// NewDevtoAdapter builds the devto adapter.
func NewDevtoAdapter(client *http.Client, cfg types.SearchConfig) *DevtoAdapter {
	return &DevtoAdapter{client: client, cfg: cfg, limiter: newLimiter(cfg)}
}

// Platform returns the adapter's platform identifier.
func (a *DevtoAdapter) Platform() types.PlatformID { return types.PlatformDevto }

// Search queries dev.to and normalizes the articles into Results.
func (a *DevtoAdapter) Search(ctx context.Context, query string) ([]types.Result, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &Error{Platform: types.PlatformDevto, Cause: classify(ctx, err), Err: err}
	}

	params := url.Values{
		"search_fields": {query},
		"per_page":      {fmt.Sprintf("%d", maxItems(a.cfg))},
		"class_name":    {"Article"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, devtoAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Platform: types.PlatformDevto, Cause: CauseTransport, Err: err}
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	if a.cfg.Devto.APIKey != "" {
		req.Header.Set("api-key", a.cfg.Devto.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client, req)
	if err != nil {
		return nil, &Error{Platform: types.PlatformDevto, Cause: classify(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Platform: types.PlatformDevto,
			Cause:    statusCause(resp.StatusCode),
			Err:      fmt.Errorf("dev.to returned HTTP %d", resp.StatusCode),
		}
	}

	var body devtoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &Error{Platform: types.PlatformDevto, Cause: CauseMalformedResponse, Err: err}
	}

	var results []types.Result
	for _, art := range body.Result {
		if art.ID == 0 || art.Title == "" {
			continue
		}

		author := art.User.Name
		if author == "" {
			author = art.User.Username
		}

		results = append(results, types.Result{
			ID:       fmt.Sprintf("%s:%d", types.PlatformDevto, art.ID),
			Platform: types.PlatformDevto,
			Title:    art.Title,
			URL:      "https://dev.to" + art.Path,
			Excerpt:  sanitizeExcerpt(art.Description),
			Author:   author,
			Metadata: map[string]float64{
				"reactions": float64(art.PublicReactionsCount),
				"comments":  float64(art.CommentsCount),
			},
		})
		if len(results) >= maxItems(a.cfg) {
			break
		}
	}
	return results, nil
}

// dev.to search JSON structures.
type devtoResponse struct {
	Result []devtoArticle `json:"result"`
}

type devtoArticle struct {
	ID                   int    `json:"id"`
	Title                string `json:"title"`
	Path                 string `json:"path"`
	Description          string `json:"description"`
	PublicReactionsCount int    `json:"public_reactions_count"`
	CommentsCount        int    `json:"comments_count"`
	User                 struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}
