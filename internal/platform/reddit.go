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

// redditAPIBase is the public reddit search endpoint. Declared as a var
// so tests can substitute an httptest server.
var redditAPIBase = "https://www.reddit.com/search.json"

// redditOAuthBase is the authenticated endpoint used when an access
// token is configured.
var redditOAuthBase = "https://oauth.reddit.com/search.json"

// RedditAdapter queries reddit's post search.
type RedditAdapter struct {
	client  *http.Client
	cfg     types.SearchConfig
	limiter *rate.Limiter
}

// NewRedditAdapter builds the reddit adapter.
func NewRedditAdapter(client *http.Client, cfg types.SearchConfig) *RedditAdapter {
	return &RedditAdapter{client: client, cfg: cfg, limiter: newLimiter(cfg)}
}

// Platform returns the adapter's platform identifier.
func (a *RedditAdapter) Platform() types.PlatformID { return types.PlatformReddit }

// Search queries reddit and normalizes the listing into Results.
func (a *RedditAdapter) Search(ctx context.Context, query string) ([]types.Result, error) {
	token := a.cfg.Reddit.AccessToken
	if a.cfg.Reddit.RequireAuth && token == "" {
		return nil, &Error{
			Platform: types.PlatformReddit,
			Cause:    CauseEmptyCredentials,
			Err:      fmt.Errorf("require_auth is set but no access token is configured"),
		}
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, &Error{Platform: types.PlatformReddit, Cause: classify(ctx, err), Err: err}
	}

	base := redditAPIBase
	if token != "" {
		base = redditOAuthBase
	}
	params := url.Values{
		"q":        {query},
		"limit":    {fmt.Sprintf("%d", maxItems(a.cfg))},
		"sort":     {"relevance"},
		"type":     {"link"},
		"raw_json": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Platform: types.PlatformReddit, Cause: CauseTransport, Err: err}
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client, req)
	if err != nil {
		return nil, &Error{Platform: types.PlatformReddit, Cause: classify(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Platform: types.PlatformReddit,
			Cause:    statusCause(resp.StatusCode),
			Err:      fmt.Errorf("reddit returned HTTP %d", resp.StatusCode),
		}
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, &Error{Platform: types.PlatformReddit, Cause: CauseMalformedResponse, Err: err}
	}

	var results []types.Result
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.ID == "" || post.Title == "" {
			continue
		}

		link := post.URL
		if post.Permalink != "" {
			link = "https://www.reddit.com" + post.Permalink
		}

		results = append(results, types.Result{
			ID:       string(types.PlatformReddit) + ":" + post.ID,
			Platform: types.PlatformReddit,
			Title:    post.Title,
			URL:      link,
			Excerpt:  sanitizeExcerpt(post.Selftext),
			Author:   post.Author,
			Metadata: map[string]float64{
				"upvotes":  float64(post.Score),
				"comments": float64(post.NumComments),
			},
		})
		if len(results) >= maxItems(a.cfg) {
			break
		}
	}
	return results, nil
}

// reddit listing JSON structures.
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Selftext    string `json:"selftext"`
	Author      string `json:"author"`
	Permalink   string `json:"permalink"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Subreddit   string `json:"subreddit"`
}
