// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/signal-scout/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxPerPlatform:    25,
		RequestsPerSecond: 1000,
	}
}

const redditBody = `{"data":{"children":[
	{"data":{"id":"abc1","title":"Agents in production","selftext":"We run  agents\nat scale.","author":"alice","permalink":"/r/golang/comments/abc1/agents/","url":"https://example.com/x","score":120,"num_comments":34,"subreddit":"golang"}},
	{"data":{"id":"abc2","title":"Show and tell","selftext":"","author":"bob","permalink":"","url":"https://example.com/y","score":5,"num_comments":1,"subreddit":"golang"}},
	{"data":{"id":"","title":"missing id, skipped"}}
]}}`

func TestRedditSearchNormalizes(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, redditBody)
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	a := NewRedditAdapter(ts.Client(), testCfg())
	results, err := a.Search(context.Background(), "ai agents")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := capturedReq.URL.Query().Get("q"); got != "ai agents" {
		t.Errorf("q param = %q, want %q", got, "ai agents")
	}
	if got := capturedReq.Header.Get("User-Agent"); got != "test/0.1" {
		t.Errorf("User-Agent = %q, want %q", got, "test/0.1")
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	r := results[0]
	if r.ID != "reddit:abc1" {
		t.Errorf("ID = %q, want reddit:abc1", r.ID)
	}
	if r.Platform != types.PlatformReddit {
		t.Errorf("Platform = %q, want reddit", r.Platform)
	}
	if r.URL != "https://www.reddit.com/r/golang/comments/abc1/agents/" {
		t.Errorf("URL = %q, want permalink-based link", r.URL)
	}
	if r.Excerpt != "We run agents at scale." {
		t.Errorf("Excerpt = %q, whitespace not collapsed", r.Excerpt)
	}
	if r.Metadata["upvotes"] != 120 || r.Metadata["comments"] != 34 {
		t.Errorf("Metadata = %v, want upvotes=120 comments=34", r.Metadata)
	}

	// Posts without a permalink fall back to the outbound URL.
	if results[1].URL != "https://example.com/y" {
		t.Errorf("fallback URL = %q", results[1].URL)
	}
}

func TestRedditSearchCapsItems(t *testing.T) {
	body := `{"data":{"children":[`
	for i := 0; i < 30; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"data":{"id":"p%d","title":"post %d","score":1,"num_comments":0}}`, i, i)
	}
	body += `]}}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	cfg := testCfg()
	cfg.MaxPerPlatform = 10

	a := NewRedditAdapter(ts.Client(), cfg)
	results, err := a.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 10 {
		t.Errorf("len(results) = %d, want 10", len(results))
	}
}

func TestRedditSearchMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	a := NewRedditAdapter(ts.Client(), testCfg())
	_, err := a.Search(context.Background(), "x")

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *platform.Error", err)
	}
	if pe.Cause != CauseMalformedResponse {
		t.Errorf("Cause = %q, want malformed_response", pe.Cause)
	}
}

func TestRedditSearchRateLimited(t *testing.T) {
	restoreBackoff := quickBackoff()
	defer restoreBackoff()

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	a := NewRedditAdapter(ts.Client(), testCfg())
	_, err := a.Search(context.Background(), "x")

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *platform.Error", err)
	}
	if pe.Cause != CauseRateLimited {
		t.Errorf("Cause = %q, want rate_limited", pe.Cause)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want exactly one retry", calls)
	}
}

func TestRedditSearchEmptyCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no network call expected")
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	cfg := testCfg()
	cfg.Reddit.RequireAuth = true

	a := NewRedditAdapter(ts.Client(), cfg)
	_, err := a.Search(context.Background(), "x")

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *platform.Error", err)
	}
	if pe.Cause != CauseEmptyCredentials {
		t.Errorf("Cause = %q, want empty_credentials", pe.Cause)
	}
}

func TestRedditSearchUsesOAuthWhenTokenSet(t *testing.T) {
	var capturedAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"data":{"children":[]}}`)
	}))
	defer ts.Close()

	old := redditOAuthBase
	redditOAuthBase = ts.URL
	defer func() { redditOAuthBase = old }()

	cfg := testCfg()
	cfg.Reddit.AccessToken = "tok123"

	a := NewRedditAdapter(ts.Client(), cfg)
	if _, err := a.Search(context.Background(), "x"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if capturedAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want bearer token", capturedAuth)
	}
}
