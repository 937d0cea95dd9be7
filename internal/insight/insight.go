// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package insight derives recommended research angles and follow-up
// prompts from a ranked result set. The synthesis is heuristic and
// deterministic: recurring terms in the top titles and excerpts become
// themes, platforms that came back empty become gaps, and query-only
// templates fill in when the corpus is thin. Determinism and bounded
// output are the contract here, not editorial quality.
package insight

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/signal-scout/pkg/types"
)

const (
	// minItems and maxItems bound both output sequences.
	minItems = 3
	maxItems = 5

	// topCorpus is how many ranked results feed theme detection.
	topCorpus = 15

	// maxThemes caps detected sub-themes.
	maxThemes = 3
)

// stopwords are common terms excluded from theme detection.
var stopwords = map[string]bool{
	"about": true, "after": true, "against": true, "also": true,
	"been": true, "before": true, "being": true, "best": true,
	"between": true, "build": true, "building": true, "could": true,
	"does": true, "doing": true, "down": true, "every": true,
	"from": true, "getting": true, "have": true, "here": true,
	"how": true, "into": true, "just": true, "like": true,
	"made": true, "make": true, "making": true, "more": true,
	"most": true, "much": true, "need": true, "only": true,
	"other": true, "over": true, "really": true, "should": true,
	"show": true, "some": true, "still": true, "than": true,
	"that": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true,
	"using": true, "very": true, "want": true, "what": true,
	"when": true, "where": true, "which": true, "will": true,
	"with": true, "without": true, "would": true, "your": true,
}

// Synthesize produces 3-5 recommended angles and 3-5 follow-up prompts
// for the query, given the ranked corpus and the platforms attempted.
// Identical inputs always yield identical outputs, and both sequences
// are non-empty even for an empty corpus.
func Synthesize(query string, ranked []types.Result, attempted []types.PlatformID) (angles, prompts []string) {
	themes := detectThemes(query, ranked)
	gaps := emptyPlatforms(ranked, attempted)

	for _, th := range themes {
		angles = append(angles, fmt.Sprintf("%s through the lens of %s", query, th))
	}
	for _, a := range genericAngles(query) {
		if len(angles) >= maxItems {
			break
		}
		angles = append(angles, a)
	}
	angles = bound(angles)

	for _, p := range gaps {
		prompts = append(prompts, fmt.Sprintf("Why is there so little %s discussion on %s?", query, p))
	}
	for _, th := range themes {
		if len(prompts) >= maxItems {
			break
		}
		prompts = append(prompts, fmt.Sprintf("What problems do people hit when combining %s with %s?", query, th))
	}
	for _, p := range genericPrompts(query) {
		if len(prompts) >= maxItems {
			break
		}
		prompts = append(prompts, p)
	}
	prompts = bound(prompts)

	return angles, prompts
}

func genericAngles(query string) []string {
	return []string{
		fmt.Sprintf("Underserved segments in the %s conversation", query),
		fmt.Sprintf("Common objections to %s and how practitioners answer them", query),
		fmt.Sprintf("Tooling and workflow gaps around %s", query),
		fmt.Sprintf("How newcomers approach %s today", query),
	}
}

func genericPrompts(query string) []string {
	return []string{
		fmt.Sprintf("Who are the most-engaged voices on %s right now?", query),
		fmt.Sprintf("What changed in the %s conversation over the last year?", query),
		fmt.Sprintf("Which claims about %s keep repeating without evidence?", query),
	}
}

// detectThemes returns up to maxThemes terms that recur across the top
// of the ranked corpus, excluding stopwords and the query's own terms.
// Ties break alphabetically so the output is stable.
func detectThemes(query string, ranked []types.Result) []string {
	queryTerms := make(map[string]bool)
	for _, w := range tokenize(query) {
		queryTerms[w] = true
	}

	counts := make(map[string]int)
	limit := len(ranked)
	if limit > topCorpus {
		limit = topCorpus
	}
	for _, r := range ranked[:limit] {
		seen := make(map[string]bool)
		for _, w := range tokenize(r.Title + " " + r.Excerpt) {
			if stopwords[w] || queryTerms[w] || seen[w] {
				continue
			}
			// Count each term once per result so one chatty excerpt
			// cannot manufacture a theme.
			seen[w] = true
			counts[w]++
		}
	}

	var terms []string
	for w, n := range counts {
		if n >= 2 {
			terms = append(terms, w)
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxThemes {
		terms = terms[:maxThemes]
	}
	return terms
}

// emptyPlatforms lists attempted platforms that contributed no results,
// in precedence order.
func emptyPlatforms(ranked []types.Result, attempted []types.PlatformID) []types.PlatformID {
	have := make(map[types.PlatformID]bool)
	for _, r := range ranked {
		have[r.Platform] = true
	}

	var gaps []types.PlatformID
	for _, p := range attempted {
		if !have[p] {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// tokenize lowercases and splits on non-alphanumeric runes, keeping
// words of four or more characters.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var words []string
	for _, f := range fields {
		if len([]rune(f)) >= 4 {
			words = append(words, f)
		}
	}
	return words
}

func bound(items []string) []string {
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}
