// Package cluster groups near-duplicate articles reporting the same event
// and picks one representative per group.
package cluster

import (
	"regexp"
	"strings"

	"github.com/TobiSchelling/worldnews/internal/feed"
)

// OverlapThreshold is the minimum title token-overlap ratio for two articles
// to be considered the same story.
const OverlapThreshold = 0.5

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// Dedupe clusters articles by title similarity and returns one representative
// per cluster, in first-seen cluster order. The scan is a plain O(n²)
// pairwise comparison over titles; region article sets stay small (≤ ~60),
// so no approximate indexing is needed.
func Dedupe(articles []feed.Article) []feed.Article {
	tokens := make([]map[string]bool, len(articles))
	for i, a := range articles {
		tokens[i] = titleTokens(a.Title)
	}

	clustered := make([]bool, len(articles))
	var out []feed.Article

	for i := range articles {
		if clustered[i] {
			continue
		}
		clustered[i] = true
		members := []int{i}

		for j := i + 1; j < len(articles); j++ {
			if clustered[j] {
				continue
			}
			if overlap(tokens[i], tokens[j]) >= OverlapThreshold {
				clustered[j] = true
				members = append(members, j)
			}
		}

		out = append(out, representative(articles, members))
	}
	return out
}

// titleTokens lower-cases a title, strips non-alphanumeric characters, and
// keeps whitespace-separated tokens longer than 3 characters.
func titleTokens(title string) map[string]bool {
	clean := nonAlnumRe.ReplaceAllString(strings.ToLower(title), "")
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(clean) {
		if len(w) > 3 {
			tokens[w] = true
		}
	}
	return tokens
}

// overlap is |a ∩ b| / min(|a|, |b|), with the divisor floored at 1.
func overlap(a, b map[string]bool) float64 {
	shared := 0
	for t := range a {
		if b[t] {
			shared++
		}
	}
	smaller := min(len(a), len(b))
	if smaller < 1 {
		smaller = 1
	}
	return float64(shared) / float64(smaller)
}

// representative picks the article that stands for a cluster: prefer one
// with an image, then a longer snippet, then a more recent publish time.
// Ties keep the earliest-encountered member.
func representative(articles []feed.Article, members []int) feed.Article {
	best := members[0]
	for _, m := range members[1:] {
		if better(articles[m], articles[best]) {
			best = m
		}
	}

	rep := articles[best]
	if len(members) > 1 {
		rep.CoveredBy = len(members)
		rep.OtherSources = otherSources(articles, members, rep.Source)
	}
	return rep
}

func better(candidate, current feed.Article) bool {
	if (candidate.Image != "") != (current.Image != "") {
		return candidate.Image != ""
	}
	if len(candidate.Snippet) != len(current.Snippet) {
		return len(candidate.Snippet) > len(current.Snippet)
	}
	return candidate.PublishedAt.After(current.PublishedAt)
}

func otherSources(articles []feed.Article, members []int, repSource string) []string {
	var names []string
	seen := map[string]bool{repSource: true}
	for _, m := range members {
		name := articles[m].Source
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
