// Package themes partitions articles into keyword-labeled topic buckets.
package themes

import (
	"strings"

	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/keywords"
)

// OtherLabel names the catch-all bucket for articles no keyword claimed.
const OtherLabel = "Other Headlines"

const (
	// minMatches is how many unused articles a keyword must match to open
	// a theme of its own.
	minMatches = 2
	// maxPerTheme caps articles per keyword theme.
	maxPerTheme = 4
	// maxOther caps the catch-all bucket.
	maxOther = 5
)

// Theme is a labeled group of articles. No article appears in more than one
// theme.
type Theme struct {
	Label    string
	Articles []feed.Article
}

// Group walks the keywords in order and buckets unused articles whose
// title or snippet mentions the keyword. Keywords matching fewer than 2
// unused articles open no theme and leave their articles available.
// Whatever remains unused lands in "Other Headlines", if anything does.
func Group(articles []feed.Article, kws []keywords.Keyword) []Theme {
	used := make([]bool, len(articles))
	var themes []Theme

	for _, kw := range kws {
		var matched []int
		for i, a := range articles {
			if used[i] {
				continue
			}
			text := strings.ToLower(a.Title + " " + a.Snippet)
			if strings.Contains(text, kw.Term) {
				matched = append(matched, i)
			}
		}
		if len(matched) < minMatches {
			continue
		}

		if len(matched) > maxPerTheme {
			matched = matched[:maxPerTheme]
		}
		theme := Theme{Label: capitalize(kw.Term)}
		for _, i := range matched {
			used[i] = true
			theme.Articles = append(theme.Articles, articles[i])
		}
		themes = append(themes, theme)
	}

	var rest []feed.Article
	for i, a := range articles {
		if used[i] {
			continue
		}
		rest = append(rest, a)
		if len(rest) == maxOther {
			break
		}
	}
	if len(rest) > 0 {
		themes = append(themes, Theme{Label: OtherLabel, Articles: rest})
	}

	return themes
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
