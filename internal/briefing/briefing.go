// Package briefing renders the extractive text briefing for a region.
//
// The output is a small markdown-like dialect: "##" headings, "**bold**"
// labels, "-" bullets, and "*...*" emphasis. Rendering that dialect to HTML
// or anything else is a consumer concern.
package briefing

import (
	"fmt"
	"strings"

	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/keywords"
	"github.com/TobiSchelling/worldnews/internal/themes"
)

// EmptyMessage is returned when there is nothing to summarize.
const EmptyMessage = "No articles available to summarize."

const (
	// bulletSnippetLimit caps the snippet excerpt shown per bullet.
	bulletSnippetLimit = 120
	// maxKeyTopics caps the "Key Topics" line.
	maxKeyTopics = 6
)

// Build renders the briefing text for an article set under a region or
// country label. It is a pure function of its inputs.
func Build(articles []feed.Article, label string) string {
	if len(articles) == 0 {
		return EmptyMessage
	}

	kws := keywords.Extract(articles)
	grouped := themes.Group(articles, kws)

	var b strings.Builder
	b.WriteString("## Today's Briefing: ")
	b.WriteString(label)
	b.WriteString("\n\n")

	for _, theme := range grouped {
		b.WriteString("**")
		b.WriteString(theme.Label)
		b.WriteString("**\n")
		for _, a := range theme.Articles {
			b.WriteString("- ")
			b.WriteString(a.Title)
			if a.Snippet != "" {
				b.WriteString(" — ")
				b.WriteString(clip(a.Snippet, bulletSnippetLimit))
			}
			b.WriteString(" *(")
			b.WriteString(a.Source)
			b.WriteString(")*\n")
		}
		b.WriteString("\n")
	}

	topics := keywords.Terms(kws)
	if len(topics) > maxKeyTopics {
		topics = topics[:maxKeyTopics]
	}
	b.WriteString("**Key Topics:** ")
	b.WriteString(strings.Join(topics, ", "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "*Based on %d articles from %s.*",
		len(articles), strings.Join(distinctSources(articles), ", "))

	return b.String()
}

// distinctSources preserves first-appearance order.
func distinctSources(articles []feed.Article) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range articles {
		if seen[a.Source] {
			continue
		}
		seen[a.Source] = true
		out = append(out, a.Source)
	}
	return out
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
