package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	maxPerFeed   = 10
	snippetLimit = 200
)

// Media kinds for Article.MediaKind.
const (
	MediaArticle = "article"
	MediaVideo   = "video"
)

// Source is one RSS feed endpoint with a display name and short logo code.
type Source struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
	Logo string `yaml:"logo" json:"logo"`
}

// Article is a normalized feed item. Link is the natural identity used by
// downstream consumers; it is not guaranteed unique across sources.
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"pubDate"`
	Snippet     string    `json:"snippet"`
	Source      string    `json:"source"`
	SourceLogo  string    `json:"sourceLogo"`
	Image       string    `json:"image,omitempty"`
	Video       string    `json:"video,omitempty"`
	MediaKind   string    `json:"mediaKind"`

	// Set by the clusterer when this article stands for a cluster of
	// size > 1.
	CoveredBy    int      `json:"coveredBy,omitempty"`
	OtherSources []string `json:"otherSources,omitempty"`
}

// Fetcher parses RSS/Atom feeds into bounded article lists.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a Fetcher with the given request timeout and user agent.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = &http.Client{Timeout: timeout}
	return &Fetcher{parser: parser}
}

// Fetch retrieves one source and returns at most 10 articles in feed order.
// One attempt per call; callers treat an error as an empty contribution.
func (f *Fetcher) Fetch(ctx context.Context, source Source) ([]Article, error) {
	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	articles := make([]Article, 0, min(len(parsed.Items), maxPerFeed))
	for _, item := range parsed.Items {
		if len(articles) >= maxPerFeed {
			break
		}
		articles = append(articles, fromItem(item, source))
	}
	return articles, nil
}

// fromItem converts a feed item with best-effort fallbacks: every field
// resolves to something usable even on sparse feeds.
func fromItem(item *gofeed.Item, source Source) Article {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "No title"
	}

	link := item.Link
	if link == "" {
		link = "#"
	}

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	snippet := truncate(stripHTML(raw), snippetLimit)

	video := extractVideo(item)
	kind := MediaArticle
	if video != "" {
		kind = MediaVideo
	}

	return Article{
		Title:       title,
		Link:        link,
		PublishedAt: published,
		Snippet:     snippet,
		Source:      source.Name,
		SourceLogo:  source.Logo,
		Image:       extractImage(item),
		Video:       video,
		MediaKind:   kind,
	}
}

// stripHTML removes markup and decodes common entities.
func stripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		if r == '<' {
			inTag = true
			result.WriteRune(' ')
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	s := result.String()
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")

	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
