package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func rssBody(itemCount int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test Feed</title>`)
	for i := 1; i <= itemCount; i++ {
		fmt.Fprintf(&b,
			`<item><title>Story %d</title><link>https://example.com/%d</link>`+
				`<description>Snippet &lt;b&gt;number&lt;/b&gt; %d</description>`+
				`<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate></item>`, i, i, i)
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

func TestFetchCapsAtTenItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody(14))
	}))
	defer ts.Close()

	f := NewFetcher(5*time.Second, "WorldNews/1.0")
	articles, err := f.Fetch(context.Background(), Source{Name: "Test", URL: ts.URL, Logo: "T"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 10 {
		t.Errorf("expected 10 articles, got %d", len(articles))
	}
	if articles[0].Title != "Story 1" {
		t.Errorf("expected feed order preserved, got %q first", articles[0].Title)
	}
	if articles[0].Source != "Test" || articles[0].SourceLogo != "T" {
		t.Errorf("source attribution missing: %+v", articles[0])
	}
	if strings.Contains(articles[0].Snippet, "<b>") {
		t.Errorf("snippet should be stripped of markup: %q", articles[0].Snippet)
	}
}

func TestFetchFailureReturnsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := NewFetcher(5*time.Second, "WorldNews/1.0")
	if _, err := f.Fetch(context.Background(), Source{Name: "Broken", URL: ts.URL}); err == nil {
		t.Error("expected an error for a failing feed")
	}
}

func TestFromItemFallbacks(t *testing.T) {
	before := time.Now()
	a := fromItem(&gofeed.Item{}, Source{Name: "S", Logo: "L"})

	if a.Title != "No title" {
		t.Errorf("expected title fallback, got %q", a.Title)
	}
	if a.Link != "#" {
		t.Errorf("expected link fallback, got %q", a.Link)
	}
	if a.PublishedAt.Before(before) {
		t.Error("expected publish time to default to now")
	}
	if a.MediaKind != MediaArticle {
		t.Errorf("expected article media kind, got %q", a.MediaKind)
	}
}

func TestFromItemPrefersPublishedDate(t *testing.T) {
	pub := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	upd := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	a := fromItem(&gofeed.Item{Title: "T", Link: "https://example.com", PublishedParsed: &pub, UpdatedParsed: &upd}, Source{})
	if !a.PublishedAt.Equal(pub) {
		t.Errorf("expected published date, got %v", a.PublishedAt)
	}

	a = fromItem(&gofeed.Item{Title: "T", Link: "https://example.com", UpdatedParsed: &upd}, Source{})
	if !a.PublishedAt.Equal(upd) {
		t.Errorf("expected updated date fallback, got %v", a.PublishedAt)
	}
}

func TestFromItemSnippetTruncated(t *testing.T) {
	long := strings.Repeat("a", 300)
	a := fromItem(&gofeed.Item{Title: "T", Link: "https://example.com", Description: long}, Source{})
	if len(a.Snippet) != 200 {
		t.Errorf("expected 200-char snippet, got %d", len(a.Snippet))
	}
}

func TestFromItemContentFallback(t *testing.T) {
	a := fromItem(&gofeed.Item{Title: "T", Link: "https://example.com", Content: "<p>body text</p>"}, Source{})
	if a.Snippet != "body text" {
		t.Errorf("expected content fallback for snippet, got %q", a.Snippet)
	}
}

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"<p>Hello <b>world</b></p>":      "Hello world",
		"Fish &amp; chips &gt; salad":    "Fish & chips > salad",
		"plain":                          "plain",
		"spaced\n\n  out   text":         "spaced out text",
		"<img src='x.jpg'/>with picture": "with picture",
	}
	for in, want := range cases {
		if got := stripHTML(in); got != want {
			t.Errorf("stripHTML(%q) = %q, want %q", in, got, want)
		}
	}
}
