package feed

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

var videoURLRe = regexp.MustCompile(`(?i)\.(mp4|m4v|mov|webm|avi|m3u8|mpd)(\?|$)`)

// extractImage finds an image URL for an item, in fixed priority order:
// image enclosure, media:content tagged as image, media:thumbnail, then an
// inline <img> scraped from the raw description.
func extractImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}

	for _, e := range mediaExtensions(item, "content") {
		u := e.Attrs["url"]
		if u == "" {
			continue
		}
		if e.Attrs["medium"] == "image" || strings.HasPrefix(e.Attrs["type"], "image/") {
			return u
		}
	}

	for _, e := range mediaExtensions(item, "thumbnail") {
		if u := e.Attrs["url"]; u != "" {
			return u
		}
	}

	return inlineImage(item.Description)
}

// extractVideo finds a video URL for an item: a video-typed enclosure or
// media:content element, any media URL matching a video file or streaming
// pattern, or a "/video/" segment in the item link itself.
func extractVideo(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(enc.Type, "video/") || videoURLRe.MatchString(enc.URL) {
			return enc.URL
		}
	}

	for _, e := range mediaExtensions(item, "content") {
		u := e.Attrs["url"]
		if u == "" {
			continue
		}
		if e.Attrs["medium"] == "video" || strings.HasPrefix(e.Attrs["type"], "video/") || videoURLRe.MatchString(u) {
			return u
		}
	}

	if strings.Contains(linkPath(item.Link), "/video/") {
		return item.Link
	}
	return ""
}

func mediaExtensions(item *gofeed.Item, name string) []ext.Extension {
	media, ok := item.Extensions["media"]
	if !ok {
		return nil
	}
	return media[name]
}

// inlineImage pulls the first <img src> out of raw description HTML.
func inlineImage(rawHTML string) string {
	if !strings.Contains(rawHTML, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}

func linkPath(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	return u.Path
}
