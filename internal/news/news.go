// Package news orchestrates the region pipeline: concurrent feed fetch,
// dedup clustering, caching, and briefing assembly.
package news

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/TobiSchelling/worldnews/internal/briefing"
	"github.com/TobiSchelling/worldnews/internal/cache"
	"github.com/TobiSchelling/worldnews/internal/cluster"
	"github.com/TobiSchelling/worldnews/internal/feed"
	"github.com/TobiSchelling/worldnews/internal/sources"
)

// ErrUnknownRegion marks requests for regions the registry does not know.
var ErrUnknownRegion = errors.New("unknown region")

// Fetcher fetches one feed source. *feed.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, source feed.Source) ([]feed.Article, error)
}

// Service runs the ingestion-to-briefing pipeline for regions.
type Service struct {
	registry *sources.Registry
	fetcher  Fetcher
	cache    *cache.Cache
}

// NewService creates a pipeline service.
func NewService(registry *sources.Registry, fetcher Fetcher, articleCache *cache.Cache) *Service {
	return &Service{registry: registry, fetcher: fetcher, cache: articleCache}
}

// Registry exposes the region registry backing the service.
func (s *Service) Registry() *sources.Registry {
	return s.registry
}

// RegionArticles returns the deduplicated, newest-first article list for a
// region, read through the TTL cache. Two concurrent callers may both miss
// and fetch; the last writer wins, which is harmless.
func (s *Service) RegionArticles(ctx context.Context, region string) ([]feed.Article, error) {
	region = strings.ToLower(region)
	srcs, ok := s.registry.Lookup(region)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	if articles, ok := s.cache.Get(region); ok {
		return articles, nil
	}

	merged := s.fetchAll(ctx, srcs)
	deduped := cluster.Dedupe(merged)
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})

	s.cache.Put(region, deduped)
	return deduped, nil
}

// fetchAll fans out one fetch per source. A failed source logs a warning
// and contributes nothing; it is not retried within the request.
func (s *Service) fetchAll(ctx context.Context, srcs []feed.Source) []feed.Article {
	results := make([][]feed.Article, len(srcs))
	var wg sync.WaitGroup

	for i, src := range srcs {
		i, src := i, src
		wg.Add(1)
		go func() {
			defer wg.Done()
			articles, err := s.fetcher.Fetch(ctx, src)
			if err != nil {
				log.Printf("Failed to fetch %s: %v", src.Name, err)
				return
			}
			results[i] = articles
		}()
	}
	wg.Wait()

	var merged []feed.Article
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// Briefing builds the briefing text for a region, optionally narrowed to a
// single country via the alias table.
func (s *Service) Briefing(ctx context.Context, region, country string) (string, error) {
	articles, err := s.RegionArticles(ctx, region)
	if err != nil {
		return "", err
	}

	label := sources.Label(region)
	if country != "" {
		articles = FilterByCountry(articles, country)
		label = country
	}
	return briefing.Build(articles, label), nil
}

// Refresh drops the region's cache entry and recomputes it.
func (s *Service) Refresh(ctx context.Context, region string) error {
	region = strings.ToLower(region)
	s.cache.Invalidate(region)
	articles, err := s.RegionArticles(ctx, region)
	if err != nil {
		return err
	}
	log.Printf("Refreshed %s: %d articles", region, len(articles))
	return nil
}

// FilterByCountry keeps articles whose title or snippet mentions the country
// or one of its known aliases.
func FilterByCountry(articles []feed.Article, country string) []feed.Article {
	terms := sources.AliasTerms(country)
	var out []feed.Article
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Snippet)
		for _, term := range terms {
			if strings.Contains(text, term) {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
