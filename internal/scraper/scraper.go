package scraper

import (
	"context"
	"log/slog"
	"sync"

	"firmsight-go-analyzer/internal/config"
	"firmsight-go-analyzer/internal/discovery"
	"firmsight-go-analyzer/internal/fetcher"
	"firmsight-go-analyzer/internal/models"
	"firmsight-go-analyzer/internal/parser"
)

// Scraper sequences homepage fetch, subpage discovery, and concurrent
// subpage fetches into a ScrapedSite bundle.
type Scraper struct {
	cfg     *config.Config
	fetcher *fetcher.Fetcher
}

// New builds a scraper from cfg.
func New(cfg *config.Config) *Scraper {
	return &Scraper{
		cfg:     cfg,
		fetcher: fetcher.New(cfg.MaxBodyBytes, cfg.UserAgent),
	}
}

// Metrics exposes the fetch-layer metrics bundle for the serving surface.
func (s *Scraper) Metrics() *fetcher.Metrics { return s.fetcher.Metrics }

// Scrape extracts a site bundle for rawURL. It never returns an error:
// failures degrade the bundle instead. A homepage failure is the only fatal
// path and yields an empty bundle with a single error entry.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) models.ScrapedSite {
	var site models.ScrapedSite

	markup, finalURL, err := s.fetcher.Fetch(ctx, rawURL, s.cfg.HomepageTimeout, "homepage")
	if err != nil {
		slog.Error("homepage fetch failed", slog.String("url", rawURL), slog.Any("error", err))
		site.Errors = append(site.Errors, err.Error())
		return site
	}

	home := parser.Parse(markup, finalURL)
	site.Homepage = &home

	urls := discovery.Discover(home, finalURL)
	if len(urls) > s.cfg.MaxSubpages {
		urls = urls[:s.cfg.MaxSubpages]
	}
	slog.Debug("subpages discovered", slog.String("url", finalURL), slog.Int("count", len(urls)))

	type result struct {
		page models.ParsedPage
		err  error
	}

	// All-settle join: each fetch writes only its own slot, and one slow or
	// failing subpage never cancels its siblings.
	results := make([]result, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			markup, final, err := s.fetcher.Fetch(ctx, u, s.cfg.SubpageTimeout, "subpage")
			if err != nil {
				results[i].err = err
				return
			}
			results[i].page = parser.Parse(markup, final)
		}(i, u)
	}
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			site.Errors = append(site.Errors, r.err.Error())
			continue
		}
		site.Subpages = append(site.Subpages, r.page)
	}
	return site
}
