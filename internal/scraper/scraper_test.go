package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firmsight-go-analyzer/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	return cfg
}

const homepageHTML = `<html><head><title>Firm</title></head><body>
<nav>
<a href="/about">About</a>
<a href="/team">Our Team</a>
<a href="/practice-areas">Practice Areas</a>
</nav>
<p>Welcome to the firm.</p>
</body></html>`

func siteServer(t *testing.T, subpageStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte(homepageHTML))
			return
		}
		if subpageStatus != http.StatusOK {
			w.WriteHeader(subpageStatus)
			return
		}
		_, _ = w.Write([]byte("<html><body><h1>Subpage</h1><p>Details about us.</p></body></html>"))
	})
	return httptest.NewServer(mux)
}

func TestScrapeHappyPath(t *testing.T) {
	ts := siteServer(t, http.StatusOK)
	defer ts.Close()

	s := New(testConfig())
	site := s.Scrape(context.Background(), ts.URL)
	if site.Homepage == nil {
		t.Fatal("homepage missing")
	}
	if len(site.Subpages) != 3 {
		t.Fatalf("subpages = %d, want 3", len(site.Subpages))
	}
	if len(site.Errors) != 0 {
		t.Fatalf("unexpected errors: %#v", site.Errors)
	}
}

func TestScrapePartialFailure(t *testing.T) {
	ts := siteServer(t, http.StatusInternalServerError)
	defer ts.Close()

	s := New(testConfig())
	site := s.Scrape(context.Background(), ts.URL)
	if site.Homepage == nil {
		t.Fatal("homepage must survive subpage failures")
	}
	if len(site.Subpages) != 0 {
		t.Fatalf("subpages = %d, want 0", len(site.Subpages))
	}
	if len(site.Errors) != 3 {
		t.Fatalf("errors = %d, want 3: %#v", len(site.Errors), site.Errors)
	}
}

func TestScrapeHomepageFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	s := New(testConfig())
	site := s.Scrape(context.Background(), ts.URL)
	if site.Homepage != nil {
		t.Fatal("homepage should be absent")
	}
	if len(site.Subpages) != 0 {
		t.Fatalf("subpages = %d, want 0", len(site.Subpages))
	}
	if len(site.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(site.Errors))
	}
	if _, ok := BuildSummary(site, testConfig().SummaryLimit); ok {
		t.Fatal("summary must be absent for an empty bundle")
	}
}

func TestScrapeSubpagesKeepDiscoveryOrder(t *testing.T) {
	ts := siteServer(t, http.StatusOK)
	defer ts.Close()

	s := New(testConfig())
	site := s.Scrape(context.Background(), ts.URL)
	if len(site.Subpages) != 3 {
		t.Fatalf("subpages = %d", len(site.Subpages))
	}
	for i, want := range []string{"/about", "/team", "/practice-areas"} {
		if !strings.HasSuffix(site.Subpages[i].URL, want) {
			t.Fatalf("subpage %d = %q, want suffix %q", i, site.Subpages[i].URL, want)
		}
	}
}
