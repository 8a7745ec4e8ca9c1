package discovery

import (
	"net/url"
	"sort"
	"strings"

	"firmsight-go-analyzer/internal/models"
)

const maxCandidates = 3

// priorityKeywords score a link as likely to describe the firm itself.
var priorityKeywords = []string{
	"about", "team", "attorneys", "lawyers", "people",
	"practice", "services", "expertise", "professionals", "our-firm",
}

// skippedExtensions are non-document targets never worth fetching.
var skippedExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg",
	".css", ".js", ".zip", ".doc", ".docx",
}

type candidate struct {
	url   string
	score int
}

// Discover ranks the homepage's same-host nav links by keyword relevance and
// returns up to 3 URLs to fetch next. Given the same homepage it always
// returns the same URLs in the same order.
func Discover(home models.ParsedPage, homeURL string) []string {
	base, err := url.Parse(homeURL)
	if err != nil || base.Host == "" {
		return nil
	}
	homePath := normalizePath(base.Path)

	seen := map[string]struct{}{}
	var candidates []candidate

	for _, link := range home.NavLinks {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if !strings.EqualFold(u.Hostname(), base.Hostname()) {
			continue
		}
		path := normalizePath(u.Path)
		if path == homePath {
			continue
		}
		if hasSkippedExtension(path) {
			continue
		}

		key := u.Scheme + "://" + u.Host + path
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		haystack := strings.ToLower(path + " " + link.Text)
		score := 0
		for _, kw := range priorityKeywords {
			if strings.Contains(haystack, kw) {
				score++
			}
		}
		if score == 0 {
			continue
		}
		candidates = append(candidates, candidate{url: link.URL, score: score})
	}

	// Stable sort keeps original link order for ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := len(candidates)
	if n > maxCandidates {
		n = maxCandidates
	}
	out := make([]string, 0, n)
	for _, c := range candidates[:n] {
		out = append(out, c.url)
	}
	return out
}

func normalizePath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		p = "/"
	}
	return p
}

func hasSkippedExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
