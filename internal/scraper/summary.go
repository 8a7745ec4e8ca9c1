package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"firmsight-go-analyzer/internal/models"
)

// TruncationMarker is appended when a summary was cut at its budget.
const TruncationMarker = "\n[content truncated]"

const maxSummaryNavLinks = 15

// BuildSummary renders the bundle into a labeled text summary bounded at
// limit characters. The second return is false when the bundle has no usable
// content (absent homepage), signaling the caller to fall back to
// inference-based analysis.
func BuildSummary(site models.ScrapedSite, limit int) (string, bool) {
	if site.Homepage == nil {
		return "", false
	}

	var b strings.Builder
	writeSection(&b, "Homepage", *site.Homepage)
	for _, sub := range site.Subpages {
		writeSection(&b, pageLabel(sub.URL), sub)
	}

	out := b.String()
	runes := []rune(out)
	if len(runes) > limit {
		out = string(runes[:limit]) + TruncationMarker
	}
	return out, true
}

// pageLabel names a subpage section by its discovery role, inferred from the
// URL path. Only the path is inspected: hostnames tend to contain "firm".
func pageLabel(pageURL string) string {
	lower := strings.ToLower(pageURL)
	if u, err := url.Parse(pageURL); err == nil {
		lower = strings.ToLower(u.Path)
	}
	switch {
	case containsAny(lower, "team", "attorneys", "lawyers", "people", "professionals"):
		return "Team Page"
	case containsAny(lower, "practice", "services", "expertise"):
		return "Practice Areas Page"
	case containsAny(lower, "about", "our-firm", "firm"):
		return "About Page"
	default:
		return "Additional Page"
	}
}

func writeSection(b *strings.Builder, label string, p models.ParsedPage) {
	fmt.Fprintf(b, "=== %s ===\n", label)
	fmt.Fprintf(b, "URL: %s\n", p.URL)
	if p.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", p.Title)
	}
	if p.MetaDescription != "" {
		fmt.Fprintf(b, "Description: %s\n", p.MetaDescription)
	}
	if p.Slogan != "" {
		fmt.Fprintf(b, "Slogan (%s): %s\n", p.SloganLocation, p.Slogan)
	}
	if len(p.SchemaData) > 0 {
		fmt.Fprintf(b, "Structured data: %s\n", strings.Join(p.SchemaData, " | "))
	}
	if p.HeaderText != "" {
		fmt.Fprintf(b, "Header/nav text: %s\n", p.HeaderText)
	}
	if len(p.Headings) > 0 {
		fmt.Fprintf(b, "Headings: %s\n", strings.Join(p.Headings, "; "))
	}
	if p.BodyText != "" {
		fmt.Fprintf(b, "Content: %s\n", p.BodyText)
	}
	if len(p.ImageAlts) > 0 {
		fmt.Fprintf(b, "Image alts: %s\n", strings.Join(p.ImageAlts, "; "))
	}
	if len(p.NavLinks) > 0 {
		links := p.NavLinks
		if len(links) > maxSummaryNavLinks {
			links = links[:maxSummaryNavLinks]
		}
		parts := make([]string, 0, len(links))
		for _, l := range links {
			if l.Text != "" {
				parts = append(parts, fmt.Sprintf("%s (%s)", l.Text, l.URL))
			} else {
				parts = append(parts, l.URL)
			}
		}
		fmt.Fprintf(b, "Nav links: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
