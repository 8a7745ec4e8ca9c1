package parser

import (
	"encoding/json"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"firmsight-go-analyzer/internal/models"
)

const (
	maxHeadings   = 30
	maxBodyText   = 3000
	maxHeaderText = 500
	maxNavLinks   = 30
	maxImageAlts  = 20
	maxSchemaData = 10

	sloganMinLen = 5
	sloganMaxLen = 200
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Parse deterministically converts raw markup into a ParsedPage. It never
// fails: malformed markup degrades to empty fields with the URL still set.
func Parse(markup string, pageURL string) models.ParsedPage {
	page := models.ParsedPage{URL: pageURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return page
	}
	base, _ := url.Parse(pageURL)

	page.Title = collapse(doc.Find("title").First().Text())
	page.MetaDescription = collapse(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if page.MetaDescription == "" {
		page.MetaDescription = collapse(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	// Header and nav regions are captured verbatim before removal; slogans
	// often live there and nowhere else.
	page.HeaderText = truncate(collapse(doc.Find("header,nav").Text()), maxHeaderText)
	page.NavLinks = extractNavLinks(doc, base)
	page.SchemaData = extractSchemaData(doc)
	page.Slogan, page.SloganLocation = extractSlogan(doc, page)

	doc.Find("script,noscript,style,svg,nav,footer,header").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	doc.Find("h1,h2,h3").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := collapse(s.Text()); t != "" {
			page.Headings = append(page.Headings, t)
		}
		return len(page.Headings) < maxHeadings
	})

	doc.Find("img[alt]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if alt := collapse(s.AttrOr("alt", "")); alt != "" {
			page.ImageAlts = append(page.ImageAlts, alt)
		}
		return len(page.ImageAlts) < maxImageAlts
	})

	page.BodyText = truncate(collapse(doc.Find("body").Text()), maxBodyText)

	return page
}

// extractNavLinks resolves every candidate anchor against the page URL.
// Links that fail to resolve are silently dropped.
func extractNavLinks(doc *goquery.Document, base *url.URL) []models.NavLink {
	var links []models.NavLink
	seen := map[string]struct{}{}

	collect := func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		abs := resolveLink(base, href)
		if abs == "" {
			return true
		}
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}
		links = append(links, models.NavLink{Text: collapse(s.Text()), URL: abs})
		return len(links) < maxNavLinks
	}

	doc.Find("nav a,header a").EachWithBreak(collect)
	if len(links) == 0 {
		// No structural nav; fall back to all anchors so discovery still works.
		doc.Find("a").EachWithBreak(collect)
	}
	return links
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	if base == nil {
		return ""
	}
	u, err := base.Parse(href)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// extractSchemaData recovers short descriptive strings from JSON-LD blocks.
func extractSchemaData(doc *goquery.Document) []string {
	var out []string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		collectSchemaStrings(data, &out)
		return len(out) < maxSchemaData
	})
	if len(out) > maxSchemaData {
		out = out[:maxSchemaData]
	}
	return out
}

// schemaKeys are the JSON-LD fields worth surfacing as descriptive text.
var schemaKeys = map[string]struct{}{
	"name": {}, "alternateName": {}, "description": {}, "slogan": {},
}

func collectSchemaStrings(data any, out *[]string) {
	switch v := data.(type) {
	case map[string]any:
		for _, key := range []string{"name", "alternateName", "slogan", "description"} {
			if raw, ok := v[key]; ok {
				if s, ok := raw.(string); ok {
					if t := collapse(s); t != "" && len(t) <= 300 {
						*out = append(*out, t)
					}
				}
			}
		}
		// Recurse in sorted key order so output is deterministic.
		nested := make([]string, 0, len(v))
		for key := range v {
			if _, scalar := schemaKeys[key]; !scalar {
				nested = append(nested, key)
			}
		}
		sort.Strings(nested)
		for _, key := range nested {
			collectSchemaStrings(v[key], out)
		}
	case []any:
		for _, item := range v {
			collectSchemaStrings(item, out)
		}
	}
}

// extractSlogan runs the tagline strategy chain. First rule with a candidate
// in the accepted length window wins; later rules never overwrite it.
func extractSlogan(doc *goquery.Document, page models.ParsedPage) (string, string) {
	if s := firstText(doc, `header [class*="tagline"],header [class*="slogan"],header [class*="subtitle"],header [class*="motto"],nav [class*="tagline"],nav [class*="slogan"]`); s != "" {
		return s, "header"
	}
	if s := firstText(doc, `[class*="hero"] h2,[class*="hero"] h3,[class*="banner"] h2,[class*="banner"] h3,[class*="hero"] p,[class*="banner"] p`); s != "" {
		return s, "hero"
	}
	for _, candidate := range page.SchemaData {
		if sloganLengthOK(candidate) && looksLikeProse(candidate) {
			return candidate, "schema"
		}
	}
	for _, sel := range []string{`meta[property="og:description"]`, `meta[name="description"]`} {
		if s := collapse(doc.Find(sel).AttrOr("content", "")); sloganLengthOK(s) {
			return s, "meta"
		}
	}
	return "", ""
}

func firstText(doc *goquery.Document, selector string) string {
	found := ""
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if t := collapse(s.Text()); sloganLengthOK(t) {
			found = t
			return false
		}
		return true
	})
	return found
}

func sloganLengthOK(s string) bool {
	n := len([]rune(s))
	return n >= sloganMinLen && n <= sloganMaxLen
}

// looksLikeProse rejects strings that look like raw serialized data rather
// than a human-written line.
func looksLikeProse(s string) bool {
	return !strings.ContainsAny(s, `{}[]<>"=`) && strings.Contains(s, " ")
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
