package parser

import (
	"fmt"
	"strings"
	"testing"
)

const sampleHTML = `<!doctype html><html lang="en"><head>
<title>Harrison &amp; Cole LLP</title>
<meta name="description" content="A boutique firm serving the region since 1982">
<script type="application/ld+json">{"@type":"LegalService","name":"Harrison & Cole","description":"Trusted counsel for growing businesses"}</script>
</head><body>
<header><div class="site-tagline">Counsel You Can Count On</div>
<nav><a href="/about">About Us</a><a href="/team">Our Team</a></nav></header>
<div class="hero"><h2>Serving Clients Since 1982</h2></div>
<h1>Welcome</h1><h2>Our Practice</h2>
<p>We handle litigation and estate planning.</p>
<img src="a.jpg" alt="Office lobby">
<footer>Copyright</footer>
</body></html>`

func TestParse(t *testing.T) {
	page := Parse(sampleHTML, "https://example.com")
	if page.Title != "Harrison & Cole LLP" {
		t.Fatalf("title = %q", page.Title)
	}
	if page.MetaDescription == "" {
		t.Fatal("expected meta description")
	}
	if page.BodyText == "" || !strings.Contains(page.BodyText, "litigation") {
		t.Fatalf("body text missing content: %q", page.BodyText)
	}
	if strings.Contains(page.BodyText, "Copyright") {
		t.Fatalf("footer text leaked into body: %q", page.BodyText)
	}
	if strings.Contains(page.BodyText, "About Us") {
		t.Fatalf("nav text leaked into body: %q", page.BodyText)
	}
	if !strings.Contains(page.HeaderText, "Counsel You Can Count On") {
		t.Fatalf("header text missing tagline: %q", page.HeaderText)
	}
	if len(page.NavLinks) != 2 {
		t.Fatalf("nav links = %#v", page.NavLinks)
	}
	if page.NavLinks[0].URL != "https://example.com/about" {
		t.Fatalf("relative link not resolved: %q", page.NavLinks[0].URL)
	}
	if len(page.ImageAlts) != 1 || page.ImageAlts[0] != "Office lobby" {
		t.Fatalf("image alts = %#v", page.ImageAlts)
	}
	if len(page.SchemaData) == 0 {
		t.Fatalf("expected schema data, got none")
	}
}

func TestParseGarbageNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"\x00\x01\xff\xfe",
		"<<<<html<head<<><><>",
		"<html><body><div>" + strings.Repeat("<p", 1000),
	}
	for _, in := range inputs {
		page := Parse(in, "https://example.com")
		if page.URL != "https://example.com" {
			t.Fatalf("url not preserved for input %q", in)
		}
	}
}

func TestParseCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><nav>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, `<a href="/page-%d">Link %d</a>`, i, i)
	}
	b.WriteString("</nav>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "<h2>Heading number %d</h2>", i)
	}
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, `<img src="x.jpg" alt="alt text %d">`, i)
	}
	fmt.Fprintf(&b, "<p>%s</p>", strings.Repeat("body words here ", 1000))
	b.WriteString("</body></html>")

	page := Parse(b.String(), "https://example.com")
	if len(page.Headings) > 30 {
		t.Fatalf("headings cap exceeded: %d", len(page.Headings))
	}
	if len(page.NavLinks) > 30 {
		t.Fatalf("nav links cap exceeded: %d", len(page.NavLinks))
	}
	if len(page.ImageAlts) > 20 {
		t.Fatalf("image alts cap exceeded: %d", len(page.ImageAlts))
	}
	if n := len([]rune(page.BodyText)); n > 3000 {
		t.Fatalf("body text cap exceeded: %d", n)
	}
}

func TestParseHeaderTextCap(t *testing.T) {
	html := "<html><body><header>" + strings.Repeat("slogan text ", 200) + "</header></body></html>"
	page := Parse(html, "https://example.com")
	if n := len([]rune(page.HeaderText)); n > 500 {
		t.Fatalf("header text cap exceeded: %d", n)
	}
}

func TestSloganPriorityHeaderOverHero(t *testing.T) {
	page := Parse(sampleHTML, "https://example.com")
	if page.Slogan != "Counsel You Can Count On" || page.SloganLocation != "header" {
		t.Fatalf("slogan = %q location = %q, want header tagline", page.Slogan, page.SloganLocation)
	}
}

func TestSloganHeroFallback(t *testing.T) {
	html := `<html><body><div class="hero"><h2>Serving Clients Since 1982</h2></div></body></html>`
	page := Parse(html, "https://example.com")
	if page.Slogan != "Serving Clients Since 1982" || page.SloganLocation != "hero" {
		t.Fatalf("slogan = %q location = %q, want hero", page.Slogan, page.SloganLocation)
	}
}

func TestSloganSchemaFallback(t *testing.T) {
	// No header tagline, no hero region, no meta description: the prose
	// JSON-LD description is the only qualifying candidate.
	html := `<html><head>
<script type="application/ld+json">{"@type":"LegalService","name":"X","description":"Trusted counsel for growing businesses"}</script>
</head><body><p>hi</p></body></html>`
	page := Parse(html, "https://example.com")
	if page.Slogan != "Trusted counsel for growing businesses" || page.SloganLocation != "schema" {
		t.Fatalf("slogan = %q location = %q, want schema description", page.Slogan, page.SloganLocation)
	}
}

func TestSloganSchemaRejectsNonProse(t *testing.T) {
	// A serialized-looking description must not be promoted to a slogan.
	html := `<html><head>
<script type="application/ld+json">{"@type":"LegalService","description":"{\"nested\": [1,2,3]}"}</script>
</head><body><p>hi</p></body></html>`
	page := Parse(html, "https://example.com")
	if page.SloganLocation == "schema" {
		t.Fatalf("serialized data accepted as slogan: %q", page.Slogan)
	}
}

func TestSloganMetaFallback(t *testing.T) {
	html := `<html><head><meta name="description" content="Dedicated advocates for injured workers"></head><body><p>hi</p></body></html>`
	page := Parse(html, "https://example.com")
	if page.SloganLocation != "meta" {
		t.Fatalf("slogan location = %q, want meta", page.SloganLocation)
	}
}

func TestSloganLengthWindow(t *testing.T) {
	// Too short in the header; hero candidate should win instead.
	html := `<html><body><header><div class="tagline">Hi</div></header>` +
		`<div class="banner"><h3>Advocates For The Accused</h3></div></body></html>`
	page := Parse(html, "https://example.com")
	if page.SloganLocation != "hero" {
		t.Fatalf("slogan = %q location = %q, want hero", page.Slogan, page.SloganLocation)
	}
}

func TestUnresolvableLinksDropped(t *testing.T) {
	html := `<html><body><nav>
<a href="ftp://example.com/x">ftp</a>
<a href="javascript:void(0)">js</a>
<a href="#section">frag</a>
<a href="/contact">Contact</a>
</nav></body></html>`
	page := Parse(html, "https://example.com")
	if len(page.NavLinks) != 1 || page.NavLinks[0].URL != "https://example.com/contact" {
		t.Fatalf("nav links = %#v", page.NavLinks)
	}
}
