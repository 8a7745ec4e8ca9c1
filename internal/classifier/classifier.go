package classifier

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"firmsight-go-analyzer/internal/models"
)

const (
	maxPlausibleHeadcount = 50000
	maxPlausibleOffices   = 500
	outlierHeadcount      = 500
)

var (
	headcountRe = regexp.MustCompile(`(\d[\d,]{0,9})\s*\+?\s*(attorneys|lawyers|professionals|associates|partners)`)
	officeRe    = regexp.MustCompile(`(\d[\d,]{0,5})\s*\+?\s*(offices|locations|cities)`)

	// Two to four capitalized tokens, the shape of a person's name. Headings
	// like "Contact Our Firm" also match; this is a known heuristic limit.
	nameShapeRe = regexp.MustCompile(`^[A-Z][A-Za-z'.-]*(?: [A-Z][A-Za-z'.-]*){1,3}$`)
)

// Classify maps a scraped site to a size tier plus an outlier flag. Pure and
// deterministic: the same bundle always yields the same result, and it never
// fails — worst case is the default tier with a "no signals" note.
func Classify(site models.ScrapedSite) models.FirmSizeResult {
	text := aggregateText(site)

	// Brand recognition beats every quantitative heuristic: a top-tier name
	// match ends the pipeline immediately.
	if name, ok := matchList(text, biglawFirms); ok {
		return models.FirmSizeResult{
			Tier:      models.TierBiglaw,
			IsOutlier: true,
			Signals:   []string{fmt.Sprintf("matched known biglaw firm %q", name)},
		}
	}

	var (
		signals []string
		scores  []int
		outlier bool
	)

	if name, ok := matchList(text, megaFirms); ok {
		outlier = true
		signals = append(signals, fmt.Sprintf("matched known mega firm %q", name))
	}

	headcount := estimateHeadcount(text, site)
	if headcount > 0 {
		scores = append(scores, bucket(headcount, 1000, 200, 30))
		signals = append(signals, fmt.Sprintf("estimated headcount %d", headcount))
		if headcount >= outlierHeadcount {
			outlier = true
			signals = append(signals, "headcount at or above 500, treating as outlier")
		}
	}

	if offices := estimateOffices(text); offices > 0 {
		scores = append(scores, bucket(offices, 20, 8, 3))
		signals = append(signals, fmt.Sprintf("estimated office count %d", offices))
	}

	if breadth := practiceBreadth(site); breadth > 0 {
		scores = append(scores, bucket(breadth, 30, 15, 8))
		signals = append(signals, fmt.Sprintf("practice area breadth %d", breadth))
	}

	if hits := prestigeHits(text); hits > 0 {
		score := 2
		if hits >= 3 {
			score = 4
		}
		scores = append(scores, score)
		signals = append(signals, fmt.Sprintf("%d prestige term(s) mentioned", hits))
	}

	if len(scores) == 0 {
		return models.FirmSizeResult{
			Tier:      models.TierBoutique,
			IsOutlier: outlier,
			Signals:   append(signals, "no strong size signals detected"),
		}
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))

	return models.FirmSizeResult{
		Tier:               tierForAverage(avg),
		Signals:            signals,
		IsOutlier:          outlier,
		EstimatedHeadcount: headcount,
	}
}

// aggregateText flattens every text channel of the bundle to one lowercase
// haystack for substring and regex detectors.
func aggregateText(site models.ScrapedSite) string {
	var b strings.Builder
	appendPage := func(p *models.ParsedPage) {
		if p == nil {
			return
		}
		for _, s := range []string{p.URL, p.Title, p.MetaDescription, p.Slogan, p.HeaderText, p.BodyText} {
			b.WriteString(s)
			b.WriteString(" ")
		}
		for _, h := range p.Headings {
			b.WriteString(h)
			b.WriteString(" ")
		}
		for _, s := range p.SchemaData {
			b.WriteString(s)
			b.WriteString(" ")
		}
	}
	appendPage(site.Homepage)
	for i := range site.Subpages {
		appendPage(&site.Subpages[i])
	}
	return strings.ToLower(b.String())
}

func matchList(text string, list []string) (string, bool) {
	for _, name := range list {
		if strings.Contains(text, name) {
			return name, true
		}
	}
	return "", false
}

// estimateHeadcount scans for explicit counts near person-count nouns,
// keeping the maximum plausible value. With no explicit count it falls back
// to counting name-shaped headings on pages whose URL suggests a roster.
func estimateHeadcount(text string, site models.ScrapedSite) int {
	best := 0
	for _, m := range headcountRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || n >= maxPlausibleHeadcount {
			continue
		}
		if n > best {
			best = n
		}
	}
	if best > 0 {
		return best
	}

	for i := range site.Subpages {
		p := &site.Subpages[i]
		if !isTeamURL(p.URL) {
			continue
		}
		names := 0
		for _, h := range p.Headings {
			if nameShapeRe.MatchString(h) {
				names++
			}
		}
		if names > best {
			best = names
		}
	}
	return best
}

func estimateOffices(text string) int {
	best := 0
	for _, m := range officeRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || n > maxPlausibleOffices {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}

// practiceBreadth proxies service breadth by headings on practice-listing
// pages, or failing that by practice-flavored homepage nav links. The
// maximum across pages wins.
func practiceBreadth(site models.ScrapedSite) int {
	best := 0
	for i := range site.Subpages {
		p := &site.Subpages[i]
		if isPracticeURL(p.URL) && len(p.Headings) > best {
			best = len(p.Headings)
		}
	}
	if site.Homepage != nil {
		navCount := 0
		for _, l := range site.Homepage.NavLinks {
			if isPracticeURL(l.URL) {
				navCount++
			}
		}
		if navCount > best {
			best = navCount
		}
	}
	return best
}

func prestigeHits(text string) int {
	hits := 0
	for _, term := range prestigeTerms {
		if strings.Contains(text, term) {
			hits++
		}
	}
	return hits
}

func isTeamURL(pageURL string) bool {
	return pathContains(pageURL, "team", "people", "attorney", "lawyer", "professional", "staff")
}

func isPracticeURL(pageURL string) bool {
	return pathContains(pageURL, "practice", "service", "expertise")
}

// pathContains inspects only the URL path; hostnames routinely contain words
// like "lawyers" and would misflag every page.
func pathContains(pageURL string, keywords ...string) bool {
	lower := strings.ToLower(pageURL)
	if u, err := url.Parse(pageURL); err == nil {
		lower = strings.ToLower(u.Path)
	}
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// bucket maps a raw detector value to an ordinal sub-score 1-4.
func bucket(n, four, three, two int) int {
	switch {
	case n >= four:
		return 4
	case n >= three:
		return 3
	case n >= two:
		return 2
	default:
		return 1
	}
}

func tierForAverage(avg float64) models.SizeTier {
	switch {
	case avg >= 3.5:
		return models.TierBiglaw
	case avg >= 2.5:
		return models.TierLarge
	case avg >= 1.5:
		return models.TierMidsize
	default:
		return models.TierBoutique
	}
}
