package models

// NavLink is one anchor from the page's navigation, with its resolved target.
type NavLink struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// ParsedPage is the normalized record for a single fetched page.
// Size caps on its fields are enforced by the parser.
type ParsedPage struct {
	URL             string    `json:"url" yaml:"url"`
	Title           string    `json:"title,omitempty" yaml:"title,omitempty"`
	MetaDescription string    `json:"metaDescription,omitempty" yaml:"metaDescription,omitempty"`
	Headings        []string  `json:"headings,omitempty" yaml:"headings,omitempty"`
	BodyText        string    `json:"bodyText,omitempty" yaml:"bodyText,omitempty"`
	HeaderText      string    `json:"headerText,omitempty" yaml:"headerText,omitempty"`
	NavLinks        []NavLink `json:"navLinks,omitempty" yaml:"navLinks,omitempty"`
	ImageAlts       []string  `json:"imageAlts,omitempty" yaml:"imageAlts,omitempty"`
	Slogan          string    `json:"slogan,omitempty" yaml:"slogan,omitempty"`
	SloganLocation  string    `json:"sloganLocation,omitempty" yaml:"sloganLocation,omitempty"`
	SchemaData      []string  `json:"schemaData,omitempty" yaml:"schemaData,omitempty"`
}

// ScrapedSite aggregates one extraction run. Homepage is nil when the homepage
// fetch failed; in that case Subpages is empty and Errors holds one entry.
type ScrapedSite struct {
	Homepage *ParsedPage  `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Subpages []ParsedPage `json:"subpages,omitempty" yaml:"subpages,omitempty"`
	Errors   []string     `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// SizeTier is an ordinal scale of organizational scale.
type SizeTier string

const (
	TierBoutique SizeTier = "boutique"
	TierMidsize  SizeTier = "midsize"
	TierLarge    SizeTier = "large"
	TierBiglaw   SizeTier = "biglaw"
)

// FirmSizeResult is the classifier output. Signals is an explainability trail
// only; nothing downstream branches on it.
type FirmSizeResult struct {
	Tier               SizeTier `json:"tier" yaml:"tier"`
	Signals            []string `json:"signals,omitempty" yaml:"signals,omitempty"`
	IsOutlier          bool     `json:"isOutlier" yaml:"isOutlier"`
	EstimatedHeadcount int      `json:"estimatedHeadcount,omitempty" yaml:"estimatedHeadcount,omitempty"`
}
