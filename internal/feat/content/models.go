package content

import (
	"strings"

	"github.com/crazythinker/studio/internal/feat/portfolio"
)

// Catalog is the static content of the site. It is loaded once at startup
// and never modified afterwards.
type Catalog struct {
	Brand       Brand               `yaml:"brand"`
	Hero        Hero                `yaml:"hero"`
	Highlights  []Card              `yaml:"highlights"`
	Services    []Card              `yaml:"services"`
	Expertise   []Card              `yaml:"expertise"`
	Showcases   []Showcase          `yaml:"showcases"`
	Process     []Card              `yaml:"process"`
	Pricing     Pricing             `yaml:"pricing"`
	FAQ         []FAQ               `yaml:"faq"`
	Projects    []portfolio.Project `yaml:"projects"`
	Testimonial Testimonial         `yaml:"testimonial"`
	Contact     ContactDetails      `yaml:"contact"`
}

type Brand struct {
	Name     string   `yaml:"name"`
	Wordmark []string `yaml:"wordmark"`
	Tagline  string   `yaml:"tagline"`
	Blurb    string   `yaml:"blurb"`
	Logo     string   `yaml:"logo"`
}

type Hero struct {
	Title     string `yaml:"title"`
	Highlight string `yaml:"highlight"`
	Lead      string `yaml:"lead"`
}

// Card is a titled block of text with an optional icon, used for
// highlights, service boxes and process steps.
type Card struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Showcase is a long-form service section. Points are inline markdown.
type Showcase struct {
	Section string   `yaml:"section"`
	Title   string   `yaml:"title"`
	Body    string   `yaml:"body"`
	Image   string   `yaml:"image"`
	Points  []string `yaml:"points"`
}

type Pricing struct {
	Intro      string          `yaml:"intro"`
	Tiers      []Tier          `yaml:"tiers"`
	Comparison []ComparisonRow `yaml:"comparison"`
}

// CustomPrice marks a tier quoted on request.
const CustomPrice = "Custom"

type Tier struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Price       string        `yaml:"price"`
	Description string        `yaml:"description"`
	Icon        string        `yaml:"icon"`
	CTA         string        `yaml:"cta"`
	Highlight   bool          `yaml:"highlight"`
	Features    []TierFeature `yaml:"features"`
}

// IsCustom reports whether the tier has no fixed price.
func (t Tier) IsCustom() bool {
	return strings.EqualFold(t.Price, CustomPrice)
}

type TierFeature struct {
	Text     string `yaml:"text"`
	Included bool   `yaml:"included"`
}

// ComparisonRow is one line of the pricing table, one value per tier.
// The value "yes" renders as a check mark.
type ComparisonRow struct {
	Feature string   `yaml:"feature"`
	Values  []string `yaml:"values"`
}

// FAQ answers are markdown.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
	Avatar string `yaml:"avatar"`
}

type ContactDetails struct {
	Phone      string `yaml:"phone"`
	Email      string `yaml:"email"`
	Location   string `yaml:"location"`
	MapCaption string `yaml:"map_caption"`
}
