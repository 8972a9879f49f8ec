package portfolio

import "strings"

// Category is a portfolio filter value. All matches every project; the
// others are the literal category names used by the catalog.
type Category string

const (
	All        Category = "All"
	WebDesign  Category = "Web Design"
	AgencySite Category = "Agency Site"
	ECommerce  Category = "E-Commerce"
	MobileApp  Category = "Mobile App"
)

// Filter tab order as shown on the portfolio page.
var categories = []Category{All, WebDesign, ECommerce, MobileApp, AgencySite}

// Categories returns every category in filter-tab order, All first.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid returns true if c is one of the defined categories, All included.
func (c Category) IsValid() bool {
	switch c {
	case All, WebDesign, AgencySite, ECommerce, MobileApp:
		return true
	default:
		return false
	}
}

// IsProjectCategory returns true if a project may carry c.
func (c Category) IsProjectCategory() bool {
	return c != All && c.IsValid()
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory matches s case-insensitively against the category names.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Project is an immutable portfolio catalog entry.
type Project struct {
	ID          int      `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Category    Category `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Tags        []string `yaml:"tags" json:"tags"`
	Icon        string   `yaml:"icon" json:"icon"`
}
