package nav

import "strings"

// PageID identifies one of the site's top-level pages.
type PageID string

const (
	Home      PageID = "Home"
	Services  PageID = "Services"
	Portfolio PageID = "Portfolio"
	Pricing   PageID = "Pricing"
	Contact   PageID = "Contact"
)

var pages = []PageID{Home, Services, Portfolio, Pricing, Contact}

// Pages returns every page in menu order.
func Pages() []PageID {
	out := make([]PageID, len(pages))
	copy(out, pages)
	return out
}

// IsValid returns true if p is one of the defined pages.
func (p PageID) IsValid() bool {
	switch p {
	case Home, Services, Portfolio, Pricing, Contact:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p PageID) String() string {
	return string(p)
}

// ParsePageID matches s case-insensitively against the page names.
// Anything unrecognized is Home.
func ParsePageID(s string) PageID {
	s = strings.TrimSpace(s)
	for _, p := range pages {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return Home
}

// Link is one navigation entry as rendered in the navbar, mobile menu and footer.
type Link struct {
	Page   PageID
	Active bool
}
