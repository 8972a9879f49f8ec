package portfolio

import "slices"

// Filter holds the selected category of one portfolio page view.
type Filter struct {
	category Category
}

// NewFilter returns a filter showing every project.
func NewFilter() *Filter {
	return &Filter{category: All}
}

// SetCategory replaces the active category. Invalid values reset to All.
func (f *Filter) SetCategory(c Category) {
	if !c.IsValid() {
		c = All
	}
	f.category = c
}

func (f *Filter) Category() Category {
	return f.category
}

// Visible returns the projects of catalog matching the active category in
// catalog order. The result is a new slice; catalog is never modified.
func (f *Filter) Visible(catalog []Project) []Project {
	return Select(f.category, catalog)
}

// Select returns the stable subsequence of catalog whose category is c, or a
// copy of the whole catalog when c is All. Returned projects share no memory
// with catalog.
func Select(c Category, catalog []Project) []Project {
	out := make([]Project, 0, len(catalog))
	for _, p := range catalog {
		if c == All || p.Category == c {
			p.Tags = slices.Clone(p.Tags)
			out = append(out, p)
		}
	}
	return out
}

// Counts returns how many projects each filter tab would show.
func Counts(catalog []Project) map[Category]int {
	counts := make(map[Category]int, len(categories))
	counts[All] = len(catalog)
	for _, p := range catalog {
		counts[p.Category]++
	}
	return counts
}
