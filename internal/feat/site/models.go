package site

import (
	"github.com/crazythinker/studio/internal/feat/contact"
	"github.com/crazythinker/studio/internal/feat/content"
	"github.com/crazythinker/studio/internal/feat/nav"
	"github.com/crazythinker/studio/internal/feat/portfolio"
)

// PageData is what every page template receives.
type PageData struct {
	Catalog   *content.Catalog
	Page      nav.PageID
	Links     []nav.Link
	MenuOpen  bool
	Portfolio *PortfolioView
	Form      *contact.Snapshot
	Env       string
}

// PortfolioView is the filter bar and the projects it lets through.
type PortfolioView struct {
	Tabs     []CategoryTab
	Projects []portfolio.Project
}

type CategoryTab struct {
	Category portfolio.Category
	Active   bool
	Count    int
}

func newPortfolioView(active portfolio.Category, catalog []portfolio.Project) *PortfolioView {
	counts := portfolio.Counts(catalog)
	pv := &PortfolioView{Projects: portfolio.Select(active, catalog)}
	for _, c := range portfolio.Categories() {
		pv.Tabs = append(pv.Tabs, CategoryTab{Category: c, Active: c == active, Count: counts[c]})
	}
	return pv
}

// --- JSON ---

type StateResponse struct {
	Page      nav.PageID        `json:"page"`
	MenuOpen  bool              `json:"menu_open"`
	Pages     []nav.PageID      `json:"pages"`
	Portfolio *FilterResponse   `json:"portfolio,omitempty"`
	Contact   *contact.Snapshot `json:"contact,omitempty"`
}

type FilterResponse struct {
	Category   portfolio.Category   `json:"category"`
	Categories []portfolio.Category `json:"categories"`
	Projects   []portfolio.Project  `json:"projects"`
}

type NavRequest struct {
	Page string `json:"page"`
}

type FilterRequest struct {
	Category string `json:"category"`
}

func newStateResponse(v View, catalog []portfolio.Project) StateResponse {
	resp := StateResponse{
		Page:     v.Page,
		MenuOpen: v.MenuOpen,
		Pages:    nav.Pages(),
		Contact:  v.Form,
	}
	if v.Page == nav.Portfolio {
		f := newFilterResponse(v.Category, catalog)
		resp.Portfolio = &f
	}
	return resp
}

func newFilterResponse(c portfolio.Category, catalog []portfolio.Project) FilterResponse {
	return FilterResponse{
		Category:   c,
		Categories: portfolio.Categories(),
		Projects:   portfolio.Select(c, catalog),
	}
}
