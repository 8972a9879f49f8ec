package nav

// Controller holds the active page and the mobile menu state for one visitor.
// It is owned by a single session, which serialises access to it.
type Controller struct {
	active   PageID
	menuOpen bool
}

// NewController returns a controller showing Home with the menu closed.
func NewController() *Controller {
	return &Controller{active: Home}
}

// SetActivePage replaces the active page. Invalid ids fall back to Home.
// Navigating always closes the mobile menu.
func (c *Controller) SetActivePage(id PageID) {
	if !id.IsValid() {
		id = Home
	}
	c.active = id
	c.menuOpen = false
}

// ActivePage returns the page currently displayed.
func (c *Controller) ActivePage() PageID {
	return c.active
}

func (c *Controller) ToggleMenu() {
	c.menuOpen = !c.menuOpen
}

func (c *Controller) MenuOpen() bool {
	return c.menuOpen
}

// Links returns the navigation entries with the active page flagged.
func (c *Controller) Links() []Link {
	links := make([]Link, 0, len(pages))
	for _, p := range pages {
		links = append(links, Link{Page: p, Active: p == c.active})
	}
	return links
}
