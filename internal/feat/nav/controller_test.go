package nav

import "testing"

func TestNewControllerStartsAtHome(t *testing.T) {
	c := NewController()
	if got := c.ActivePage(); got != Home {
		t.Errorf("ActivePage() = %q, want %q", got, Home)
	}
	if c.MenuOpen() {
		t.Error("menu should start closed")
	}
}

func TestSetActivePageTotality(t *testing.T) {
	c := NewController()
	for _, p := range Pages() {
		t.Run(p.String(), func(t *testing.T) {
			c.SetActivePage(p)
			if got := c.ActivePage(); got != p {
				t.Errorf("ActivePage() = %q, want %q", got, p)
			}
		})
	}
}

func TestSetActivePageInvalidFallsBackToHome(t *testing.T) {
	c := NewController()
	c.SetActivePage(Pricing)
	c.SetActivePage(PageID("Blog"))
	if got := c.ActivePage(); got != Home {
		t.Errorf("ActivePage() = %q, want %q", got, Home)
	}
}

func TestParsePageID(t *testing.T) {
	tests := []struct {
		in   string
		want PageID
	}{
		{"Home", Home},
		{"services", Services},
		{" PORTFOLIO ", Portfolio},
		{"Pricing", Pricing},
		{"contact", Contact},
		{"", Home},
		{"About", Home},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParsePageID(tt.in); got != tt.want {
				t.Errorf("ParsePageID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNavigationClosesMenu(t *testing.T) {
	c := NewController()
	c.ToggleMenu()
	if !c.MenuOpen() {
		t.Fatal("ToggleMenu() should open the menu")
	}

	c.SetActivePage(Contact)
	if c.MenuOpen() {
		t.Error("navigating should close the menu")
	}

	c.ToggleMenu()
	c.ToggleMenu()
	if c.MenuOpen() {
		t.Error("double toggle should leave the menu closed")
	}
}

func TestLinksFlagActivePage(t *testing.T) {
	c := NewController()
	c.SetActivePage(Portfolio)

	links := c.Links()
	if len(links) != len(Pages()) {
		t.Fatalf("len(Links()) = %d, want %d", len(links), len(Pages()))
	}
	for i, l := range links {
		if l.Page != Pages()[i] {
			t.Errorf("links[%d] = %q, want %q", i, l.Page, Pages()[i])
		}
		if l.Active != (l.Page == Portfolio) {
			t.Errorf("links[%d].Active = %v", i, l.Active)
		}
	}
}

func TestPagesReturnsCopy(t *testing.T) {
	p := Pages()
	p[0] = Contact
	if Pages()[0] != Home {
		t.Error("Pages() must not expose the package slice")
	}
}
