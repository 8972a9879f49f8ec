package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crazythinker/studio/assets"
	"github.com/crazythinker/studio/internal/feat/portfolio"
	"github.com/crazythinker/studio/pkg/ct/validation"
	"github.com/google/go-cmp/cmp"
)

const minimal = `
brand:
  name: Crazy Thinker
contact:
  phone: "+91 88724-88038"
  email: hello@example.com
projects:
  - {id: 1, title: One, category: Web Design}
  - {id: 2, title: Two, category: Mobile App}
`

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Load(assets.FS, DefaultPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var titles []string
	for _, p := range c.Projects {
		titles = append(titles, p.Title)
	}
	want := []string{"Lumina Art Gallery", "Apex Marketing", "Urban Threads", "FitPulse Pro"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("project titles mismatch (-want +got):\n%s", diff)
	}

	if len(c.Pricing.Tiers) != 3 {
		t.Fatalf("expected 3 tiers, got %d", len(c.Pricing.Tiers))
	}
	if !c.Pricing.Tiers[1].Highlight || c.Pricing.Tiers[1].Name != "Business" {
		t.Errorf("expected Business to be the highlighted tier, got %+v", c.Pricing.Tiers[1])
	}
	if !c.Pricing.Tiers[2].IsCustom() {
		t.Error("expected Enterprise to be custom priced")
	}
	if c.Contact.Phone != "+91 88724-88038" {
		t.Errorf("unexpected phone %q", c.Contact.Phone)
	}
}

func TestParseMinimal(t *testing.T) {
	c, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p, ok := c.Project(2)
	if !ok || p.Category != portfolio.MobileApp {
		t.Errorf("Project(2) = %+v, %v", p, ok)
	}
	if _, ok := c.Project(9); ok {
		t.Error("Project(9) should not exist")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantField string
	}{
		{
			name:      "unknown category",
			yaml:      strings.Replace(minimal, "Mobile App", "Blockchain", 1),
			wantField: "projects[1].category",
		},
		{
			name:      "all is not a project category",
			yaml:      strings.Replace(minimal, "Mobile App", "All", 1),
			wantField: "projects[1].category",
		},
		{
			name:      "duplicate id",
			yaml:      strings.Replace(minimal, "id: 2", "id: 1", 1),
			wantField: "projects[1].id",
		},
		{
			name:      "missing brand",
			yaml:      strings.Replace(minimal, "name: Crazy Thinker", "name: \"\"", 1),
			wantField: "brand.name",
		},
		{
			name: "comparison columns",
			yaml: minimal + `
pricing:
  tiers:
    - {id: a, name: A, price: "1"}
  comparison:
    - {feature: Pages, values: [one, two]}
`,
			wantField: "pricing.comparison[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			var verrs validation.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verrs.ByField(tt.wantField) == "" {
				t.Errorf("expected error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte(minimal + "mascot: rat\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(c.Projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(c.Projects))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
