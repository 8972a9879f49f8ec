package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/crazythinker/studio/internal/feat/portfolio"
	"github.com/crazythinker/studio/pkg/ct/validation"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the catalog location inside the embedded assets.
const DefaultPath = "content/catalog.yaml"

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty catalog")
		}
		return nil, fmt.Errorf("cannot decode catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Load reads the catalog at name from fsys.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", name, err)
	}
	return Parse(data)
}

// LoadFile reads the catalog from a path on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the catalog invariants the pages rely on.
func (c *Catalog) Validate() error {
	var errs validation.ValidationErrors

	errs.Check(validation.RequiredString("brand.name", c.Brand.Name))
	errs.Check(validation.RequiredString("contact.phone", c.Contact.Phone))
	errs.Check(validation.RequiredString("contact.email", c.Contact.Email))
	errs.Check(validation.Email("contact.email", c.Contact.Email))

	ids := make(map[int]bool, len(c.Projects))
	for i, p := range c.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if p.ID <= 0 {
			errs = append(errs, validation.ValidationError{Field: field + ".id", Rule: "positive", Message: "must be positive"})
		} else if ids[p.ID] {
			errs = append(errs, validation.ValidationError{Field: field + ".id", Rule: "unique", Message: fmt.Sprintf("duplicate project id %d", p.ID)})
		}
		ids[p.ID] = true

		errs.Check(validation.RequiredString(field+".title", p.Title))
		if !p.Category.IsProjectCategory() {
			errs = append(errs, validation.ValidationError{
				Field:   field + ".category",
				Rule:    "category",
				Message: fmt.Sprintf("unknown project category %q", p.Category),
			})
		}
	}

	tierIDs := make(map[string]bool, len(c.Pricing.Tiers))
	for i, t := range c.Pricing.Tiers {
		field := fmt.Sprintf("pricing.tiers[%d]", i)
		errs.Check(validation.RequiredString(field+".id", t.ID))
		errs.Check(validation.RequiredString(field+".name", t.Name))
		errs.Check(validation.RequiredString(field+".price", t.Price))
		if t.ID != "" && tierIDs[t.ID] {
			errs = append(errs, validation.ValidationError{Field: field + ".id", Rule: "unique", Message: fmt.Sprintf("duplicate tier id %q", t.ID)})
		}
		tierIDs[t.ID] = true
	}

	for i, row := range c.Pricing.Comparison {
		if len(row.Values) != len(c.Pricing.Tiers) {
			errs = append(errs, validation.ValidationError{
				Field:   fmt.Sprintf("pricing.comparison[%d]", i),
				Rule:    "columns",
				Message: fmt.Sprintf("has %d values for %d tiers", len(row.Values), len(c.Pricing.Tiers)),
			})
		}
	}

	for i, f := range c.FAQ {
		errs.Check(validation.RequiredString(fmt.Sprintf("faq[%d].question", i), f.Question))
	}

	return errs.OrNil()
}

// Project returns the project with the given id.
func (c *Catalog) Project(id int) (portfolio.Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return portfolio.Project{}, false
}
