package templates

import (
	"sort"
	"strings"
)

// Template represents a project blueprint
type Template struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Stack       string            `yaml:"stack"`    // "Go", "Python", "Node", etc.
	Category    string            `yaml:"category"` // "api", "cli", "web"
	Files       map[string]string `yaml:"files"`    // path -> text/template source
	InstallCmd  string            `yaml:"install_cmd"`
	RunCmd      string            `yaml:"run_cmd"`
}

// Catalog is an ordered set of templates looked up by name.
type Catalog struct {
	items []Template
}

// NewCatalog copies items; later entries replace earlier ones with the same name.
func NewCatalog(items ...Template) *Catalog {
	c := &Catalog{}
	c.Merge(items...)
	return c
}

// Default returns a catalog of the built-in templates.
func Default() *Catalog {
	return NewCatalog(Registry...)
}

// Merge adds templates, overriding built-ins that share a name.
func (c *Catalog) Merge(items ...Template) {
	for _, t := range items {
		if i := c.index(t.Name); i >= 0 {
			c.items[i] = t
			continue
		}
		c.items = append(c.items, t)
	}
}

func (c *Catalog) index(name string) int {
	for i, t := range c.items {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// List returns every template in catalog order.
func (c *Catalog) List() []Template {
	return append([]Template(nil), c.items...)
}

// Get finds a template by name, ignoring case.
func (c *Catalog) Get(name string) (Template, bool) {
	if i := c.index(name); i >= 0 {
		return c.items[i], true
	}
	return Template{}, false
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range c.items {
		cat := strings.ToLower(t.Category)
		if cat != "" && !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	sort.Strings(out)
	return out
}

// Filter returns templates in a category.
func (c *Catalog) Filter(category string) []Template {
	var out []Template
	for _, t := range c.items {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}
