package templates

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

type searchSource []Template

func (s searchSource) String(i int) string {
	return s[i].Name + " " + s[i].Stack + " " + s[i].Category
}

func (s searchSource) Len() int { return len(s) }

// Search ranks templates by fuzzy match against name, stack and category.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []Template {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.List()
	}
	matches := fuzzy.FindFrom(query, searchSource(c.items))
	out := make([]Template, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.items[m.Index])
	}
	return out
}
