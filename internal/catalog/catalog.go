// Package catalog implements the browse views' filtering rules.
package catalog

import (
	"sort"
	"strings"

	"github.com/NasmeenI/tablebook/internal/models"
)

// CategoryAll matches every cuisine type.
const CategoryAll = "All"

// Categories returns the cuisine types present in the list, sorted, with
// CategoryAll first.
func Categories(restaurants []models.Restaurant) []string {
	seen := make(map[string]bool)
	for _, r := range restaurants {
		if r.Type != "" {
			seen[r.Type] = true
		}
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)

	return append([]string{CategoryAll}, types...)
}

// Toggle applies the category-selection rule: picking the already-active
// category clears the filter back to All.
func Toggle(active, selected string) string {
	if selected == active {
		return CategoryAll
	}
	return selected
}

// Filter narrows the list to restaurants matching both the category and the
// free-text query. The query is a case-insensitive substring match against
// name and address.
func Filter(restaurants []models.Restaurant, category, query string) []models.Restaurant {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []models.Restaurant
	for _, r := range restaurants {
		if category != CategoryAll && category != "" && r.Type != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(r.Name), query) &&
			!strings.Contains(strings.ToLower(r.Address), query) {
			continue
		}
		out = append(out, r)
	}
	return out
}
