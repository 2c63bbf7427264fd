package menu

import (
	"strings"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// FilterParams holds the catalog filter predicates. Zero values mean
// "no restriction" for their predicate.
type FilterParams struct {
	Category   string
	Search     string
	SpiceLevel *int
}

// Filter returns the items matching every active predicate, preserving the
// order of the input slice. The input is never mutated; calling Filter twice
// with the same arguments yields the same result.
func Filter(items []models.MenuItem, params FilterParams) []models.MenuItem {
	matched := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if matchesCategory(item, params.Category) &&
			matchesSearch(item, params.Search) &&
			matchesSpiceLevel(item, params.SpiceLevel) {
			matched = append(matched, item)
		}
	}
	return matched
}

func matchesCategory(item models.MenuItem, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return true
	}
	return strings.EqualFold(item.Category.String(), category)
}

func matchesSearch(item models.MenuItem, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(item.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), search) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func matchesSpiceLevel(item models.MenuItem, level *int) bool {
	if level == nil {
		return true
	}
	return item.SpiceLevel == *level
}
