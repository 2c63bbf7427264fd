package enums

import "fmt"

// MenuCategory represents the canonical menu sections offered by the kitchen.
type MenuCategory string

const (
	MenuCategoryAppetizer  MenuCategory = "appetizer"
	MenuCategoryTaco       MenuCategory = "taco"
	MenuCategoryBurrito    MenuCategory = "burrito"
	MenuCategoryBowl       MenuCategory = "bowl"
	MenuCategoryQuesadilla MenuCategory = "quesadilla"
	MenuCategorySide       MenuCategory = "side"
	MenuCategoryDessert    MenuCategory = "dessert"
	MenuCategoryDrink      MenuCategory = "drink"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryAppetizer,
	MenuCategoryTaco,
	MenuCategoryBurrito,
	MenuCategoryBowl,
	MenuCategoryQuesadilla,
	MenuCategorySide,
	MenuCategoryDessert,
	MenuCategoryDrink,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}

// SpiceLevel bounds. Menu items carry an integer heat rating from mild to
// very hot.
const (
	SpiceLevelMin = 0
	SpiceLevelMax = 4
)

// IsValidSpiceLevel reports whether the rating falls inside the menu scale.
func IsValidSpiceLevel(level int) bool {
	return level >= SpiceLevelMin && level <= SpiceLevelMax
}
