package extract

import "strings"

// Category is one of the seven fixed expense categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryBills         Category = "bills"
	CategoryHealthcare    Category = "healthcare"
	CategoryOther         Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryOther,
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Classify maps a merchant name to a category by substring keyword match,
// testing the rules in fixed priority order. Line items are intentionally
// not consulted. Returns CategoryOther when no keyword matches, so the
// function is total over all merchant strings.
func Classify(merchant string) Category {
	m := strings.ToLower(merchant)
	for _, rule := range categoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(m, kw) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}
