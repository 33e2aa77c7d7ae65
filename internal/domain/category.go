package domain

import (
	"fmt"
	"strings"
)

// Category is the single classification bucket of a link.
type Category string

const (
	CategorySEO        Category = "SEO"
	CategoryProduct    Category = "Product"
	CategoryAnalysis   Category = "Analysis"
	CategoryStrategy   Category = "Strategy"
	CategoryLeadership Category = "Leadership"
	CategoryFrameworks Category = "Frameworks"
	CategoryBusiness   Category = "Business"

	// DefaultCategory is used whenever classification cannot decide.
	DefaultCategory = CategoryBusiness
)

// Categories is the fixed enumeration, in display order.
var Categories = []Category{
	CategorySEO,
	CategoryProduct,
	CategoryAnalysis,
	CategoryStrategy,
	CategoryLeadership,
	CategoryFrameworks,
	CategoryBusiness,
}

// Valid reports whether c is one of Categories (exact match).
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches raw against the enumeration, ignoring case and surrounding space.
func ParseCategory(raw string) (Category, error) {
	raw = strings.TrimSpace(raw)
	for _, known := range Categories {
		if strings.EqualFold(raw, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, raw)
}

// CategoryNames returns the enumeration as plain strings.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
