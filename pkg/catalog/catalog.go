// Package catalog is the fixed vocabulary items are classified with.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// Category is a main category with its display label and allowed
// sub-categories.
type Category struct {
	Key           string
	Label         string
	SubCategories []string
}

var categories = []Category{
	{Key: "snack", Label: "Snacks/Dessert", SubCategories: []string{"Snack", "Ice cream"}},
	{Key: "dry", Label: "Dry food", SubCategories: []string{"Noodles", "Canned", "Instant foods"}},
	{Key: "drink", Label: "Drinks", SubCategories: []string{"Milk/Yogurt", "Drinks"}},
	{Key: "other", Label: "Other food", SubCategories: []string{"Frozen", "Other"}},
}

var tags = []string{"Savory food", "Sweet food"}

var (
	ErrUnknownCategory    = errors.New("unknown main category")
	ErrUnknownSubCategory = errors.New("sub category does not belong to main category")
	ErrUnknownTag         = errors.New("unknown tag")
)

// Categories returns the main categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.SubCategories = slices.Clone(c.SubCategories)
		out[i] = c
	}
	return out
}

// Tags returns the known tags.
func Tags() []string {
	return slices.Clone(tags)
}

// Lookup finds a main category by key.
func Lookup(key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			c.SubCategories = slices.Clone(c.SubCategories)
			return c, true
		}
	}
	return Category{}, false
}

// Label returns the display label for a main category key, or the key itself
// when it is unknown.
func Label(key string) string {
	if c, ok := Lookup(key); ok {
		return c.Label
	}
	return key
}

// SubCategories lists the sub-categories of key; nil for unknown keys.
func SubCategories(key string) []string {
	c, ok := Lookup(key)
	if !ok {
		return nil
	}
	return c.SubCategories
}

// AllSubCategories lists every sub-category across main categories.
func AllSubCategories() []string {
	var out []string
	for _, c := range categories {
		out = append(out, c.SubCategories...)
	}
	return out
}

// Validate checks the labels of an item against the vocabulary.
func Validate(main, sub, tag string) error {
	c, ok := Lookup(main)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, main)
	}
	if !slices.Contains(c.SubCategories, sub) {
		return fmt.Errorf("%w: %q is not in %q", ErrUnknownSubCategory, sub, main)
	}
	if !slices.Contains(tags, tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return nil
}

// Reassign moves an item to a new main category. The sub-category is kept
// only when it also belongs to the new category.
func Reassign(newMain, sub string) (string, string) {
	if slices.Contains(SubCategories(newMain), sub) {
		return newMain, sub
	}
	return newMain, ""
}
