package filter

import "foodkeeper/pkg/catalog"

// Option is a selectable value of a dimension.
type Option struct {
	Value string
	Label string
}

// Options lists the values offered for dim, drawn from the catalog.
func Options(dim Dimension) []Option {
	var out []Option
	switch dim {
	case Main:
		for _, c := range catalog.Categories() {
			out = append(out, Option{Value: c.Key, Label: c.Label})
		}
	case Sub:
		for _, sub := range catalog.AllSubCategories() {
			out = append(out, Option{Value: sub, Label: sub})
		}
	case Tag:
		for _, tag := range catalog.Tags() {
			out = append(out, Option{Value: tag, Label: tag})
		}
	}
	return out
}
