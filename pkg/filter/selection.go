// Package filter holds the browse filter state: which filter dimension is
// expanded and which values are chosen per dimension.
package filter

import (
	"fmt"
	"slices"
	"strings"
)

// Dimension names one filter axis.
type Dimension string

const (
	Main Dimension = "main"
	Sub  Dimension = "sub"
	Tag  Dimension = "tag"
)

// Dimensions lists the axes in display order.
var Dimensions = []Dimension{Main, Sub, Tag}

// Label is the human readable name of the dimension.
func (d Dimension) Label() string {
	switch d {
	case Main:
		return "Main category"
	case Sub:
		return "Sub category"
	case Tag:
		return "Tag"
	default:
		return string(d)
	}
}

// ParseDimension accepts the dimension key in any case.
func ParseDimension(raw string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(raw)))
	if !slices.Contains(Dimensions, d) {
		return "", fmt.Errorf("unknown filter dimension %q", raw)
	}
	return d, nil
}

// Selection is an immutable snapshot of the filter state. The zero value has
// nothing expanded and nothing selected. Every method returns a new value, so
// copies never share state.
type Selection struct {
	expanded Dimension
	values   map[Dimension][]string
}

// New returns an empty selection.
func New() Selection {
	return Selection{}
}

// SelectDimension expands dim, or collapses it when it is already expanded.
// Only one dimension is expanded at a time.
func (s Selection) SelectDimension(dim Dimension) Selection {
	next := s.clone()
	if next.expanded == dim {
		next.expanded = ""
		return next
	}
	next.expanded = dim
	return next
}

// Expanded returns the currently expanded dimension.
func (s Selection) Expanded() (Dimension, bool) {
	return s.expanded, s.expanded != ""
}

// IsOpen reports whether any dimension is expanded.
func (s Selection) IsOpen() bool {
	return s.expanded != ""
}

// ToggleValue adds value to dim when absent and removes it when present.
func (s Selection) ToggleValue(dim Dimension, value string) Selection {
	next := s.clone()
	current := next.values[dim]
	if idx := slices.Index(current, value); idx >= 0 {
		next.values[dim] = slices.Delete(current, idx, idx+1)
		return next
	}
	next.values[dim] = append(current, value)
	return next
}

// Values returns the chosen values for dim in the order they were added.
func (s Selection) Values(dim Dimension) []string {
	return slices.Clone(s.values[dim])
}

// Has reports whether value is chosen for dim.
func (s Selection) Has(dim Dimension, value string) bool {
	return slices.Contains(s.values[dim], value)
}

// Empty reports whether no value is chosen in any dimension.
func (s Selection) Empty() bool {
	for _, vals := range s.values {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Matches applies the selection to an item's labels. Values inside one
// dimension are alternatives; dimensions must all match; an empty dimension
// matches everything.
func (s Selection) Matches(main, sub, tag string) bool {
	return s.matchOne(Main, main) && s.matchOne(Sub, sub) && s.matchOne(Tag, tag)
}

// matchOne reports whether value passes the filter of one dimension.
func (s Selection) matchOne(dim Dimension, value string) bool {
	vals := s.values[dim]
	return len(vals) == 0 || slices.Contains(vals, value)
}

// clone copies the value sets so a toggle never mutates the receiver.
func (s Selection) clone() Selection {
	next := Selection{
		expanded: s.expanded,
		values:   make(map[Dimension][]string, len(Dimensions)),
	}
	for dim, vals := range s.values {
		next.values[dim] = slices.Clone(vals)
	}
	return next
}

// String summarizes the active filters, e.g. "main=snack tag=Sweet food".
func (s Selection) String() string {
	var parts []string
	for _, dim := range Dimensions {
		if vals := s.values[dim]; len(vals) > 0 {
			parts = append(parts, fmt.Sprintf("%s=%s", dim, strings.Join(vals, ",")))
		}
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}
