package inventory

import (
	"slices"
	"time"

	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/filter"
)

// DefaultMostUrgentLimit caps the home screen's most urgent strip.
const DefaultMostUrgentLimit = 8

// Search keeps the items matching sel, in their original order.
func Search(items []Item, sel filter.Selection) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if sel.Matches(item.MainCategory, item.SubCategory, item.Tag) {
			out = append(out, item)
		}
	}
	return out
}

// MostUrgent returns up to limit items that have not expired yet, soonest
// first. Items with the same countdown keep their original order.
func MostUrgent(items []Item, now time.Time, limit int) []Item {
	if limit <= 0 {
		limit = DefaultMostUrgentLimit
	}
	fresh := make([]Item, 0, len(items))
	for _, item := range items {
		if item.DaysLeft(now) >= 0 {
			fresh = append(fresh, item)
		}
	}
	slices.SortStableFunc(fresh, func(a, b Item) int {
		return a.DaysLeft(now) - b.DaysLeft(now)
	})
	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	return fresh
}

// Section is one urgency group of the urgent screen, already laid out in
// grid rows.
type Section struct {
	Urgency expiry.Urgency
	Rows    [][]expiry.Slot[Item]
}

// Title is the section heading.
func (s Section) Title() string { return s.Urgency.String() }

// Empty reports whether the section has no items.
func (s Section) Empty() bool { return len(s.Rows) == 0 }

// UrgentSections groups items by urgency bucket, one section per entry of
// expiry.Buckets in that order. Each item lands in at most one section;
// items classified Later are left out.
func UrgentSections(items []Item, now time.Time, rowWidth int) []Section {
	grouped := make(map[expiry.Urgency][]Item, len(expiry.Buckets))
	for _, item := range items {
		u := item.Urgency(now)
		grouped[u] = append(grouped[u], item)
	}
	sections := make([]Section, 0, len(expiry.Buckets))
	for _, u := range expiry.Buckets {
		sections = append(sections, Section{
			Urgency: u,
			Rows:    expiry.PairWidth(grouped[u], rowWidth),
		})
	}
	return sections
}

// Calendar counts the items expiring on each day of a month, keyed by day
// of month in local time.
func Calendar(items []Item, year int, month time.Month) map[int]int {
	counts := make(map[int]int)
	for _, item := range items {
		local := item.ExpireDate.Local()
		if local.Year() == year && local.Month() == month {
			counts[local.Day()]++
		}
	}
	return counts
}

// ItemsOn returns the items whose local expiry date is the given day.
func ItemsOn(items []Item, year int, month time.Month, day int) []Item {
	var out []Item
	for _, item := range items {
		y, m, d := item.ExpireDate.Local().Date()
		if y == year && m == month && d == day {
			out = append(out, item)
		}
	}
	return out
}
