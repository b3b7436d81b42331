// Package expiry turns expiry dates into whole-day countdowns, urgency
// buckets and fixed-width display rows. Every function is pure; callers pass
// the reference instant explicitly so views stay deterministic.
package expiry

import (
	"fmt"
	"time"
)

// DayMillis is the length of a day used for countdowns. Calendar days and
// DST shifts are not taken into account.
const DayMillis int64 = 24 * 60 * 60 * 1000

// UrgentWindow is the number of days under which an item is shown as urgent.
const UrgentWindow = 7

// DaysUntil returns floor((target - now) / 1 day) using millisecond
// resolution. A result of zero means less than a full day remains, not that
// the item expires on the current calendar day.
func DaysUntil(target, now time.Time) int {
	diff := target.UnixMilli() - now.UnixMilli()
	return int(floorDiv(diff, DayMillis))
}

// DaysFromNow is DaysUntil against the wall clock.
func DaysFromNow(target time.Time) int {
	return DaysUntil(target, time.Now())
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// FormatLocalDate renders the local calendar date as D-M-YYYY without
// leading zeros, e.g. 5-3-2024.
func FormatLocalDate(t time.Time) string {
	local := t.Local()
	return fmt.Sprintf("%d-%d-%d", local.Day(), int(local.Month()), local.Year())
}

// Countdown is the card text for a countdown: "3 days left!", "1 day left!",
// "12 days left". The exclamation mark marks anything under UrgentWindow,
// expired items included.
func Countdown(days int) string {
	plural := ""
	if days > 1 {
		plural = "s"
	}
	mark := ""
	if NeedsAttention(days) {
		mark = "!"
	}
	return fmt.Sprintf("%d day%s left%s", days, plural, mark)
}
