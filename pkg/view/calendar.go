package view

import (
	"fmt"
	"strings"
	"time"
)

const calendarCell = 9

// Calendar renders a month with the number of expiring items per day.
// Weeks start on Sunday.
func (r Renderer) Calendar(year int, month time.Month, counts map[int]int) string {
	var b strings.Builder
	b.WriteString(r.Styles.Header.Render("Expiry dates"))
	b.WriteString("\n")
	b.WriteString(r.Styles.SectionHeader.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		b.WriteString(pad(wd.String()[:3], calendarCell))
	}
	b.WriteString("\n")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	today := r.Now.Local()
	isCurrentMonth := today.Year() == year && today.Month() == month

	offset := int(first.Weekday())
	b.WriteString(strings.Repeat(" ", offset*calendarCell))
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%2d", day)
		if n := counts[day]; n > 0 {
			cell += " " + itemCount(n)
		}
		style := r.Styles.CalendarDay
		if isCurrentMonth && today.Day() == day {
			style = r.Styles.Today
		}
		b.WriteString(style.Render(pad(cell, calendarCell)))
		if (offset+day)%7 == 0 && day != daysInMonth {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// itemCount is the "1 item" / "3 items" cell label.
func itemCount(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d items", n)
	}
	return "1 item"
}

// pad right-fills s to width, leaving at least one space after it.
func pad(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
