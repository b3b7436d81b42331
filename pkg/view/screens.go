package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"foodkeeper/pkg/catalog"
	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/inventory"
)

// NoData is the placeholder for an empty list.
const NoData = "No data"

// Grid renders paired rows of cards. selectedID highlights one card; pass
// "" for none.
func (r Renderer) Grid(rows [][]expiry.Slot[inventory.Item], selectedID string) string {
	if len(rows) == 0 {
		return r.Styles.Muted.Render(NoData)
	}
	spacer := strings.Repeat(" ", r.Layout.Gap)
	rendered := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row)*2)
		for i, slot := range row {
			if i > 0 {
				cells = append(cells, spacer)
			}
			if !slot.Filled {
				cells = append(cells, r.emptyCard())
				continue
			}
			cells = append(cells, r.Card(slot.Item, slot.Item.ID == selectedID))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// Home renders the most urgent strip followed by the searchable grid, with
// selectedID highlighted in the grid.
func (r Renderer) Home(mostUrgent []inventory.Item, rows [][]expiry.Slot[inventory.Item], filters, selectedID string) string {
	var b strings.Builder
	b.WriteString(r.Styles.Header.Render("Most urgent items"))
	b.WriteString("\n")
	if len(mostUrgent) == 0 {
		b.WriteString(r.Styles.Muted.Render(NoData))
	} else {
		cards := make([]string, 0, len(mostUrgent))
		for _, item := range mostUrgent {
			cards = append(cards, r.compactCard(item))
		}
		b.WriteString(strings.Join(cards, "\n"))
	}
	b.WriteString("\n\n")
	b.WriteString(r.Styles.Header.Render("Search items"))
	b.WriteString("\n")
	if filters != "" {
		b.WriteString(filters)
		b.WriteString("\n")
	}
	b.WriteString(r.Grid(rows, selectedID))
	return b.String()
}

// compactCard is the single line form used in the most urgent strip.
func (r Renderer) compactCard(item inventory.Item) string {
	days := item.DaysLeft(r.Now)
	countdown := r.Styles.Countdown.Render(expiry.Countdown(days))
	if StateFor(days) != CardFresh {
		countdown = r.Styles.UrgentText.Render(expiry.Countdown(days))
	}
	return fmt.Sprintf("%s  %s / %s  %s",
		countdown,
		catalog.Label(item.MainCategory),
		item.SubCategory,
		r.Styles.Muted.Render("#"+item.ID),
	)
}

// Sections renders the urgent screen.
func (r Renderer) Sections(sections []inventory.Section, selectedID string) string {
	var b strings.Builder
	b.WriteString(r.Styles.Header.Render("Urgent item(s)"))
	for _, s := range sections {
		b.WriteString("\n")
		header := r.Styles.SectionHeader.Render(s.Title())
		if s.Urgency == expiry.Expired && !s.Empty() {
			header += "  " + r.Styles.Button.Render("[Ditch all]")
		}
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(r.Grid(s.Rows, selectedID))
		b.WriteString("\n")
	}
	return b.String()
}

// Details renders the detail table of one item.
func (r Renderer) Details(item inventory.Item) string {
	rows := [][2]string{
		{"Main category", catalog.Label(item.MainCategory)},
		{"Sub category", item.SubCategory},
		{"Tag", item.Tag},
		{"EXP date", expiry.FormatLocalDate(item.ExpireDate)},
		{"Days before EXP", fmt.Sprintf("%d days", item.DaysLeft(r.Now))},
		{"Amount", fmt.Sprintf("%d", item.Amount)},
	}
	if item.Image != "" {
		rows = append(rows, [2]string{"Image", item.Image})
	}
	var b strings.Builder
	b.WriteString(r.Styles.Header.Render("Details"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(r.Styles.Muted.Render(fmt.Sprintf("%-16s", row[0])) + " " + row[1] + "\n")
	}
	return b.String()
}

// History renders eaten and ditched events, newest first.
func (r Renderer) History(events []inventory.Event) string {
	var b strings.Builder
	b.WriteString(r.Styles.Header.Render("History"))
	b.WriteString("\n")
	if len(events) == 0 {
		b.WriteString(r.Styles.Muted.Render(NoData))
		return b.String()
	}
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		b.WriteString(fmt.Sprintf("%s  %-7s x%d  %s / %s  #%s\n",
			ev.At.Local().Format("2006-01-02 15:04"),
			ev.Outcome,
			ev.Amount,
			catalog.Label(ev.Item.MainCategory),
			ev.Item.SubCategory,
			ev.Item.ID,
		))
	}
	return b.String()
}
