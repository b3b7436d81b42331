// Package view renders inventory screens as terminal text with lipgloss.
package view

import "github.com/charmbracelet/lipgloss"

// Palette colors.
var (
	OrangePrimary  = lipgloss.Color("#F4991A")
	OrangeCalendar = lipgloss.Color("#FDE6C4")
	Grey           = lipgloss.Color("#6B6B6B")
	LightGrey      = lipgloss.Color("#BDBDBD")
	White          = lipgloss.Color("#FFFFFF")
	Red            = lipgloss.Color("#E53935")
)

// Styles groups the lipgloss styles every renderer uses.
type Styles struct {
	Header        lipgloss.Style
	SectionHeader lipgloss.Style
	Muted         lipgloss.Style
	Badge         lipgloss.Style
	Countdown     lipgloss.Style
	UrgentText    lipgloss.Style
	MainLabel     lipgloss.Style
	Button        lipgloss.Style
	PrimaryButton lipgloss.Style
	Card          lipgloss.Style
	Selected      lipgloss.Style
	Today         lipgloss.Style
	CalendarDay   lipgloss.Style
}

// DefaultStyles builds the orange themed styles.
func DefaultStyles() Styles {
	return Styles{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(OrangePrimary).MarginBottom(1),
		SectionHeader: lipgloss.NewStyle().Bold(true).Foreground(Grey),
		Muted:         lipgloss.NewStyle().Foreground(Grey),
		Badge:         lipgloss.NewStyle().Foreground(White).Background(OrangePrimary),
		Countdown:     lipgloss.NewStyle().Foreground(Grey),
		UrgentText:    lipgloss.NewStyle().Bold(true).Foreground(Red),
		MainLabel:     lipgloss.NewStyle().Bold(true),
		Button:        lipgloss.NewStyle().Foreground(OrangePrimary),
		PrimaryButton: lipgloss.NewStyle().Bold(true).Foreground(White).Background(OrangePrimary),
		Card:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(LightGrey).Padding(0, 1),
		Selected:      lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(OrangePrimary).Padding(0, 1),
		Today:         lipgloss.NewStyle().Bold(true).Foreground(OrangePrimary),
		CalendarDay:   lipgloss.NewStyle().Foreground(Grey),
	}
}
