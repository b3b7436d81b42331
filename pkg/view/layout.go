package view

import "foodkeeper/pkg/expiry"

// Layout holds the sizes derived once from the display width. Renderers
// read it; nothing mutates it after NewLayout.
type Layout struct {
	Width     int
	Columns   int
	CardWidth int // content width, excluding border and padding
	Gap       int
}

const (
	minCardWidth = 18
	cardChrome   = 4 // border and horizontal padding
)

// NewLayout sizes cards so that columns of them fit into width.
func NewLayout(width, columns int) Layout {
	if columns <= 0 {
		columns = expiry.DefaultRowWidth
	}
	gap := max(1, width*26/1000)
	card := (width-gap*(columns-1))/columns - cardChrome
	if card < minCardWidth {
		card = minCardWidth
	}
	return Layout{Width: width, Columns: columns, CardWidth: card, Gap: gap}
}
