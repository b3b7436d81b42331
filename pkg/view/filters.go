package view

import (
	"strconv"
	"strings"

	"foodkeeper/pkg/filter"
)

// Filters renders the dimension tabs and, when one is expanded, its options
// with check marks. cursor indexes the highlighted option; -1 hides it.
func (r Renderer) Filters(sel filter.Selection, cursor int) string {
	open, isOpen := sel.Expanded()
	tabs := make([]string, 0, len(filter.Dimensions))
	for _, dim := range filter.Dimensions {
		label := dim.Label()
		if n := len(sel.Values(dim)); n > 0 {
			label += " (" + strconv.Itoa(n) + ")"
		}
		if isOpen && dim == open {
			tabs = append(tabs, r.Styles.PrimaryButton.Render(" "+label+" "))
			continue
		}
		tabs = append(tabs, r.Styles.Button.Render("["+label+"]"))
	}
	out := strings.Join(tabs, " ")
	if !isOpen {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	for i, opt := range filter.Options(open) {
		b.WriteString("\n")
		mark := "[ ]"
		if sel.Has(open, opt.Value) {
			mark = "[x]"
		}
		line := mark + " " + opt.Label
		if i == cursor {
			line = r.Styles.Today.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
	}
	return b.String()
}
