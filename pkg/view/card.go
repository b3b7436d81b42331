package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"foodkeeper/pkg/catalog"
	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/inventory"
)

// CardState is the visual state of an item card.
type CardState int

const (
	CardFresh CardState = iota
	CardUrgent
	CardExpired
)

// StateFor picks the card state for a countdown.
func StateFor(days int) CardState {
	switch {
	case days < 0:
		return CardExpired
	case expiry.NeedsAttention(days):
		return CardUrgent
	default:
		return CardFresh
	}
}

// Card renders one item. selected draws the highlighted border used by the
// interactive browser.
func (r Renderer) Card(item inventory.Item, selected bool) string {
	days := item.DaysLeft(r.Now)
	state := StateFor(days)

	badges := []string{r.Styles.Badge.Render(" " + item.Tag + " ")}
	if item.Amount > 0 {
		badges = append(badges, r.Styles.Badge.Render(fmt.Sprintf(" x%d ", item.Amount)))
	}

	var countdown, actions string
	switch state {
	case CardExpired:
		// No countdown on expired cards; the line stays blank.
		badges = append(badges, r.Styles.Muted.Render("expired"))
		actions = r.Styles.PrimaryButton.Render(" Restock ")
	case CardUrgent:
		badges = append(badges, r.Styles.Muted.Render(expiry.FormatLocalDate(item.ExpireDate)))
		countdown = r.Styles.UrgentText.Render(expiry.Countdown(days))
		actions = r.Styles.Button.Render("[Ditched]") + " " + r.Styles.PrimaryButton.Render(" Eaten ")
	default:
		badges = append(badges, r.Styles.Muted.Render(expiry.FormatLocalDate(item.ExpireDate)))
		countdown = r.Styles.Countdown.Render(expiry.Countdown(days))
		actions = r.Styles.Button.Render("[Ditched]") + " " + r.Styles.PrimaryButton.Render(" Eaten ")
	}

	body := strings.Join([]string{
		strings.Join(badges, " "),
		countdown,
		r.Styles.MainLabel.Render(catalog.Label(item.MainCategory)),
		r.Styles.Muted.Render(item.SubCategory),
		actions,
	}, "\n")

	frame := r.Styles.Card
	if selected {
		frame = r.Styles.Selected
	}
	return frame.Width(r.Layout.CardWidth + 2).Render(body)
}

// emptyCard fills a padding slot so rows keep their columns aligned.
func (r Renderer) emptyCard() string {
	return lipgloss.NewStyle().Width(r.Layout.CardWidth + cardChrome).Render("")
}

// Renderer bundles what every screen needs: the reference instant, sizes
// and styles.
type Renderer struct {
	Now    time.Time
	Layout Layout
	Styles Styles
}

// NewRenderer returns a renderer with the default styles.
func NewRenderer(now time.Time, layout Layout) Renderer {
	return Renderer{Now: now, Layout: layout, Styles: DefaultStyles()}
}
