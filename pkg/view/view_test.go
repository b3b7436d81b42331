package view

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/filter"
	"foodkeeper/pkg/inventory"
)

var viewNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func item(id, main, sub string, days, amount int) inventory.Item {
	return inventory.Item{
		ID:           id,
		MainCategory: main,
		SubCategory:  sub,
		Tag:          "Sweet food",
		ExpireDate:   viewNow.Add(time.Duration(days) * 24 * time.Hour),
		Amount:       amount,
	}
}

func renderer() Renderer {
	return NewRenderer(viewNow, NewLayout(80, 2))
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(80, 2)
	assert.Equal(t, 2, l.Gap)
	assert.Equal(t, 35, l.CardWidth)

	narrow := NewLayout(20, 0)
	assert.Equal(t, expiry.DefaultRowWidth, narrow.Columns)
	assert.Equal(t, minCardWidth, narrow.CardWidth)
}

func TestStateFor(t *testing.T) {
	assert.Equal(t, CardExpired, StateFor(-1))
	assert.Equal(t, CardUrgent, StateFor(0))
	assert.Equal(t, CardUrgent, StateFor(6))
	assert.Equal(t, CardFresh, StateFor(7))
}

func TestCard(t *testing.T) {
	r := renderer()

	urgent := r.Card(item("1", "snack", "Ice cream", 2, 2), false)
	assert.Contains(t, urgent, "2 days left!")
	assert.Contains(t, urgent, "Snacks/Dessert")
	assert.Contains(t, urgent, "Ice cream")
	assert.Contains(t, urgent, "x2")
	assert.Contains(t, urgent, expiry.FormatLocalDate(viewNow.Add(48*time.Hour)))
	assert.Contains(t, urgent, "Eaten")

	fresh := r.Card(item("2", "dry", "Canned", 40, 0), false)
	assert.Contains(t, fresh, "40 days left")
	assert.NotContains(t, fresh, "left!")
	assert.NotContains(t, fresh, "x0")

	expired := r.Card(item("3", "drink", "Drinks", -1, 1), false)
	assert.Contains(t, expired, "Restock")
	assert.Contains(t, expired, "expired")
	assert.NotContains(t, expired, "Eaten")
	assert.NotContains(t, expired, "day left")
	assert.Equal(t, lipgloss.Height(urgent), lipgloss.Height(expired))
}

func TestGrid(t *testing.T) {
	r := renderer()
	assert.Equal(t, NoData, r.Grid(nil, ""))

	rows := expiry.Pair([]inventory.Item{
		item("1", "snack", "Snack", 1, 1),
		item("2", "dry", "Noodles", 9, 1),
		item("3", "other", "Frozen", 20, 1),
	})
	out := r.Grid(rows, "3")
	for _, want := range []string{"Snack", "Noodles", "Frozen", "1 day left!", "9 days left"} {
		assert.Contains(t, out, want)
	}
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[2], "1 day left!")
	assert.Contains(t, lines[2], "9 days left")
}

func TestSections(t *testing.T) {
	r := renderer()
	sections := inventory.UrgentSections([]inventory.Item{
		item("1", "snack", "Snack", -2, 1),
		item("2", "dry", "Noodles", 5, 1),
	}, viewNow, 2)

	out := r.Sections(sections, "")
	assert.Contains(t, out, "Urgent item(s)")
	assert.Contains(t, out, "Expired  [Ditch all]")
	assert.Contains(t, out, "Expires in 3 days\nNo data")
	assert.Contains(t, out, "Expires in this week")
	assert.Contains(t, out, "Expires in this month\nNo data")
}

func TestDetails(t *testing.T) {
	r := renderer()
	it := item("1", "drink", "Milk/Yogurt", 3, 4)
	it.Image = "file:///pics/milk.png"
	out := r.Details(it)
	assert.Contains(t, out, "Drinks")
	assert.Contains(t, out, "Milk/Yogurt")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "file:///pics/milk.png")
	assert.Contains(t, out, "Days before EXP")
}

func TestCalendar(t *testing.T) {
	r := renderer()
	out := r.Calendar(2026, time.November, map[int]int{3: 2, 17: 1})
	assert.Contains(t, out, "November 2026")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, " 3 2 items")
	assert.Contains(t, out, "17 1 item")
	assert.Contains(t, out, "30")
	assert.NotContains(t, out, "31")
}

func TestFilters(t *testing.T) {
	r := renderer()
	sel := filter.New()
	assert.Equal(t, "[Main category] [Sub category] [Tag]", r.Filters(sel, -1))

	sel = sel.ToggleValue(filter.Tag, "Sweet food").SelectDimension(filter.Tag)
	out := r.Filters(sel, 0)
	assert.Contains(t, out, "Tag (1)")
	assert.Contains(t, out, "> [ ] Savory food")
	assert.Contains(t, out, "  [x] Sweet food")
}

func TestHistory(t *testing.T) {
	r := renderer()
	assert.Contains(t, r.History(nil), NoData)

	out := r.History([]inventory.Event{
		{Item: item("1", "snack", "Snack", 1, 1), Outcome: inventory.Eaten, Amount: 1, At: viewNow},
		{Item: item("2", "dry", "Canned", 1, 3), Outcome: inventory.Ditched, Amount: 3, At: viewNow.Add(time.Hour)},
	})
	assert.Less(t, strings.Index(out, "ditched"), strings.Index(out, "eaten"))
	assert.Contains(t, out, "x3")
}

func TestHome(t *testing.T) {
	r := renderer()
	items := []inventory.Item{item("1", "snack", "Snack", 1, 1), item("2", "dry", "Noodles", 9, 1)}
	out := r.Home(inventory.MostUrgent(items, viewNow, 8), expiry.Pair(items), "", "")
	assert.Contains(t, out, "Most urgent items")
	assert.Contains(t, out, "Search items")
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, "┏")

	selected := r.Home(inventory.MostUrgent(items, viewNow, 8), expiry.Pair(items), "", "2")
	assert.Contains(t, selected, "┏")

	empty := r.Home(nil, nil, "", "")
	assert.Equal(t, 2, strings.Count(empty, NoData))
}
