package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"foodkeeper/pkg/inventory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func seed() []inventory.Item {
	at := func(days int) time.Time { return testNow.Add(time.Duration(days) * 24 * time.Hour) }
	return []inventory.Item{
		{ID: "1", MainCategory: "snack", SubCategory: "Snack", Tag: "Sweet food", ExpireDate: at(-2), Amount: 1},
		{ID: "2", MainCategory: "dry", SubCategory: "Noodles", Tag: "Savory food", ExpireDate: at(2), Amount: 3},
		{ID: "3", MainCategory: "drink", SubCategory: "Drinks", Tag: "Sweet food", ExpireDate: at(20), Amount: 1},
	}
}

func newTestModel(t *testing.T) (tea.Model, *inventory.Service) {
	t.Helper()
	clock := func() time.Time { return testNow }
	svc := inventory.NewService(seed(), nil, inventory.WithClock(clock))
	t.Cleanup(svc.Close)
	m := New(svc, Options{Width: 100, Clock: clock})
	return drain(m, m.Init()), svc
}

// drain runs cmd and every command it leads to, feeding results back into m.
func drain(m tea.Model, cmd tea.Cmd) tea.Model {
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		m, cmd = m.Update(msg)
	}
	return m
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		m = drain(m, cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	space = tea.KeyMsg{Type: tea.KeySpace}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func remaining(t *testing.T, svc *inventory.Service) []string {
	t.Helper()
	items, err := svc.List(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestInitialView(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "Most urgent items")
	assert.Contains(t, out, "Search items")
	assert.Contains(t, out, "Noodles")
	assert.Contains(t, out, "2 days left!")
	assert.NotContains(t, out, "Loading...")
}

func TestViewBeforeLoad(t *testing.T) {
	svc := inventory.NewService(nil, nil)
	defer svc.Close()
	assert.Contains(t, New(svc, Options{}).View(), "Loading...")
}

func TestEatSelectedItem(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, runes("l"), runes("e"))

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 2, items[1].Amount)
	assert.Contains(t, m.View(), "ate one Noodles")
}

func TestDitchSelectedItem(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, runes("d"))
	assert.Equal(t, []string{"2", "3"}, remaining(t, svc))

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, inventory.Ditched, history[0].Outcome)
	assert.Contains(t, m.View(), "ditched Snack")
}

func TestUrgentDitchAll(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, tab)
	out := m.View()
	assert.Contains(t, out, "Urgent item(s)")
	assert.Contains(t, out, "[Ditch all]")

	m = press(m, runes("x"))
	assert.Equal(t, []string{"2", "3"}, remaining(t, svc))
	assert.NotContains(t, m.View(), "[Ditch all]")
}

func TestFilterToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, runes("m"))
	assert.Contains(t, m.View(), "> [ ] Snacks/Dessert")

	m = press(m, runes("j"), space)
	assert.Contains(t, m.View(), "> [x] Dry food")

	m = press(m, esc)
	model := m.(Model)
	visible := model.visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
	assert.Contains(t, m.View(), "Main category (1)")
}

func TestManageDeleteMarked(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, tab, tab)
	assert.Contains(t, m.View(), "Manage items")

	m = press(m, space, runes("j"), space)
	assert.Contains(t, m.View(), "[x]")

	m = press(m, runes("D"))
	assert.Equal(t, []string{"3"}, remaining(t, svc))
	assert.Contains(t, m.View(), "deleted 2 item(s)")
}

func TestManageWithoutSelection(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, tab, tab, runes("e"))
	assert.Len(t, remaining(t, svc), 3)
	assert.Contains(t, m.View(), "nothing selected")
}

func TestManageEatMarked(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, tab, tab, runes("j"), space, runes("e"))
	assert.Equal(t, []string{"1", "3"}, remaining(t, svc))

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 3, history[0].Amount)
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.(Model).layout.Width)
	assert.Equal(t, 40, m.(Model).height)
	assert.Equal(t, 40, lipgloss.Height(m.View()))
}

// newDatasetModel browses the bundled dataset in an 80x24 terminal.
func newDatasetModel(t *testing.T) tea.Model {
	t.Helper()
	clock := func() time.Time { return testNow }
	items, err := inventory.DefaultDataset(testNow)
	require.NoError(t, err)
	svc := inventory.NewService(items, nil, inventory.WithClock(clock))
	t.Cleanup(svc.Close)
	var m tea.Model = New(svc, Options{Clock: clock})
	m = drain(m, m.Init())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestViewFitsWindow(t *testing.T) {
	m := newDatasetModel(t)
	for _, screen := range []string{"Home", "Urgent", "Manage"} {
		out := m.View()
		assert.LessOrEqual(t, lipgloss.Height(out), 24, screen)
		assert.Contains(t, out, "tab: screen", screen)
		m = press(m, tab)
	}
}

func TestViewScrollsToSelection(t *testing.T) {
	m := newDatasetModel(t)
	out := m.View()
	assert.Contains(t, out, "Most urgent items")
	assert.Contains(t, out, "┏")

	// Three rows down is the seventh card, well below the first page.
	m = press(m, runes("j"), runes("j"), runes("j"))
	require.Equal(t, "7", m.(Model).selectedID())
	out = m.View()
	assert.LessOrEqual(t, lipgloss.Height(out), 24)
	assert.NotContains(t, out, "Most urgent items")
	assert.Contains(t, out, "┏")
	assert.Contains(t, out, "6 days left!")

	m = press(m, runes("k"), runes("k"), runes("k"))
	out = m.View()
	assert.Contains(t, out, "┏")
	assert.Contains(t, out, "Milk/Yogurt")
	assert.NotContains(t, out, "6 days left!")
}

func TestManageScrollsToSelection(t *testing.T) {
	m := newDatasetModel(t)
	m = press(m, tab, tab)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	for range 10 {
		m = press(m, runes("j"))
	}
	out := m.View()
	assert.LessOrEqual(t, lipgloss.Height(out), 10)
	assert.Contains(t, out, "90 days left")
	assert.NotContains(t, out, "Manage items")
}

// selectedBorderLine returns the line holding the top of the selected card.
func selectedBorderLine(view string) string {
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "┏") {
			return line
		}
	}
	return ""
}

func TestHomeHighlightsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.View()
	line := selectedBorderLine(before)
	require.NotEmpty(t, line)
	assert.Less(t, strings.Index(line, "┏"), strings.Index(line, "╭"))

	m = press(m, runes("l"))
	after := m.View()
	assert.NotEqual(t, before, after)
	line = selectedBorderLine(after)
	require.NotEmpty(t, line)
	assert.Greater(t, strings.Index(line, "┏"), strings.Index(line, "╭"))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRestockExpiredItem(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, runes("R"))

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	restocked := items[2]
	assert.NotEqual(t, "1", restocked.ID)
	assert.Equal(t, "Snack", restocked.SubCategory)
	assert.Equal(t, 7, restocked.DaysLeft(testNow))
	assert.Contains(t, m.View(), "restocked Snack")
}

func TestRestockRejectsFreshItem(t *testing.T) {
	m, svc := newTestModel(t)
	m = press(m, runes("l"), runes("R"))
	assert.Equal(t, []string{"1", "2", "3"}, remaining(t, svc))
	assert.Contains(t, m.View(), "only expired items can be restocked")
}
