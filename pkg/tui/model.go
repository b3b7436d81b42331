// Package tui is the interactive inventory browser.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"foodkeeper/pkg/expiry"
	"foodkeeper/pkg/filter"
	"foodkeeper/pkg/inventory"
	"foodkeeper/pkg/view"
)

type screen int

const (
	screenHome screen = iota
	screenUrgent
	screenManage
)

var screenTitles = []string{"Home", "Urgent", "Manage"}

const requestTimeout = 3 * time.Second

// restockDays is the shelf life given to a restocked item.
const restockDays = 7

// chromeLines is the tab bar and the blank line under it.
const chromeLines = 2

var manageColumns = []table.Column{
	{Title: "", Width: 3},
	{Title: "Sub category", Width: 14},
	{Title: "Tag", Width: 12},
	{Title: "EXP date", Width: 10},
	{Title: "Amount", Width: 6},
	{Title: "Countdown", Width: 13},
}

type itemsLoadedMsg struct {
	items []inventory.Item
	err   error
}

type actionDoneMsg struct {
	status string
	err    error
}

// Options configures a Model. A zero Height leaves the screen unclipped
// until the terminal reports its size.
type Options struct {
	Width           int
	Height          int
	RowWidth        int
	MostUrgentLimit int
	Clock           func() time.Time
	Logger          *zap.Logger
}

// Model is the bubbletea model of the browser.
type Model struct {
	svc      *inventory.Service
	opts     Options
	layout   view.Layout
	height   int
	viewport viewport.Model

	screen    screen
	items     []inventory.Item
	sel       filter.Selection
	optCursor int
	cursor    int
	marked    map[string]bool
	status    string
	loaded    bool
}

// New builds a browser over svc.
func New(svc *inventory.Service, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RowWidth <= 0 {
		opts.RowWidth = expiry.DefaultRowWidth
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return Model{
		svc:      svc,
		opts:     opts,
		layout:   view.NewLayout(opts.Width, opts.RowWidth),
		height:   opts.Height,
		viewport: viewport.New(opts.Width, opts.Height),
		sel:      filter.New(),
		marked:   map[string]bool{},
	}
}

// Init loads the inventory.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// load fetches the inventory off the update loop.
func (m Model) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		items, err := svc.List(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

// run executes fn against the service and reports a status line.
func (m Model) run(status string, fn func(ctx context.Context) error) tea.Cmd {
	logger := m.opts.Logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("browser action failed", zap.String("action", status), zap.Error(err))
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: status}
	}
}

// Update handles messages and scrolls the body so the focused card stays in
// the window.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.follow()
	return m, cmd
}

// update applies msg without touching the scroll position.
func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = view.NewLayout(msg.Width, m.opts.RowWidth)
		m.height = msg.Height
		return m, nil
	case itemsLoadedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		m.loaded = true
		m.clampCursor()
		for id := range m.marked {
			if !slices.ContainsFunc(m.items, func(it inventory.Item) bool { return it.ID == id }) {
				delete(m.marked, id)
			}
		}
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else {
			m.status = msg.status
		}
		return m, m.load()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes global keys and passes the rest to the open filter or
// the item list.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.screen = (m.screen + 1) % screen(len(screenTitles))
		m.cursor = 0
		m.viewport.GotoTop()
		return m, nil
	case "shift+tab":
		m.screen = (m.screen + screen(len(screenTitles)) - 1) % screen(len(screenTitles))
		m.cursor = 0
		m.viewport.GotoTop()
		return m, nil
	case "m", "s", "t":
		if m.screen == screenUrgent {
			return m, nil
		}
		dims := map[string]filter.Dimension{"m": filter.Main, "s": filter.Sub, "t": filter.Tag}
		m.sel = m.sel.SelectDimension(dims[key])
		m.optCursor = 0
		return m, nil
	case "esc":
		if dim, ok := m.sel.Expanded(); ok {
			m.sel = m.sel.SelectDimension(dim)
		}
		return m, nil
	case "r":
		return m, m.load()
	}

	if dim, ok := m.sel.Expanded(); ok && m.screen != screenUrgent {
		return m.handleFilterKey(dim, key)
	}
	return m.handleItemKey(key)
}

// handleFilterKey moves through and toggles the options of the open filter.
func (m Model) handleFilterKey(dim filter.Dimension, key string) (Model, tea.Cmd) {
	opts := filter.Options(dim)
	switch key {
	case "up", "k":
		if m.optCursor > 0 {
			m.optCursor--
		}
	case "down", "j":
		if m.optCursor < len(opts)-1 {
			m.optCursor++
		}
	case " ", "enter":
		if m.optCursor < len(opts) {
			m.sel = m.sel.ToggleValue(dim, opts[m.optCursor].Value)
			m.clampCursor()
		}
	}
	return m, nil
}

// handleItemKey moves the cursor and runs the card actions.
func (m Model) handleItemKey(key string) (Model, tea.Cmd) {
	visible := m.visible()
	width := m.opts.RowWidth
	switch key {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "right", "l":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		return m, nil
	case "up", "k":
		if m.screen == screenManage {
			width = 1
		}
		if m.cursor-width >= 0 {
			m.cursor -= width
		}
		return m, nil
	case "down", "j":
		if m.screen == screenManage {
			width = 1
		}
		if m.cursor+width < len(visible) {
			m.cursor += width
		}
		return m, nil
	case "x":
		if m.screen != screenUrgent {
			return m, nil
		}
		svc, now := m.svc, m.opts.Clock()
		return m, m.run("ditched all expired items", func(ctx context.Context) error {
			_, err := svc.DitchExpired(ctx, now)
			return err
		})
	}

	if m.screen == screenManage {
		return m.handleManageKey(key, visible)
	}

	if len(visible) == 0 {
		return m, nil
	}
	current := visible[m.cursor]
	svc := m.svc
	switch key {
	case "e":
		return m, m.run("ate one "+current.SubCategory, func(ctx context.Context) error {
			_, err := svc.Eat(ctx, current.ID, 1)
			return err
		})
	case "d":
		return m, m.run("ditched "+current.SubCategory, func(ctx context.Context) error {
			_, err := svc.Ditch(ctx, current.ID)
			return err
		})
	case "R":
		now := m.opts.Clock()
		if current.DaysLeft(now) >= 0 {
			m.status = "only expired items can be restocked"
			return m, nil
		}
		amount := max(1, current.Amount)
		return m, m.run("restocked "+current.SubCategory, func(ctx context.Context) error {
			if _, err := svc.Ditch(ctx, current.ID); err != nil {
				return err
			}
			_, err := svc.Restock(ctx, current.ID, amount, inventory.EndOfDay(now, restockDays))
			return err
		})
	}
	return m, nil
}

// handleManageKey marks items and applies bulk actions to the marked ones.
func (m Model) handleManageKey(key string, visible []inventory.Item) (Model, tea.Cmd) {
	svc := m.svc
	switch key {
	case " ":
		if len(visible) == 0 {
			return m, nil
		}
		id := visible[m.cursor].ID
		marked := make(map[string]bool, len(m.marked)+1)
		for k, v := range m.marked {
			marked[k] = v
		}
		if marked[id] {
			delete(marked, id)
		} else {
			marked[id] = true
		}
		m.marked = marked
		return m, nil
	case "e", "d", "D":
		ids := m.markedIDs(visible)
		if len(ids) == 0 {
			m.status = "nothing selected"
			return m, nil
		}
		m.marked = map[string]bool{}
		switch key {
		case "e":
			return m, m.run(fmt.Sprintf("ate %d item(s)", len(ids)), func(ctx context.Context) error {
				for _, id := range ids {
					if _, err := svc.Eat(ctx, id, 0); err != nil {
						return err
					}
				}
				return nil
			})
		case "d":
			return m, m.run(fmt.Sprintf("ditched %d item(s)", len(ids)), func(ctx context.Context) error {
				for _, id := range ids {
					if _, err := svc.Ditch(ctx, id); err != nil {
						return err
					}
				}
				return nil
			})
		default:
			return m, m.run(fmt.Sprintf("deleted %d item(s)", len(ids)), func(ctx context.Context) error {
				_, err := svc.Delete(ctx, ids...)
				return err
			})
		}
	}
	return m, nil
}

// markedIDs returns the marked items among visible, in list order.
func (m Model) markedIDs(visible []inventory.Item) []string {
	var ids []string
	for _, item := range visible {
		if m.marked[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// visible lists the items the current screen shows, in cursor order.
func (m Model) visible() []inventory.Item {
	if m.screen == screenUrgent {
		var out []inventory.Item
		for _, s := range inventory.UrgentSections(m.items, m.opts.Clock(), m.opts.RowWidth) {
			out = append(out, expiry.Flatten(s.Rows)...)
		}
		return out
	}
	return inventory.Search(m.items, m.sel)
}

// clampCursor keeps the cursor on a visible item after the list shrinks.
func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// selectedID is the item under the cursor, or "" when nothing is visible.
func (m Model) selectedID() string {
	visible := m.visible()
	if m.cursor < len(visible) {
		return visible[m.cursor].ID
	}
	return ""
}

// focus is the line span of the body that must stay in the window.
type focus struct {
	top, bottom int
	ok          bool
}

// follow scrolls the viewport to the focused span of the current body. It
// does nothing until a height is known.
func (m *Model) follow() {
	if m.height <= 0 || !m.loaded {
		return
	}
	r := m.renderer()
	content, f := m.body(r)
	m.viewport.Width = m.layout.Width
	m.viewport.Height = m.bodyHeight(r)
	m.viewport.SetContent(content)
	if !f.ok {
		return
	}
	if f.bottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(f.bottom - m.viewport.Height + 1)
	}
	if f.top < m.viewport.YOffset {
		m.viewport.SetYOffset(f.top)
	}
}

// renderer draws at the current clock reading.
func (m Model) renderer() view.Renderer {
	return view.NewRenderer(m.opts.Clock(), m.layout)
}

// bodyHeight is what is left of the window once the tabs and footer are
// drawn.
func (m Model) bodyHeight(r view.Renderer) int {
	return max(1, m.height-chromeLines-lipgloss.Height(m.footer(r)))
}

// View renders the current screen.
func (m Model) View() string {
	r := m.renderer()

	var b strings.Builder
	tabs := make([]string, len(screenTitles))
	for i, title := range screenTitles {
		if screen(i) == m.screen {
			tabs[i] = r.Styles.PrimaryButton.Render(" " + title + " ")
		} else {
			tabs[i] = r.Styles.Button.Render(" " + title + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Loading...\n")
		return b.String()
	}

	content, _ := m.body(r)
	if m.height > 0 {
		vp := m.viewport
		vp.Width = m.layout.Width
		vp.Height = m.bodyHeight(r)
		vp.SetContent(content)
		content = vp.View()
	}
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(m.footer(r))
	return b.String()
}

// body renders the screen under the tabs and reports the span holding the
// filter cursor or the selected item.
func (m Model) body(r view.Renderer) (string, focus) {
	cursor := m.optCursor
	_, open := m.sel.Expanded()
	if !open {
		cursor = -1
	}

	var content string
	var f focus
	switch m.screen {
	case screenHome:
		rows := expiry.PairWidth(inventory.Search(m.items, m.sel), m.opts.RowWidth)
		urgent := inventory.MostUrgent(m.items, r.Now, m.opts.MostUrgentLimit)
		content = r.Home(urgent, rows, r.Filters(m.sel, cursor), m.selectedID())
		f = cardFocus(content, r.Styles.Selected.GetBorderStyle())
	case screenUrgent:
		content = r.Sections(inventory.UrgentSections(m.items, r.Now, m.opts.RowWidth), m.selectedID())
		f = cardFocus(content, r.Styles.Selected.GetBorderStyle())
	case screenManage:
		head := r.Styles.Header.Render("Manage items") + "\n" + r.Filters(m.sel, cursor)
		content = head + "\n" + m.manageTable(r)
		if len(m.visible()) > 0 {
			// Rows start under the filters and the table header.
			row := lipgloss.Height(head) + 1 + m.cursor
			f = focus{top: row, bottom: row, ok: true}
		}
	}
	if open && m.screen != screenUrgent {
		f = lineFocus(content, "> [")
	}
	return content, f
}

// cardFocus finds the card drawn with the selection border.
func cardFocus(content string, border lipgloss.Border) focus {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.Contains(line, border.TopLeft) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], border.BottomLeft) {
				return focus{top: i, bottom: j, ok: true}
			}
		}
		return focus{top: i, bottom: i, ok: true}
	}
	return focus{}
}

// lineFocus finds the first line containing marker.
func lineFocus(content, marker string) focus {
	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, marker) {
			return focus{top: i, bottom: i, ok: true}
		}
	}
	return focus{}
}

// manageTable lists the visible items with their mark boxes. The table is
// sized to hold every row; the viewport does the scrolling.
func (m Model) manageTable(r view.Renderer) string {
	visible := m.visible()
	if len(visible) == 0 {
		return r.Styles.Muted.Render(view.NoData)
	}
	rows := make([]table.Row, 0, len(visible))
	for _, item := range visible {
		box := "[ ]"
		if m.marked[item.ID] {
			box = "[x]"
		}
		rows = append(rows, table.Row{
			box,
			item.SubCategory,
			item.Tag,
			expiry.FormatLocalDate(item.ExpireDate),
			fmt.Sprintf("x%d", item.Amount),
			expiry.Countdown(item.DaysLeft(r.Now)),
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(view.Grey)
	styles.Selected = r.Styles.Today

	t := table.New(
		table.WithColumns(manageColumns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles),
	)
	t.SetCursor(m.cursor)
	return t.View()
}

// footer is the status line, when there is one, and the key help, each cut
// to the window width.
func (m Model) footer(r view.Renderer) string {
	line := r.Styles.Muted.MaxWidth(m.layout.Width)
	if m.status == "" {
		return line.Render(m.help())
	}
	return line.Render(m.status) + "\n" + line.Render(m.help())
}

// help lists the keys of the current screen.
func (m Model) help() string {
	switch m.screen {
	case screenUrgent:
		return "tab: screen  arrows: move  e: eat  d: ditch  R: restock  x: ditch all  q: quit"
	case screenManage:
		return "tab: screen  m/s/t: filter  space: mark  e: eaten  d: ditch  D: delete  q: quit"
	default:
		return "tab: screen  m/s/t: filter  arrows: move  e: eat  d: ditch  R: restock  q: quit"
	}
}
