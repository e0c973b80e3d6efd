package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fbritoferreira/m3u8-parser/internal/parser"
)

// ============================================================================
// Entry Item
// ============================================================================

// entryItem wraps an Entry with pre-lowered fields for fast filtering
type entryItem struct {
	entry *parser.Entry
	name  string
	group string
	tvgID string
	url   string
}

func newEntryItem(e *parser.Entry) entryItem {
	return entryItem{
		entry: e,
		name:  strings.ToLower(e.Name),
		group: strings.ToLower(e.Group.Title),
		tvgID: strings.ToLower(e.Tvg.ID),
		url:   strings.ToLower(e.URL),
	}
}

// matchesQuery checks if the item matches all search words.
// Uses case-insensitive substring matching; words are pre-lowered.
func (item *entryItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !item.containsWord(word) {
			return false
		}
	}
	return true
}

// containsWord checks if any field contains the word
func (item *entryItem) containsWord(word string) bool {
	if strings.Contains(item.name, word) {
		return true
	}
	if strings.Contains(item.group, word) {
		return true
	}
	if strings.Contains(item.tvgID, word) {
		return true
	}
	return strings.Contains(item.url, word)
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

// debounceFilter returns a command that triggers filtering after a delay
func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Browser Model
// ============================================================================

// browserModel is the Bubble Tea model for the channel browser
type browserModel struct {
	width  int
	height int

	textInput textinput.Model
	items     []entryItem
	filtered  []int // Indices into items matching the current query
	cursor    int   // Position within filtered
	offset    int   // First visible row

	groups     []string // "" plus every known group title
	groupIdx   int      // Active position in groups
	pendingCmd bool     // A debounce tick is in flight

	selected *parser.Entry
	quitting bool
}

func newBrowserModel(pl *parser.Playlist, query, group string) browserModel {
	ti := textinput.New()
	ti.Placeholder = "filter channels"
	ti.Prompt = "> "
	ti.SetValue(query)
	ti.Focus()

	items := make([]entryItem, 0, len(pl.Entries))
	for _, e := range pl.Entries {
		items = append(items, newEntryItem(e))
	}

	groups := append([]string{""}, pl.Groups()...)
	groupIdx := 0
	for i, g := range groups {
		if g != "" && strings.EqualFold(g, group) {
			groupIdx = i
			break
		}
	}

	m := browserModel{
		textInput: ti,
		items:     items,
		groups:    groups,
		groupIdx:  groupIdx,
		width:     80,
		height:    24,
	}
	m.applyFilter()
	return m
}

func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

// applyFilter recomputes the visible item set from the query and the
// active group
func (m *browserModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.textInput.Value()))
	words := strings.Fields(query)
	group := m.groups[m.groupIdx]

	m.filtered = m.filtered[:0]
	for i := range m.items {
		if group != "" && !strings.EqualFold(m.items[i].entry.Group.Title, group) {
			continue
		}
		if len(words) > 0 && !m.items[i].matchesQuery(words) {
			continue
		}
		m.filtered = append(m.filtered, i)
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
}

// listHeight is the number of channel rows that fit on screen
func (m *browserModel) listHeight() int {
	// Query line, divider, detail pane (5 lines), help line
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func (m *browserModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.filtered)-1 {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case filterMsg:
		m.pendingCmd = false
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 {
				m.selected = m.items[m.filtered[m.cursor]].entry
			}
			m.quitting = true
			return m, tea.Quit

		case "up", "ctrl+k":
			m.moveCursor(-1)
			return m, nil

		case "down", "ctrl+j":
			m.moveCursor(1)
			return m, nil

		case "pgup":
			m.moveCursor(-m.listHeight())
			return m, nil

		case "pgdown":
			m.moveCursor(m.listHeight())
			return m, nil

		case "tab":
			m.groupIdx = (m.groupIdx + 1) % len(m.groups)
			m.cursor = 0
			m.applyFilter()
			return m, nil

		case "shift+tab":
			m.groupIdx = (m.groupIdx - 1 + len(m.groups)) % len(m.groups)
			m.cursor = 0
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds := []tea.Cmd{cmd}
	if !m.pendingCmd {
		m.pendingCmd = true
		cmds = append(cmds, debounceFilter())
	}
	return m, tea.Batch(cmds...)
}

// ============================================================================
// View
// ============================================================================

func (m browserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.textInput.View())
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.items))))
	if group := m.groups[m.groupIdx]; group != "" {
		b.WriteString(styles.Group.Render("  [" + group + "]"))
	}
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", max(m.width-1, 1))))
	b.WriteString("\n")

	height := m.listHeight()
	end := m.offset + height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		item := m.items[m.filtered[i]]
		row := m.renderRow(item, i == m.cursor)
		b.WriteString(row)
		b.WriteString("\n")
	}
	for i := end - m.offset; i < height; i++ {
		b.WriteString("\n")
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("─", max(m.width-1, 1))))
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString(styles.Dim.Render("enter select · tab group · esc quit"))

	return b.String()
}

func (m browserModel) renderRow(item entryItem, current bool) string {
	name := truncate(item.entry.Name, 40)
	group := truncate(item.entry.Group.Title, 24)

	cursor := "  "
	nameStyle := styles.Name
	groupStyle := styles.Group
	if current {
		cursor = styles.Cursor.Render("> ")
		nameStyle = styles.WithSelection(nameStyle)
		groupStyle = styles.WithSelection(groupStyle)
	}

	return cursor +
		nameStyle.Render(fmt.Sprintf("%-40s", name)) +
		"  " +
		groupStyle.Render(fmt.Sprintf("%-24s", group))
}

// renderDetail shows the entry under the cursor: locator, tvg
// metadata, and transport overrides
func (m browserModel) renderDetail() string {
	if len(m.filtered) == 0 {
		return styles.Dim.Render("no channels match") + "\n\n\n\n"
	}
	e := m.items[m.filtered[m.cursor]].entry

	var b strings.Builder
	b.WriteString(styles.DetailName.Render(e.Name))
	if e.Group.Title != "" {
		b.WriteString(styles.Group.Render("  (" + e.Group.Title + ")"))
	}
	b.WriteString("\n")
	b.WriteString(styles.DetailLabel.Render("url  "))
	b.WriteString(styles.URL.Render(truncate(e.URL, max(m.width-8, 10))))
	b.WriteString("\n")

	meta := make([]string, 0, 4)
	if e.Tvg.ID != "" {
		meta = append(meta, "tvg-id "+e.Tvg.ID)
	}
	if e.Catchup.Type != "" {
		meta = append(meta, "catchup "+e.Catchup.Type)
	}
	if e.Transport.UserAgent != "" {
		meta = append(meta, "ua "+truncate(e.Transport.UserAgent, 24))
	}
	if e.Transport.Referrer != "" {
		meta = append(meta, "referrer "+truncate(e.Transport.Referrer, 24))
	}
	b.WriteString(styles.DetailValue.Render(truncate(strings.Join(meta, " · "), max(m.width-2, 10))))
	b.WriteString("\n\n")

	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

// ============================================================================
// Entry Point
// ============================================================================

// Run opens the channel browser and returns the selected entry, or
// nil when the user cancels
func Run(pl *parser.Playlist, query, group string) (*parser.Entry, error) {
	RefreshStyles()

	model := newBrowserModel(pl, query, group)
	program := tea.NewProgram(model, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("browser error: %w", err)
	}

	m, ok := final.(browserModel)
	if !ok {
		return nil, nil
	}
	return m.selected, nil
}
