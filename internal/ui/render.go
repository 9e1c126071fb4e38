package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logparse/internal/collection"
	"github.com/five82/logparse/internal/sorting"
)

const (
	markerCollapsed = "▸ "
	markerExpanded  = "▾ "
	bodyIndent      = "  "
)

// Chrome: tab bar, command bar, two box borders and the status bar.
func (m Model) contentHeight() int { return max(1, m.height-5) }

// Box border and one column of padding on each side.
func (m Model) contentWidth() int { return max(10, m.width-4) }

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	content := m.viewport.View()
	if m.ws.Len() == 0 {
		styles := m.theme.Styles()
		content = styles.MutedText.Render("No logs open. Press o to open a file.")
	}
	b.WriteString(m.renderBox(content))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

// renderTabBar renders one tab per open log.
func (m Model) renderTabBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	parts := []string{styles.WarningText.Bold(true).Render("logparse")}
	for i, c := range m.ws.Logs() {
		style := styles.InactiveTab
		if i == m.active {
			style = styles.ActiveTab
		}
		parts = append(parts, style.Render(truncate(c.Name(), 24)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, styles.Text.Render(" ")))
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"enter", "Expand"},
		{"/", "Search"},
		{"s", "Sort"},
		{"r", "Reverse"},
		{"c", "Collapse"},
		{"o", "Open"},
		{"x", "Close"},
		{"y", "Copy"},
		{"?", "More"},
	}
	if m.prompt != promptNone {
		commands = []cmd{{"enter", "Apply"}, {"esc", "Cancel"}}
	}

	colon := styles.FaintText.Render(":")
	sep := styles.Text.Render("  ")

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+colon+styles.MutedText.Render(c.desc))
	}
	segments = append(segments,
		styles.AccentText.Render("T")+colon+styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderBox frames the entry list.
func (m Model) renderBox(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(max(0, m.width-2)).
		Height(m.contentHeight()).
		Render(content)
}

// renderStatus renders the prompt while one is open, otherwise the state of
// the current log.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()

	if m.prompt != promptNone {
		return m.input.View()
	}

	var parts []string
	if c := m.currentLog(); c != nil {
		parts = append(parts, styles.AccentText.Render(c.Name()))
		parts = append(parts, styles.FaintText.Render(describeState(c.State())))
	}
	if m.notice != "" {
		parts = append(parts, styles.MutedText.Render(m.notice))
	}
	if m.lastErr != nil {
		parts = append(parts, styles.DangerText.Render(m.lastErr.Error()))
	}

	sep := " " + styles.FaintText.Render("•") + " "
	return truncateStyled(strings.Join(parts, sep), m.width)
}

// describeState summarizes counts, ordering and the active query.
func describeState(st collection.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d shown", st.Delivered, st.ViewLen)
	if st.ViewLen != st.AllLen {
		fmt.Fprintf(&b, " of %d", st.AllLen)
	}

	b.WriteString("  " + sortLabel(st.Mode))
	if st.Reversed {
		b.WriteString(" reversed")
	}
	if st.Query != "" {
		b.WriteString("  /" + truncate(st.Query, 32))
	}
	return b.String()
}

// currentLog is the read-only counterpart of current for View.
func (m Model) currentLog() *collection.Collection {
	logs := m.ws.Logs()
	if len(logs) == 0 {
		return nil
	}
	return logs[clamp(m.active, 0, len(logs)-1)]
}

// refreshViewport rebuilds the entry list and scrolls the cursor into view.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.contentHeight()

	c := m.current()
	if c == nil {
		m.viewport.SetContent("")
		return
	}

	content, cursorLine, cursorLines := m.renderEntries(c)
	m.viewport.SetContent(content)

	// Keep the selected row, and as much of its body as fits, on screen.
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	switch {
	case cursorLine < top:
		m.viewport.SetYOffset(cursorLine)
	case cursorLine+cursorLines-1 > bottom:
		m.viewport.SetYOffset(min(cursorLine, cursorLine+cursorLines-m.viewport.Height))
	}
}

// renderEntries draws the delivered entries of c. It returns the rendered
// text, the line on which the selected row starts, and how many lines the
// selected row and its body occupy.
func (m *Model) renderEntries(c *collection.Collection) (string, int, int) {
	styles := m.theme.Styles()
	st := m.tab(c)
	width := m.contentWidth()
	bodyWidth := max(1, width-len(bodyIndent))

	visible := c.Visible()
	st.cursor = clamp(st.cursor, 0, len(visible)-1)

	var (
		lines       []string
		cursorLine  int
		cursorLines = 1
	)
	for i, e := range visible {
		expanded := st.expanded[e.ID()]
		marker := markerCollapsed
		if expanded {
			marker = markerExpanded
		}
		row := truncate(marker+e.Title(), width)

		if i == st.cursor {
			cursorLine = len(lines)
			lines = append(lines, styles.Selected.Width(width).Render(row))
		} else {
			lines = append(lines, styles.TypeStyle(e.TypeTag()).Render(row))
		}

		if expanded {
			body := m.cache.body(c.Name(), e, bodyWidth)
			for _, line := range body {
				lines = append(lines, bodyIndent+styles.Body.Render(line))
			}
			if i == st.cursor {
				cursorLines += len(body)
			}
		}
	}

	if !c.Exhausted() && len(visible) > 0 {
		lines = append(lines, styles.FaintText.Render("… more entries below, move down to load"))
	}

	return strings.Join(lines, "\n"), cursorLine, cursorLines
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// truncateStyled caps a styled line at width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// sortLabel names the ordering of a view.
func sortLabel(mode sorting.Mode) string {
	if mode == "" {
		return "file order"
	}
	return "sort " + string(mode)
}
