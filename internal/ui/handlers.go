package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logparse/internal/collection"
	"github.com/five82/logparse/internal/config"
	"github.com/five82/logparse/internal/logentry"
	"github.com/five82/logparse/internal/prefs"
	"github.com/five82/logparse/internal/sorting"
	"github.com/five82/logparse/internal/workspace"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.NextLog):
		m.switchLog(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevLog):
		m.switchLog(-1)
		return m, nil

	case key.Matches(msg, m.keys.OpenLog):
		return m, m.startPrompt(promptOpen, "open: ", "path to a log file")
	}

	c := m.current()
	if c == nil {
		return m, nil
	}
	st := m.tab(c)

	switch {
	case key.Matches(msg, m.keys.CloseLog):
		m.closeLog(c)

	case key.Matches(msg, m.keys.Search):
		cmd := m.startPrompt(promptSearch, "/", "text, AND(a,b) or OR(a,b)")
		m.input.SetValue(c.State().Query)
		m.input.CursorEnd()
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if c.State().Query != "" {
			m.applySearch(c, "")
		}

	case key.Matches(msg, m.keys.Sort):
		m.cycleSort(c)

	case key.Matches(msg, m.keys.Reverse):
		c.Reverse()
		m.redeliver(c)
		m.prefs.Reverse = c.State().Reversed
		m.savePrefs()

	case key.Matches(msg, m.keys.CollapseAll):
		c.CollapseAll(m.ws.InitialBatch())
		st.cursor = 0
		clear(st.expanded)

	case key.Matches(msg, m.keys.Toggle):
		if e := m.selected(c); e != nil {
			st.expanded[e.ID()] = !st.expanded[e.ID()]
		}

	case key.Matches(msg, m.keys.Copy):
		m.copySelected(c)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(c, 1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(c, -1)

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(c, max(1, m.viewport.Height))

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(c, -max(1, m.viewport.Height))

	case key.Matches(msg, m.keys.Top):
		st.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		m.loadMore(c)
		st.cursor = max(0, c.Delivered()-1)
	}

	m.refreshViewport()
	return m, nil
}

// handlePromptKey routes input to the active prompt.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		kind := m.prompt
		value := m.input.Value()
		m.endPrompt()
		return m, m.submitPrompt(kind, value)

	case key.Matches(msg, m.keys.Escape):
		m.endPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startPrompt(kind promptKind, label, placeholder string) tea.Cmd {
	m.prompt = kind
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	m.input.SetValue("")
	return m.input.Focus()
}

func (m *Model) endPrompt() {
	m.prompt = promptNone
	m.input.Blur()
}

func (m *Model) submitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptSearch:
		if c := m.current(); c != nil {
			m.applySearch(c, value)
		}
	case promptOpen:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		path, err := config.ExpandPath(value)
		if err != nil {
			m.lastErr = fmt.Errorf("open log: %w", err)
			return nil
		}
		return openCmd(m.ws, path)
	}
	return nil
}

// handleOpened registers a log opened by openCmd.
func (m *Model) handleOpened(msg openedMsg) {
	if msg.log == nil {
		m.lastErr = msg.err
		m.logger.Warn("msg", "Failed to open log",
			"component", "ui",
			"path", msg.path,
			"error", msg.err)
		return
	}

	m.lastErr = nil
	if msg.err != nil {
		m.lastErr = msg.err
	}

	c := msg.log
	m.applyViewPrefs(c)
	m.tabs[c.Name()] = newTabState()
	for i, open := range m.ws.Logs() {
		if open == c {
			m.active = i
		}
	}
	m.notice = fmt.Sprintf("Opened %s (%d entries)", c.Name(), c.Len())
	m.refreshViewport()
}

// applyViewPrefs puts a newly opened log in the remembered sort order.
func (m *Model) applyViewPrefs(c *collection.Collection) {
	mode := m.cfg.DefaultSort
	if m.prefs.Sort != "" {
		if parsed, err := sorting.ParseMode(m.prefs.Sort); err == nil {
			mode = parsed
		}
	}
	if err := c.Sort(mode); err != nil {
		m.lastErr = err
	}
	if m.prefs.Reverse {
		c.Reverse()
	}
	c.DeliverInitial(m.ws.InitialBatch())
}

func (m *Model) applySearch(c *collection.Collection, query string) {
	matched := c.Search(query)
	m.redeliver(c)
	switch {
	case query == "":
		m.notice = ""
	case len(matched) == 0:
		m.notice = "No entries match " + query
	default:
		m.notice = fmt.Sprintf("%d entries match", len(matched))
	}
}

func (m *Model) cycleSort(c *collection.Collection) {
	mode := c.State().Mode.Next()
	if err := c.Sort(mode); err != nil {
		m.lastErr = err
		return
	}
	m.redeliver(c)
	m.prefs.Sort = string(mode)
	m.prefs.Reverse = false
	m.savePrefs()
}

// redeliver shows the first window of a rebuilt view with every entry
// collapsed.
func (m *Model) redeliver(c *collection.Collection) {
	c.DeliverInitial(m.ws.InitialBatch())
	st := m.tab(c)
	st.cursor = 0
	clear(st.expanded)
}

// moveCursor moves the selection by delta rows. Moving past the last
// delivered row asks the log for the next window.
func (m *Model) moveCursor(c *collection.Collection, delta int) {
	st := m.tab(c)
	target := st.cursor + delta
	if target >= c.Delivered() {
		m.loadMore(c)
	}
	st.cursor = clamp(target, 0, c.Delivered()-1)
}

// loadMore delivers the next window unless the view is exhausted or the
// limiter is out of tokens.
func (m *Model) loadMore(c *collection.Collection) int {
	if c.Exhausted() || !m.limiter.Allow() {
		return 0
	}
	batch := c.DeliverMore(m.cfg.IncrementalBatch)
	if len(batch) > 0 {
		m.logger.Debug("msg", "Loaded more entries",
			"component", "ui",
			"log", c.Name(),
			"count", len(batch),
			"delivered", c.Delivered())
	}
	return len(batch)
}

func (m *Model) switchLog(step int) {
	n := m.ws.Len()
	if n == 0 {
		return
	}
	m.active = ((m.active+step)%n + n) % n
	m.refreshViewport()
}

func (m *Model) closeLog(c *collection.Collection) {
	name := c.Name()
	if err := m.ws.Close(name); err != nil && !errors.Is(err, workspace.ErrNotOpen) {
		m.lastErr = err
		return
	}
	delete(m.tabs, name)
	m.cache.forget(name)
	if m.active >= m.ws.Len() {
		m.active = max(0, m.ws.Len()-1)
	}
	m.notice = "Closed " + name
}

func (m *Model) copySelected(c *collection.Collection) {
	e := m.selected(c)
	if e == nil {
		return
	}
	if err := clipboard.WriteAll(sanitizeForClipboard(e.Text())); err != nil {
		m.lastErr = fmt.Errorf("copy entry: %w", err)
		return
	}
	m.notice = fmt.Sprintf("Copied entry %d", e.ID())
}

func sanitizeForClipboard(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("msg", "Failed to save preferences",
			"component", "ui",
			"path", m.prefsPath,
			"error", err)
	}
}

// current returns the log shown in the active tab.
func (m *Model) current() *collection.Collection {
	logs := m.ws.Logs()
	if len(logs) == 0 {
		return nil
	}
	m.active = clamp(m.active, 0, len(logs)-1)
	return logs[m.active]
}

func (m *Model) tab(c *collection.Collection) *tabState {
	st, ok := m.tabs[c.Name()]
	if !ok {
		st = newTabState()
		m.tabs[c.Name()] = st
	}
	return st
}

// selected returns the entry under the cursor.
func (m *Model) selected(c *collection.Collection) *logentry.Entry {
	visible := c.Visible()
	if len(visible) == 0 {
		return nil
	}
	return visible[clamp(m.tab(c).cursor, 0, len(visible)-1)]
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
