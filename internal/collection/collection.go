// Package collection owns the entries of one open log and serves them to the
// presentation layer in windows.
//
// A Collection keeps two lists. All is every entry in file order and never
// changes. View is the current search/sort result, a subset or reordering of
// All. Delivery walks View with a watermark: DeliverInitial marks the first
// batch visible and DeliverMore continues from where the previous call
// stopped, so no entry is handed out twice until the next Reset.
//
// Search, Sort and Reverse each install a new view through Reset, which hides
// every entry and rewinds the watermark. Callers then deliver the initial batch
// again.
package collection

import (
	"slices"
	"sync"

	"github.com/lixenwraith/log"

	"github.com/five82/logparse/internal/logentry"
	"github.com/five82/logparse/internal/registry"
	"github.com/five82/logparse/internal/search"
	"github.com/five82/logparse/internal/sorting"
)

// Collection is safe for concurrent use.
type Collection struct {
	name     string
	path     string
	all      []*logentry.Entry
	registry *registry.Registry
	logger   *log.Logger

	mu        sync.Mutex
	view      []*logentry.Entry
	delivered int
	query     string
	mode      sorting.Mode
	reversed  bool
}

// New wraps entries, which must be in file order. The initial view is all of
// them and nothing is delivered yet.
func New(name, path string, entries []*logentry.Entry, reg *registry.Registry, logger *log.Logger) *Collection {
	if logger == nil {
		logger = log.NewLogger()
	}
	return &Collection{
		name:     name,
		path:     path,
		all:      entries,
		registry: reg,
		logger:   logger,
		view:     slices.Clone(entries),
	}
}

func (c *Collection) Name() string { return c.name }
func (c *Collection) Path() string { return c.path }

// Len returns the number of entries in the file.
func (c *Collection) Len() int { return len(c.all) }

// Reset installs view, hides every entry of the log and rewinds delivery.
func (c *Collection) Reset(view []*logentry.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked(slices.Clone(view))
}

func (c *Collection) resetLocked(view []*logentry.Entry) {
	for _, e := range c.all {
		e.Hide()
	}
	c.view = view
	c.delivered = 0
}

// DeliverInitial hides every entry, then marks up to limit entries from the
// front of the view visible and returns them. Calling it again restarts
// delivery from the first entry.
func (c *Collection) DeliverInitial(limit int) []*logentry.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(c.view)
	return c.deliverLocked(limit)
}

// DeliverMore continues delivery from the watermark. It returns only the
// entries it newly marked visible, which is fewer than limit once the view is
// exhausted.
func (c *Collection) DeliverMore(limit int) []*logentry.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliverLocked(limit)
}

func (c *Collection) deliverLocked(limit int) []*logentry.Entry {
	if limit < 0 {
		limit = 0
	}
	start := c.delivered
	end := min(start+limit, len(c.view))

	batch := slices.Clone(c.view[start:end])
	for _, e := range batch {
		e.MarkVisible()
	}
	c.delivered = end

	c.logger.Debug("msg", "Window delivered",
		"component", "collection",
		"log", c.name,
		"from", start,
		"to", end,
		"view", len(c.view))
	return batch
}

// Search replaces the view with the entries of the whole log matching query,
// in file order. An empty query restores every entry.
func (c *Collection) Search(query string) []*logentry.Entry {
	matched := search.Run(query, c.all)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(matched)
	c.query = query
	c.mode = ""
	c.reversed = false

	c.logger.Debug("msg", "Search applied",
		"component", "collection",
		"log", c.name,
		"query", query,
		"matches", len(matched))
	return slices.Clone(matched)
}

// Sort reorders the current view by mode. An invalid mode returns an error
// wrapping sorting.ErrInvalidMode and leaves the view and delivery untouched.
func (c *Collection) Sort(mode sorting.Mode) error {
	compare, err := mode.Comparator(c.registry)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	view := slices.Clone(c.view)
	sorting.Sort(view, compare)
	c.resetLocked(view)
	c.mode = mode
	c.reversed = false

	c.logger.Debug("msg", "Sort applied",
		"component", "collection",
		"log", c.name,
		"mode", string(mode),
		"entries", len(view))
	return nil
}

// Reverse inverts the order of the current view.
func (c *Collection) Reverse() {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := slices.Clone(c.view)
	slices.Reverse(view)
	c.resetLocked(view)
	c.reversed = !c.reversed

	c.logger.Debug("msg", "View reversed",
		"component", "collection",
		"log", c.name,
		"reversed", c.reversed)
}

// CollapseAll hides every entry and re-delivers the first limit entries of
// the current view.
func (c *Collection) CollapseAll(limit int) []*logentry.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked(c.view)
	return c.deliverLocked(limit)
}

// View returns a copy of the current view.
func (c *Collection) View() []*logentry.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.view)
}

// All returns a copy of every entry in file order.
func (c *Collection) All() []*logentry.Entry {
	return slices.Clone(c.all)
}

// Visible returns the delivered prefix of the view.
func (c *Collection) Visible() []*logentry.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.view[:c.delivered])
}

// Delivered returns the watermark.
func (c *Collection) Delivered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivered
}

// Exhausted reports whether every entry of the view has been delivered.
func (c *Collection) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delivered >= len(c.view)
}

// State describes how the current view was produced.
type State struct {
	Query     string
	Mode      sorting.Mode
	Reversed  bool
	Delivered int
	ViewLen   int
	AllLen    int
}

// State returns a snapshot of the view parameters and counts.
func (c *Collection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Query:     c.query,
		Mode:      c.mode,
		Reversed:  c.reversed,
		Delivered: c.delivered,
		ViewLen:   len(c.view),
		AllLen:    len(c.all),
	}
}
