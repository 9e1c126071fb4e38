package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/logparse/internal/logentry"
)

const tabWidth = 4

// cacheKey identifies one entry. Entry IDs are only unique within a log, so
// the log name is part of the key.
type cacheKey struct {
	log string
	id  int
}

// cachedBody is an entry's text wrapped to width.
type cachedBody struct {
	width int
	lines []string
}

// renderCache holds wrapped entry bodies so each is built once however often
// it is expanded. Only the latest width is kept per entry, so the cache never
// holds more than one body per expanded entry.
type renderCache struct {
	bodies map[cacheKey]cachedBody
}

func newRenderCache() *renderCache {
	return &renderCache{bodies: make(map[cacheKey]cachedBody)}
}

// body returns the lines of e's text wrapped to width. A body built for
// another width is replaced.
func (rc *renderCache) body(log string, e *logentry.Entry, width int) []string {
	k := cacheKey{log: log, id: e.ID()}
	if cached, ok := rc.bodies[k]; ok && cached.width == width {
		return cached.lines
	}
	lines := wrapBody(e.Text(), width)
	rc.bodies[k] = cachedBody{width: width, lines: lines}
	return lines
}

// realized reports whether a body of entry id in log has been built.
func (rc *renderCache) realized(log string, id int) bool {
	_, ok := rc.bodies[cacheKey{log: log, id: id}]
	return ok
}

// forget drops every body of log.
func (rc *renderCache) forget(log string) {
	for k := range rc.bodies {
		if k.log == log {
			delete(rc.bodies, k)
		}
	}
}

func (rc *renderCache) len() int { return len(rc.bodies) }

// wrapBody soft-wraps text at word boundaries, then hard-wraps words longer
// than width.
func wrapBody(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
	if width > 0 {
		text = wrap.String(wordwrap.String(text, width), width)
	}
	return strings.Split(text, "\n")
}
