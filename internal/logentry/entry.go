package logentry

import (
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/five82/logparse/internal/registry"
)

const (
	dateWindow  = 24
	typeWindow  = 50
	typeToken   = 2
	titleLength = 160
	titleSuffix = "..."
)

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// Entry is one reconstructed log record. Its text, date key and type tag are
// fixed at construction; only the visibility flag changes afterwards.
type Entry struct {
	id      int
	text    string
	lower   string
	dateKey string
	typeTag string
	visible atomic.Bool
}

// New builds an Entry from the raw, newline-joined lines of one record. The
// text is segmented before the date key and type tag are extracted, and the
// type tag is registered with reg when reg is non-nil.
func New(id int, raw string, reg *registry.Registry) *Entry {
	text := Segment(raw)
	e := &Entry{
		id:      id,
		text:    text,
		lower:   strings.ToLower(text),
		dateKey: extractDateKey(text),
		typeTag: extractTypeTag(text),
	}
	if reg != nil {
		reg.Register(e.typeTag)
	}
	return e
}

// ID returns the entry's position within its source file.
func (e *Entry) ID() int { return e.id }

// Text returns the segmented entry body.
func (e *Entry) Text() string { return e.text }

// DateKey returns the normalized date token used for date sorting.
func (e *Entry) DateKey() string { return e.dateKey }

// TypeTag returns the positional type token, possibly empty.
func (e *Entry) TypeTag() string { return e.typeTag }

// Contains reports whether term occurs in the entry text, ignoring case.
func (e *Entry) Contains(term string) bool {
	return strings.Contains(e.lower, strings.ToLower(term))
}

// Title returns the one-line summary shown for a collapsed entry.
func (e *Entry) Title() string {
	head := lineBreaks.Replace(prefix(e.text, titleLength))
	return strings.TrimSpace(head) + titleSuffix
}

// Visible reports whether the entry has been delivered to the presentation
// layer since the last reset.
func (e *Entry) Visible() bool { return e.visible.Load() }

// MarkVisible flags the entry as delivered. It reports whether the flag
// changed.
func (e *Entry) MarkVisible() bool { return e.visible.CompareAndSwap(false, true) }

// Hide clears the delivered flag.
func (e *Entry) Hide() { e.visible.Store(false) }

func (e *Entry) String() string { return e.Title() }

// extractDateKey strips separators from the leading date/time tokens. Only the
// first 24 characters are considered and the window stops where the type
// token begins.
func extractDateKey(text string) string {
	window := beforeToken(prefix(text, dateWindow), typeToken)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == ',' || r == ':' {
			return -1
		}
		return r
	}, window)
}

func extractTypeTag(text string) string {
	fields := strings.Fields(prefix(text, typeWindow))
	if len(fields) <= typeToken {
		return ""
	}
	return fields[typeToken]
}

// prefix returns at most n leading characters of s.
func prefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// beforeToken cuts s where the whitespace-separated token with index n starts.
func beforeToken(s string, n int) string {
	tokens := 0
	inToken := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			inToken = false
			continue
		}
		if inToken {
			continue
		}
		inToken = true
		if tokens == n {
			return s[:i]
		}
		tokens++
	}
	return s
}
