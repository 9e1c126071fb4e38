// Package search filters log entries with plain, AND(...) and OR(...) queries.
//
// Matching is a case-insensitive substring test against the entry text. The
// query forms are checked in order:
//
//	""                every entry
//	AND(a,b,...)      entries containing every term
//	OR(a,b,...)       entries containing at least one term
//	anything else     entries containing the whole query
//
// Terms are the text after the first "AND(" or "OR(" up to the next ")",
// split on ",". A missing ")" makes the rest of the query the last term.
// Terms are used verbatim, so "AND(a, b)" looks for " b" with its leading
// space, and an empty term matches everything.
package search

import (
	"strings"

	"github.com/five82/logparse/internal/logentry"
)

// Kind identifies the form of a parsed query.
type Kind int

const (
	KindAll Kind = iota
	KindPlain
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindPlain:
		return "plain"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	default:
		return "unknown"
	}
}

const (
	andPrefix = "AND("
	orPrefix  = "OR("
)

// Query is a parsed search string.
type Query struct {
	Raw   string
	Kind  Kind
	Terms []string
}

// Parse classifies raw. It never fails.
func Parse(raw string) Query {
	q := Query{Raw: raw}
	switch {
	case raw == "":
		q.Kind = KindAll
	case strings.Contains(raw, andPrefix):
		q.Kind = KindAnd
		q.Terms = splitTerms(raw, andPrefix)
	case strings.Contains(raw, orPrefix):
		q.Kind = KindOr
		q.Terms = splitTerms(raw, orPrefix)
	default:
		q.Kind = KindPlain
		q.Terms = []string{raw}
	}
	return q
}

func splitTerms(raw, op string) []string {
	_, rest, _ := strings.Cut(raw, op)
	body, _, _ := strings.Cut(rest, ")")
	return strings.Split(body, ",")
}

// Match reports whether e satisfies the query.
func (q Query) Match(e *logentry.Entry) bool {
	switch q.Kind {
	case KindAll:
		return true
	case KindAnd:
		for _, term := range q.Terms {
			if !e.Contains(term) {
				return false
			}
		}
		return true
	case KindOr:
		for _, term := range q.Terms {
			if e.Contains(term) {
				return true
			}
		}
		return false
	default:
		return len(q.Terms) > 0 && e.Contains(q.Terms[0])
	}
}

// Filter returns the entries matching q in their original order. An empty
// query returns a copy of entries.
func (q Query) Filter(entries []*logentry.Entry) []*logentry.Entry {
	if q.Kind == KindAll {
		return append([]*logentry.Entry(nil), entries...)
	}
	matched := make([]*logentry.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Run parses raw and filters entries with it.
func Run(raw string, entries []*logentry.Entry) []*logentry.Entry {
	return Parse(raw).Filter(entries)
}
