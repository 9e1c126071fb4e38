package logentry

import "strings"

// delimiterGroup tracks one kind of bracket pair while segmenting.
type delimiterGroup struct {
	open, close byte
	opened      bool // an opener has been seen since the last break
	depth       int  // nested openers beyond the first
}

// step feeds c into the group and reports whether a break belongs after it.
func (g *delimiterGroup) step(c byte) bool {
	switch c {
	case g.open:
		if g.opened {
			g.depth++
		} else {
			g.opened = true
		}
	case g.close:
		if !g.opened {
			return false
		}
		if g.depth > 0 {
			g.depth--
			return false
		}
		g.opened = false
		return true
	}
	return false
}

// Segment inserts a line break after every closing parenthesis or bracket that
// returns its group to depth zero. Parentheses and brackets are tracked
// independently and closers without a preceding opener are ignored. Only
// newlines are added; no other character is removed or moved.
func Segment(text string) string {
	if !strings.ContainsAny(text, ")]") {
		return text
	}

	parens := delimiterGroup{open: '(', close: ')'}
	brackets := delimiterGroup{open: '[', close: ']'}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for i := 0; i < len(text); i++ {
		c := text[i]
		b.WriteByte(c)
		closedParen := parens.step(c)
		closedBracket := brackets.step(c)
		if closedParen || closedBracket {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
