// Package sorting orders log entries by date key or by type priority.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/logparse/internal/logentry"
	"github.com/five82/logparse/internal/registry"
)

// Mode selects the sort order.
type Mode string

const (
	ModeDate Mode = "Date"
	ModeType Mode = "Type"
)

// ErrInvalidMode is returned for sort modes other than Date and Type.
var ErrInvalidMode = errors.New("invalid sort mode")

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeDate, ModeType}
}

// ParseMode accepts "Date" or "Type", ignoring surrounding whitespace and case.
func ParseMode(s string) (Mode, error) {
	trimmed := strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(trimmed, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Next returns the mode after m in display order, wrapping around.
func (m Mode) Next() Mode {
	modes := Modes()
	for i, candidate := range modes {
		if candidate == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return modes[0]
}

// Comparator orders two entries the way slices.SortStableFunc expects.
type Comparator func(a, b *logentry.Entry) int

// ByDate compares date keys lexicographically.
func ByDate() Comparator {
	return func(a, b *logentry.Entry) int {
		return strings.Compare(a.DateKey(), b.DateKey())
	}
}

// ByType compares type tags by their priority in reg. Unregistered tags share
// registry.NotFound and therefore sort first.
func ByType(reg *registry.Registry) Comparator {
	return func(a, b *logentry.Entry) int {
		if a.TypeTag() == b.TypeTag() {
			return 0
		}
		return cmp.Compare(reg.PriorityOf(a.TypeTag()), reg.PriorityOf(b.TypeTag()))
	}
}

// Comparator returns the comparator for m.
func (m Mode) Comparator(reg *registry.Registry) (Comparator, error) {
	switch m {
	case ModeDate:
		return ByDate(), nil
	case ModeType:
		if reg == nil {
			return nil, errors.New("type sort requires a registry")
		}
		return ByType(reg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
	}
}

// Sort orders entries in place. Equal entries keep their relative order.
func Sort(entries []*logentry.Entry, compare Comparator) {
	slices.SortStableFunc(entries, compare)
}
