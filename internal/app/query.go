package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/five82/logparse/internal/report"
	"github.com/five82/logparse/internal/sorting"
	"github.com/five82/logparse/internal/workspace"
)

// QueryOptions select, order and format the entries printed by Query.
type QueryOptions struct {
	Search  string
	Sort    string // empty keeps file order
	Reverse bool
	Limit   int // zero or negative prints every match
	Full    bool
	Format  string
}

// Query reconstructs file and writes the matching entries to w without
// starting the viewer. A partially read file still prints what was read and
// then returns workspace.ErrPartialRead.
func Query(ctx context.Context, opts Options, file string, q QueryOptions, w io.Writer) error {
	format, err := report.ParseFormat(q.Format)
	if err != nil {
		return err
	}
	var mode sorting.Mode
	if q.Sort != "" {
		if mode, err = sorting.ParseMode(q.Sort); err != nil {
			return err
		}
	}

	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	if err := ctx.Err(); err != nil {
		return err
	}

	c, openErr := s.ws.Open(file)
	if c == nil {
		return openErr
	}

	if q.Search != "" {
		c.Search(q.Search)
	}
	if mode != "" {
		if err := c.Sort(mode); err != nil {
			return err
		}
	}
	if q.Reverse {
		c.Reverse()
	}

	entries := c.View()
	if q.Limit > 0 {
		entries = c.DeliverInitial(q.Limit)
	}

	s.logger.Debug("msg", "Query finished",
		"component", "app",
		"log", c.Name(),
		"query", q.Search,
		"mode", string(mode),
		"printed", len(entries))

	err = report.Write(w, entries, report.Options{
		Format: format,
		Full:   q.Full,
		Styled: format == report.FormatText && report.IsTerminal(w),
	})
	return errors.Join(err, openErr)
}

// Types reconstructs every file into one workspace and prints the type tags
// found, in priority order.
func Types(ctx context.Context, opts Options, files []string, w io.Writer) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var errs []error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := s.ws.Open(file)
		if c == nil {
			return err
		}
		if errors.Is(err, workspace.ErrPartialRead) {
			errs = append(errs, err)
		}
	}

	styled := report.IsTerminal(w)
	for _, tag := range s.ws.Registry().Types() {
		line := tag
		if styled {
			line = report.TypeStyle(tag).Render(tag)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write types: %w", err)
		}
	}
	return errors.Join(errs...)
}
