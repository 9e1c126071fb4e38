// Package report writes entries for the non-interactive query command as
// plain or styled text, JSON, or YAML.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/five82/logparse/internal/logentry"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts text, json, yaml or yml, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Options controls Write.
type Options struct {
	Format Format
	// Full prints whole entry bodies in text mode instead of titles.
	Full bool
	// Styled colors text output by type tag.
	Styled bool
}

// Record is the structured form of one entry.
type Record struct {
	ID      int    `json:"id" yaml:"id"`
	DateKey string `json:"date_key" yaml:"date_key"`
	Type    string `json:"type" yaml:"type"`
	Title   string `json:"title" yaml:"title"`
	Text    string `json:"text" yaml:"text"`
}

// Records converts entries in order.
func Records(entries []*logentry.Entry) []Record {
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = Record{
			ID:      e.ID(),
			DateKey: e.DateKey(),
			Type:    e.TypeTag(),
			Title:   e.Title(),
			Text:    e.Text(),
		}
	}
	return out
}

// Write renders entries to w.
func Write(w io.Writer, entries []*logentry.Entry, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, entries, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Records(entries)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Records(entries)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(opts.Format))
	}
}

func writeText(w io.Writer, entries []*logentry.Entry, opts Options) error {
	for i, e := range entries {
		line := e.Title()
		if opts.Full {
			line = e.Text()
			if i > 0 {
				line = "\n" + line
			}
		}
		if opts.Styled {
			line = TypeStyle(e.TypeTag()).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}
	return nil
}

// TypeStyle returns the foreground style for a type tag.
func TypeStyle(tag string) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch strings.ToUpper(tag) {
	case "ERROR", "FATAL", "SEVERE":
		return style.Foreground(lipgloss.Color("#FF5555")).Bold(true)
	case "WARN", "WARNING":
		return style.Foreground(lipgloss.Color("#F1FA8C"))
	case "INFO":
		return style.Foreground(lipgloss.Color("#50FA7B"))
	case "DEBUG", "TRACE", "FINE":
		return style.Foreground(lipgloss.Color("#6272A4"))
	default:
		return style
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
