package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/lixenwraith/log"

	"github.com/five82/logparse/internal/logentry"
	"github.com/five82/logparse/internal/registry"
)

const (
	boundaryWidth     = 10
	initialBufferSize = 64 * 1024

	// DefaultMaxLineBytes is the longest physical line the scanner accepts.
	DefaultMaxLineBytes = 1024 * 1024
)

// ErrPartialRead marks a read that failed after some entries were recovered.
var ErrPartialRead = errors.New("partial read")

var boundaryRe = regexp.MustCompile(`^(?:[0-9]+[^0-9]+[0-9]+[^0-9]+[0-9]+)+$`)

// IsBoundary reports whether line starts a new entry: its first ten characters
// must be three digit runs joined by non-digit runs, as in "2016-06-23" or
// "23.06.2016".
func IsBoundary(line string) bool {
	if len(line) < boundaryWidth {
		return false
	}
	return boundaryRe.MatchString(line[:boundaryWidth])
}

// Reconstructor groups physical lines into log entries.
type Reconstructor struct {
	registry     *registry.Registry
	logger       *log.Logger
	maxLineBytes int
}

// Option customizes a Reconstructor.
type Option func(*Reconstructor)

// WithMaxLineBytes overrides DefaultMaxLineBytes. Non-positive values are
// ignored.
func WithMaxLineBytes(n int) Option {
	return func(r *Reconstructor) {
		if n > 0 {
			r.maxLineBytes = n
		}
	}
}

// New returns a Reconstructor that registers every type tag it extracts with
// reg.
func New(reg *registry.Registry, logger *log.Logger, opts ...Option) *Reconstructor {
	if logger == nil {
		logger = log.NewLogger()
	}
	r := &Reconstructor{
		registry:     reg,
		logger:       logger,
		maxLineBytes: DefaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile reconstructs every entry in the file at path. A file that cannot be
// opened yields no entries and an error. A failure part way through returns
// the entries completed so far together with an error wrapping
// ErrPartialRead.
func (r *Reconstructor) ReadFile(path string) ([]*logentry.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	entries, err := r.Read(file)
	if err != nil {
		r.logger.Warn("msg", "Log read stopped early",
			"component", "logfile",
			"path", path,
			"entries", len(entries),
			"error", err)
		return entries, err
	}

	r.logger.Debug("msg", "Log reconstructed",
		"component", "logfile",
		"path", path,
		"entries", len(entries))
	return entries, nil
}

// Read consumes src in a single forward pass. An error after at least one
// line wraps ErrPartialRead and comes with the entries completed so far; an
// error before any line is returned as is with no entries.
func (r *Reconstructor) Read(src io.Reader) ([]*logentry.Entry, error) {
	b := builder{registry: r.registry}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, min(initialBufferSize, r.maxLineBytes)), r.maxLineBytes)
	scanned := 0
	for scanner.Scan() {
		b.push(scanner.Text())
		scanned++
	}
	entries := b.finish()

	if err := scanner.Err(); err != nil {
		// A failure before the first line is a failed read, not a partial one.
		if scanned == 0 {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return entries, fmt.Errorf("read log: %w: %w", ErrPartialRead, err)
	}
	return entries, nil
}

// Lines reconstructs entries from lines already in memory.
func (r *Reconstructor) Lines(lines []string) []*logentry.Entry {
	b := builder{registry: r.registry}
	for _, line := range lines {
		b.push(line)
	}
	return b.finish()
}

// builder holds the lines of the entry currently being assembled.
type builder struct {
	registry *registry.Registry
	pending  []string
	entries  []*logentry.Entry
}

func (b *builder) push(line string) {
	if IsBoundary(line) {
		b.flush()
	}
	b.pending = append(b.pending, line)
}

// flush emits the pending lines as an entry when they begin with a header.
// Headerless runs, such as a preamble before the first boundary, are dropped.
func (b *builder) flush() {
	if len(b.pending) == 0 {
		return
	}
	if IsBoundary(b.pending[0]) {
		id := len(b.entries)
		b.entries = append(b.entries, logentry.New(id, strings.Join(b.pending, "\n"), b.registry))
	}
	b.pending = b.pending[:0]
}

func (b *builder) finish() []*logentry.Entry {
	b.flush()
	return b.entries
}
