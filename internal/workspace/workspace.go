package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/lixenwraith/log"

	"github.com/five82/logparse/internal/collection"
	"github.com/five82/logparse/internal/logfile"
	"github.com/five82/logparse/internal/registry"
)

// DefaultInitialBatch is the number of entries delivered when a log opens.
const DefaultInitialBatch = 50

var (
	// ErrPartialRead is returned by Open when the file failed part way
	// through. The log is still registered with the entries recovered.
	ErrPartialRead = logfile.ErrPartialRead

	// ErrNotOpen is returned by Close for an unknown name.
	ErrNotOpen = errors.New("log not open")
)

// Options tunes a Workspace.
type Options struct {
	InitialBatch int
	MaxLineBytes int
}

// Workspace holds the open logs and the type registry they share.
type Workspace struct {
	registry      *registry.Registry
	reconstructor *logfile.Reconstructor
	logger        *log.Logger
	initialBatch  int

	mu   sync.RWMutex
	logs []*collection.Collection
}

// New returns an empty workspace. A nil registry gets a fresh one.
func New(reg *registry.Registry, logger *log.Logger, opts Options) *Workspace {
	if reg == nil {
		reg = registry.New()
	}
	if logger == nil {
		logger = log.NewLogger()
	}
	if opts.InitialBatch <= 0 {
		opts.InitialBatch = DefaultInitialBatch
	}
	var readerOpts []logfile.Option
	if opts.MaxLineBytes > 0 {
		readerOpts = append(readerOpts, logfile.WithMaxLineBytes(opts.MaxLineBytes))
	}
	return &Workspace{
		registry:      reg,
		reconstructor: logfile.New(reg, logger, readerOpts...),
		logger:        logger,
		initialBatch:  opts.InitialBatch,
	}
}

// Registry returns the type registry shared by every open log.
func (w *Workspace) Registry() *registry.Registry { return w.registry }

// InitialBatch returns the size of the first delivery window.
func (w *Workspace) InitialBatch() int { return w.initialBatch }

// Open reads the file at path and registers it under a unique display name.
// The first window is delivered before Open returns.
//
// If the file cannot be opened, or fails before its first line, nothing is
// registered. If reading fails part way through, the collection holds the
// entries recovered so far and is returned together with an error wrapping
// ErrPartialRead.
func (w *Workspace) Open(path string) (*collection.Collection, error) {
	entries, readErr := w.reconstructor.ReadFile(path)
	if readErr != nil && !errors.Is(readErr, ErrPartialRead) {
		return nil, readErr
	}

	w.mu.Lock()
	name := w.uniqueNameLocked(filepath.Base(path))
	c := collection.New(name, path, entries, w.registry, w.logger)
	w.logs = append(w.logs, c)
	w.mu.Unlock()

	c.DeliverInitial(w.initialBatch)

	w.logger.Info("msg", "Log opened",
		"component", "workspace",
		"name", name,
		"path", path,
		"entries", len(entries),
		"types", w.registry.Len())

	if readErr != nil {
		return c, fmt.Errorf("open %s: %w", name, readErr)
	}
	return c, nil
}

// uniqueNameLocked returns base, or base(1), base(2), ... when taken.
func (w *Workspace) uniqueNameLocked(base string) string {
	name := base
	for n := 1; w.indexLocked(name) >= 0; n++ {
		name = fmt.Sprintf("%s(%d)", base, n)
	}
	return name
}

func (w *Workspace) indexLocked(name string) int {
	return slices.IndexFunc(w.logs, func(c *collection.Collection) bool {
		return c.Name() == name
	})
}

// Close discards every log named name.
func (w *Workspace) Close(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	kept := make([]*collection.Collection, 0, len(w.logs))
	for _, c := range w.logs {
		if c.Name() != name {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(w.logs) {
		return fmt.Errorf("close %q: %w", name, ErrNotOpen)
	}
	w.logs = kept

	w.logger.Info("msg", "Log closed",
		"component", "workspace",
		"name", name,
		"remaining", len(kept))
	return nil
}

// Get returns the log registered under name.
func (w *Workspace) Get(name string) (*collection.Collection, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if i := w.indexLocked(name); i >= 0 {
		return w.logs[i], true
	}
	return nil, false
}

// Logs returns the open logs in the order they were opened.
func (w *Workspace) Logs() []*collection.Collection {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.logs)
}

// Len returns the number of open logs.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.logs)
}
