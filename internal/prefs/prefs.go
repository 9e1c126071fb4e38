// Package prefs remembers the viewer settings a user changes interactively:
// the color theme, the last sort mode and whether the view was reversed.
// They live in ~/.config/logparse/prefs.toml, apart from config.toml, so the
// viewer can rewrite them without touching hand-edited settings.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/logparse/internal/config"
	"github.com/five82/logparse/internal/sorting"
)

// Prefs holds the view settings remembered between sessions. Sort is empty
// until the user picks a mode; callers then fall back to the configured
// default_sort.
type Prefs struct {
	Theme   string `toml:"theme"`
	Sort    string `toml:"sort,omitempty"`
	Reverse bool   `toml:"reverse"`
}

const (
	defaultPrefsPath = "~/.config/logparse/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load returns the saved preferences at path, or the defaults when the file
// is missing, unreadable or malformed. A stale sort mode is cleared rather
// than reported; the viewer must start even with a broken prefs file.
func Load(path string) (Prefs, error) {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p, nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}
	return normalize(p), nil
}

// normalize fills a blank theme and canonicalizes the sort mode name.
func normalize(p Prefs) Prefs {
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	if p.Sort != "" {
		mode, err := sorting.ParseMode(p.Sort)
		if err != nil {
			p.Sort = ""
		} else {
			p.Sort = string(mode)
		}
	}
	return p
}

// Save writes theme, sort and reverse to path, creating the directory if
// needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(normalize(p))
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
