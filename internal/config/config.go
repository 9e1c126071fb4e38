package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/logparse/internal/sorting"
)

// Config holds the settings logparse reads at startup.
type Config struct {
	InitialBatch     int
	IncrementalBatch int
	DefaultSort      sorting.Mode
	MaxLineBytes     int
	Logging          Logging
}

// Logging configures the diagnostic logger, not the logs being viewed.
type Logging struct {
	Level     string
	Output    string
	Directory string
}

// Logger output modes.
const (
	OutputNone   = "none"
	OutputStderr = "stderr"
	OutputFile   = "file"
)

const (
	defaultConfigPath       = "~/.config/logparse/config.toml"
	defaultInitialBatch     = 50
	defaultIncrementalBatch = 20
	defaultMaxLineBytes     = 1024 * 1024
	defaultLogLevel         = "info"
	defaultLogOutput        = OutputFile
	defaultLogDir           = "~/.local/state/logparse"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		InitialBatch:     defaultInitialBatch,
		IncrementalBatch: defaultIncrementalBatch,
		DefaultSort:      sorting.ModeDate,
		MaxLineBytes:     defaultMaxLineBytes,
		Logging: Logging{
			Level:     defaultLogLevel,
			Output:    defaultLogOutput,
			Directory: mustExpand(defaultLogDir),
		},
	}
}

// DefaultPath returns the expanded location of the config file.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load reads the config at path, or the default location when path is blank.
// A missing file yields Default(). Unset or blank keys keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		InitialBatch     int    `toml:"initial_batch"`
		IncrementalBatch int    `toml:"incremental_batch"`
		DefaultSort      string `toml:"default_sort"`
		MaxLineBytes     int    `toml:"max_line_bytes"`
		Logging          struct {
			Level     string `toml:"level"`
			Output    string `toml:"output"`
			Directory string `toml:"directory"`
		} `toml:"logging"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.InitialBatch != 0 {
		cfg.InitialBatch = raw.InitialBatch
	}
	if raw.IncrementalBatch != 0 {
		cfg.IncrementalBatch = raw.IncrementalBatch
	}
	if raw.MaxLineBytes != 0 {
		cfg.MaxLineBytes = raw.MaxLineBytes
	}
	if s := strings.TrimSpace(raw.DefaultSort); s != "" {
		mode, err := sorting.ParseMode(s)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: default_sort: %w", err)
		}
		cfg.DefaultSort = mode
	}
	if s := strings.ToLower(strings.TrimSpace(raw.Logging.Level)); s != "" {
		cfg.Logging.Level = s
	}
	if s := strings.ToLower(strings.TrimSpace(raw.Logging.Output)); s != "" {
		cfg.Logging.Output = s
	}
	if s := strings.TrimSpace(raw.Logging.Directory); s != "" {
		cfg.Logging.Directory = mustExpand(s)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.InitialBatch <= 0 {
		return fmt.Errorf("initial_batch must be positive, got %d", c.InitialBatch)
	}
	if c.IncrementalBatch <= 0 {
		return fmt.Errorf("incremental_batch must be positive, got %d", c.IncrementalBatch)
	}
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", c.MaxLineBytes)
	}
	if _, err := sorting.ParseMode(string(c.DefaultSort)); err != nil {
		return fmt.Errorf("default_sort: %w", err)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Logging.Level)
	}
	switch c.Logging.Output {
	case OutputNone, OutputStderr, OutputFile:
	default:
		return fmt.Errorf("logging.output must be none, stderr or file, got %q", c.Logging.Output)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
