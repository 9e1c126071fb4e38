package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/logparse/internal/sorting"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InitialBatch != defaultInitialBatch {
		t.Fatalf("InitialBatch = %d, want %d", cfg.InitialBatch, defaultInitialBatch)
	}
	if cfg.IncrementalBatch != defaultIncrementalBatch {
		t.Fatalf("IncrementalBatch = %d, want %d", cfg.IncrementalBatch, defaultIncrementalBatch)
	}
	if cfg.DefaultSort != sorting.ModeDate {
		t.Fatalf("DefaultSort = %q, want %q", cfg.DefaultSort, sorting.ModeDate)
	}
	if cfg.MaxLineBytes != defaultMaxLineBytes {
		t.Fatalf("MaxLineBytes = %d, want %d", cfg.MaxLineBytes, defaultMaxLineBytes)
	}
	if cfg.Logging.Output != OutputFile {
		t.Fatalf("Logging.Output = %q, want %q", cfg.Logging.Output, OutputFile)
	}

	wantLogDir, err := expandPath(defaultLogDir)
	if err != nil {
		t.Fatalf("expandPath(defaultLogDir) returned error: %v", err)
	}
	if cfg.Logging.Directory != wantLogDir {
		t.Fatalf("Logging.Directory = %q, want %q", cfg.Logging.Directory, wantLogDir)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if _, err := Load(""); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := DefaultPath(); !strings.HasPrefix(got, home) {
		t.Fatalf("DefaultPath = %q, want it under HOME %q", got, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
initial_batch = 100
incremental_batch = 5
default_sort = "  type "
max_line_bytes = 4096

[logging]
level = " DEBUG "
output = "stderr"
directory = "  ~/.logparse/logs  "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.InitialBatch != 100 {
		t.Fatalf("InitialBatch = %d, want 100", cfg.InitialBatch)
	}
	if cfg.IncrementalBatch != 5 {
		t.Fatalf("IncrementalBatch = %d, want 5", cfg.IncrementalBatch)
	}
	if cfg.DefaultSort != sorting.ModeType {
		t.Fatalf("DefaultSort = %q, want %q", cfg.DefaultSort, sorting.ModeType)
	}
	if cfg.MaxLineBytes != 4096 {
		t.Fatalf("MaxLineBytes = %d, want 4096", cfg.MaxLineBytes)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Output != OutputStderr {
		t.Fatalf("Logging.Output = %q, want %q", cfg.Logging.Output, OutputStderr)
	}
	if !strings.HasPrefix(cfg.Logging.Directory, home) {
		t.Fatalf("Logging.Directory = %q, want it under HOME %q", cfg.Logging.Directory, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
default_sort = "   "

[logging]
level = ""
output = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DefaultSort != sorting.ModeDate {
		t.Fatalf("DefaultSort = %q, want %q", cfg.DefaultSort, sorting.ModeDate)
	}
	if cfg.Logging.Level != defaultLogLevel {
		t.Fatalf("Logging.Level = %q, want %q", cfg.Logging.Level, defaultLogLevel)
	}
	if cfg.Logging.Output != defaultLogOutput {
		t.Fatalf("Logging.Output = %q, want %q", cfg.Logging.Output, defaultLogOutput)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad sort", `default_sort = "Level"`, "default_sort"},
		{"negative batch", `initial_batch = -1`, "initial_batch"},
		{"negative incremental", `incremental_batch = -3`, "incremental_batch"},
		{"negative max line", `max_line_bytes = -1`, "max_line_bytes"},
		{"bad level", "[logging]\nlevel = \"trace\"", "logging.level"},
		{"bad output", "[logging]\noutput = \"syslog\"", "logging.output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want error mentioning %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_BadSortWrapsSentinel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(writeConfig(t, `default_sort = "Level"`))
	if !errors.Is(err, sorting.ErrInvalidMode) {
		t.Fatalf("Load error = %v, want it to wrap sorting.ErrInvalidMode", err)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := writeConfig(t, `initial_batch = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestValidate_Default(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}
