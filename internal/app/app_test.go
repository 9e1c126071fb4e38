package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/five82/logparse/internal/config"
	"github.com/five82/logparse/internal/report"
	"github.com/five82/logparse/internal/sorting"
	"github.com/five82/logparse/internal/workspace"
)

// testOptions isolates HOME and silences the diagnostic logger.
func testOptions(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	configPath := filepath.Join(dir, "config.toml")
	cfg := "initial_batch = 4\n\n[logging]\noutput = \"none\"\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return Options{ConfigPath: configPath, PrefsPath: filepath.Join(dir, "prefs.toml")}, dir
}

func writeLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func sampleLog(t *testing.T, dir string) string {
	return writeLog(t, dir, "app.log",
		"2016-06-23 10:00:03 INFO started",
		"2016-06-23 10:00:01 ERROR disk full",
		"    at writer.flush",
		"2016-06-23 10:00:02 WARN slow request",
		"2016-06-23 10:00:00 INFO listening",
	)
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{"warn", false},
		{"warning", false},
		{"error", false},
		{"verbose", true},
		{"", true},
	}
	for _, tc := range cases {
		_, err := parseLogLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseLogLevel(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestNewLoggerOutputs(t *testing.T) {
	dir := t.TempDir()

	logger, err := newLogger(config.Logging{Level: "info", Output: "none"})
	if err != nil {
		t.Fatalf("newLogger(none) error: %v", err)
	}
	_ = logger.Shutdown(shutdownTimeout)

	logDir := filepath.Join(dir, "state", "logparse")
	logger, err = newLogger(config.Logging{Level: "debug", Output: "file", Directory: logDir})
	if err != nil {
		t.Fatalf("newLogger(file) error: %v", err)
	}
	_ = logger.Shutdown(shutdownTimeout)
	if info, err := os.Stat(logDir); err != nil || !info.IsDir() {
		t.Fatalf("log directory not created: %v", err)
	}

	if _, err := newLogger(config.Logging{Level: "info", Output: "syslog"}); err == nil {
		t.Fatalf("newLogger(syslog) error = nil, want error")
	}
	if _, err := newLogger(config.Logging{Level: "loud", Output: "none"}); err == nil {
		t.Fatalf("newLogger(loud) error = nil, want error")
	}
}

func TestQueryTitlesInFileOrder(t *testing.T) {
	opts, dir := testOptions(t)
	path := sampleLog(t, dir)

	var out bytes.Buffer
	if err := Query(context.Background(), opts, path, QueryOptions{}, &out); err != nil {
		t.Fatalf("Query error: %v", err)
	}

	want := strings.Join([]string{
		"2016-06-23 10:00:03 INFO started...",
		"2016-06-23 10:00:01 ERROR disk full    at writer.flush...",
		"2016-06-23 10:00:02 WARN slow request...",
		"2016-06-23 10:00:00 INFO listening...",
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("Query output =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestQuerySearchSortLimit(t *testing.T) {
	opts, dir := testOptions(t)
	path := sampleLog(t, dir)

	var out bytes.Buffer
	q := QueryOptions{Search: "OR(INFO,WARN)", Sort: "date", Reverse: true, Limit: 2, Format: "json"}
	if err := Query(context.Background(), opts, path, q, &out); err != nil {
		t.Fatalf("Query error: %v", err)
	}

	var records []report.Record
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	var ids []int
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if fmt.Sprint(ids) != "[0 2]" {
		t.Fatalf("ids = %v, want [0 2]", ids)
	}
}

func TestQueryFullText(t *testing.T) {
	opts, dir := testOptions(t)
	path := sampleLog(t, dir)

	var out bytes.Buffer
	if err := Query(context.Background(), opts, path, QueryOptions{Search: "disk", Full: true}, &out); err != nil {
		t.Fatalf("Query error: %v", err)
	}
	want := "2016-06-23 10:00:01 ERROR disk full\n    at writer.flush\n"
	if out.String() != want {
		t.Fatalf("Query output = %q, want %q", out.String(), want)
	}
}

func TestQueryRejectsBadArguments(t *testing.T) {
	opts, dir := testOptions(t)
	path := sampleLog(t, dir)

	err := Query(context.Background(), opts, path, QueryOptions{Sort: "Level"}, &bytes.Buffer{})
	if !errors.Is(err, sorting.ErrInvalidMode) {
		t.Fatalf("bad sort error = %v, want ErrInvalidMode", err)
	}

	err = Query(context.Background(), opts, path, QueryOptions{Format: "xml"}, &bytes.Buffer{})
	if !errors.Is(err, report.ErrUnknownFormat) {
		t.Fatalf("bad format error = %v, want ErrUnknownFormat", err)
	}

	err = Query(context.Background(), opts, filepath.Join(dir, "missing.log"), QueryOptions{}, &bytes.Buffer{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestQueryCancelledContext(t *testing.T) {
	opts, dir := testOptions(t)
	path := sampleLog(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Query(ctx, opts, path, QueryOptions{}, &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Query error = %v, want context.Canceled", err)
	}
}

func TestTypesAcrossFiles(t *testing.T) {
	opts, dir := testOptions(t)
	first := writeLog(t, dir, "a.log",
		"2016-06-23 10:00:00 WARN one",
		"2016-06-23 10:00:01 INFO two",
	)
	second := writeLog(t, dir, "b.log",
		"2016-06-23 10:00:02 ERROR three",
		"2016-06-23 10:00:03 INFO four",
	)

	var out bytes.Buffer
	if err := Types(context.Background(), opts, []string{first, second}, &out); err != nil {
		t.Fatalf("Types error: %v", err)
	}
	if got, want := out.String(), "WARN\nINFO\nERROR\n"; got != want {
		t.Fatalf("Types output = %q, want %q", got, want)
	}
}

func TestTypesPartialRead(t *testing.T) {
	opts, dir := testOptions(t)
	cfg := "max_line_bytes = 64\n\n[logging]\noutput = \"none\"\n"
	if err := os.WriteFile(opts.ConfigPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	path := writeLog(t, dir, "long.log",
		"2016-06-23 10:00:00 INFO short",
		"2016-06-23 10:00:01 WARN "+strings.Repeat("x", 200),
	)

	var out bytes.Buffer
	err := Types(context.Background(), opts, []string{path}, &out)
	if !errors.Is(err, workspace.ErrPartialRead) {
		t.Fatalf("Types error = %v, want ErrPartialRead", err)
	}
	if got := out.String(); got != "INFO\n" {
		t.Fatalf("Types output = %q, want %q", got, "INFO\n")
	}
}
