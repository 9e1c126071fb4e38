package logfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/logparse/internal/logentry"
	"github.com/five82/logparse/internal/registry"
)

func newTestReconstructor(reg *registry.Registry, opts ...Option) *Reconstructor {
	return New(reg, log.NewLogger(), opts...)
}

func texts(entries []*logentry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text()
	}
	return out
}

func TestIsBoundary(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"2016-06-23 10:00:00 INFO x", true},
		{"2016-06-23", true},
		{"2016/06/23 10:00", true},
		{"23.06.2016 x", true},
		{"1-2-345678 rest", true},
		{"2016-06-2", false},
		{"", false},
		{"    at com.example", false},
		{"2016-06-23T", true},
		{"20160623 10", false},
		{"INFO 2016-06-23", false},
		{"2016-06-aa", false},
		{"2016 06 23 x", true},
		{"2016_06_23", true},
		{"10:00:00 x", false},
		{"1.2.3 build", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, IsBoundary(tt.line))
		})
	}
}

func TestLinesExample(t *testing.T) {
	reg := registry.New()
	r := newTestReconstructor(reg)

	entries := r.Lines([]string{
		"2016-06-23 10:00:00 INFO started (ok) [x]",
		"more text",
		"2016-06-23 10:00:05 ERROR failed",
	})

	require.Len(t, entries, 2)
	first := entries[0]
	assert.Equal(t, "20160623100000", first.DateKey())
	assert.Equal(t, "INFO", first.TypeTag())
	assert.Equal(t, "2016-06-23 10:00:00 INFO started (ok)\n [x]\n\nmore text", first.Text())

	second := entries[1]
	assert.Equal(t, "ERROR", second.TypeTag())
	assert.Equal(t, "2016-06-23 10:00:05 ERROR failed", second.Text())
	assert.Equal(t, 1, second.ID())

	assert.Equal(t, []string{"INFO", "ERROR"}, reg.Types())
}

func TestLinesBoundaryRules(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "no boundaries",
			lines: []string{"just", "some", "text"},
			want:  []string{},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  []string{},
		},
		{
			name:  "preamble dropped",
			lines: []string{"banner", "2016-06-23 10:00:00 INFO a", "tail"},
			want:  []string{"2016-06-23 10:00:00 INFO a\ntail"},
		},
		{
			name:  "consecutive headers",
			lines: []string{"2016-06-23 10:00:00 INFO a", "2016-06-23 10:00:01 INFO b"},
			want:  []string{"2016-06-23 10:00:00 INFO a", "2016-06-23 10:00:01 INFO b"},
		},
		{
			name:  "short lines are continuations",
			lines: []string{"2016-06-23 10:00:00 INFO a", "2016-06", "1-2-3"},
			want:  []string{"2016-06-23 10:00:00 INFO a\n2016-06\n1-2-3"},
		},
		{
			name:  "blank continuation kept",
			lines: []string{"2016-06-23 10:00:00 INFO a", "", "b"},
			want:  []string{"2016-06-23 10:00:00 INFO a\n\nb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReconstructor(registry.New())
			assert.Equal(t, tt.want, texts(r.Lines(tt.lines)))
		})
	}
}

func TestLinesCountMatchesBoundaryRuns(t *testing.T) {
	lines := []string{"noise"}
	boundaries := 0
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			lines = append(lines, fmt.Sprintf("2016-06-%02d 10:00:00 INFO entry %d", i%28+1, i))
			boundaries++
		} else {
			lines = append(lines, fmt.Sprintf("    continuation %d", i))
		}
	}

	r := newTestReconstructor(registry.New())
	entries := r.Lines(lines)
	assert.Len(t, entries, boundaries)
	for i, e := range entries {
		assert.Equal(t, i, e.ID())
		assert.True(t, IsBoundary(e.Text()))
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	content := "2016-06-23 10:00:00 INFO one\r\n  detail\r\n2016-06-23 10:00:01 WARN two\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := newTestReconstructor(registry.New())
	entries, err := r.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2016-06-23 10:00:00 INFO one\n  detail",
		"2016-06-23 10:00:01 WARN two",
	}, texts(entries))
}

func TestReadFileMissing(t *testing.T) {
	r := newTestReconstructor(registry.New())
	entries, err := r.ReadFile(filepath.Join(t.TempDir(), "missing.log"))

	assert.Nil(t, entries)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrPartialRead))
	assert.Contains(t, err.Error(), "open log")
}

func TestReadKeepsEntriesBeforeLongLine(t *testing.T) {
	input := strings.Join([]string{
		"2016-06-23 10:00:00 INFO one",
		"2016-06-23 10:00:01 INFO two",
		"2016-06-23 10:00:02 INFO " + strings.Repeat("x", 256),
		"2016-06-23 10:00:03 INFO four",
	}, "\n")

	r := newTestReconstructor(registry.New(), WithMaxLineBytes(128))
	entries, err := r.Read(strings.NewReader(input))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPartialRead))
	assert.Equal(t, []string{
		"2016-06-23 10:00:00 INFO one",
		"2016-06-23 10:00:01 INFO two",
	}, texts(entries))
}

type failingReader struct {
	data io.Reader
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.data.Read(p)
	if err == io.EOF {
		return n, f.err
	}
	return n, err
}

func TestReadMidStreamFailure(t *testing.T) {
	boom := errors.New("disk gone")
	src := &failingReader{
		data: strings.NewReader("2016-06-23 10:00:00 INFO one\n2016-06-23 10:00:01 INFO two\n"),
		err:  boom,
	}

	r := newTestReconstructor(registry.New())
	entries, err := r.Read(src)

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.True(t, errors.Is(err, ErrPartialRead))
	assert.Len(t, entries, 2)
}

func TestReadFailsBeforeFirstLine(t *testing.T) {
	boom := errors.New("disk gone")
	src := &failingReader{data: strings.NewReader(""), err: boom}

	r := newTestReconstructor(registry.New())
	entries, err := r.Read(src)

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.False(t, errors.Is(err, ErrPartialRead))
	assert.Nil(t, entries)
}

func TestReadFileDirectory(t *testing.T) {
	r := newTestReconstructor(registry.New())
	entries, err := r.ReadFile(t.TempDir())

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPartialRead))
	assert.Nil(t, entries)
}

func TestWithMaxLineBytesIgnoresNonPositive(t *testing.T) {
	r := New(nil, nil, WithMaxLineBytes(0))
	assert.Equal(t, DefaultMaxLineBytes, r.maxLineBytes)
}
