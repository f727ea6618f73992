package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse_ZerologLine(t *testing.T) {
	line := `{"level":"warn","component":"bookapi","url":"http://localhost:5000/book/1","request_id":"abc","status":404,"error":"Book not found","time":"2026-10-18T09:30:00Z","message":"api error response"}`

	e := Parse(line)
	if e.Level != zerolog.WarnLevel {
		t.Fatalf("Level = %v, want warn", e.Level)
	}
	if e.Component != "bookapi" || e.RequestID != "abc" || e.Error != "Book not found" {
		t.Fatalf("entry = %#v", e)
	}
	if e.Message != "api error response" {
		t.Fatalf("Message = %q", e.Message)
	}
	if !e.Time.Equal(time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("Time = %v", e.Time)
	}
	if got := e.FieldKeys(); !reflect.DeepEqual(got, []string{"status", "url"}) {
		t.Fatalf("FieldKeys = %v", got)
	}
	if e.Fields["status"] != "404" {
		t.Fatalf("status field = %q, want 404", e.Fields["status"])
	}
}

func TestParse_PlainTextLine(t *testing.T) {
	e := Parse("  panic: something odd ")
	if e.Level != zerolog.NoLevel || e.Message != "panic: something odd" {
		t.Fatalf("entry = %#v", e)
	}
	if !e.AtLeast(zerolog.ErrorLevel) {
		t.Fatalf("unparsed lines should always pass the level filter")
	}
}

func TestReadEntriesAndFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookrecs.log")
	content := strings.Join([]string{
		`{"level":"debug","message":"api request"}`,
		``,
		`{"level":"info","message":"starting"}`,
		`{"level":"error","message":"boom"}`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := ReadEntries(path, 0)
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3 (blank line skipped)", len(entries))
	}

	filtered := Filter(entries, zerolog.InfoLevel)
	if len(filtered) != 2 || filtered[0].Message != "starting" {
		t.Fatalf("Filter = %#v", filtered)
	}
}
