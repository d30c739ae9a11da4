package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSinkWritesAndFiltersByLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	sink, err := New(path, "Warning")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	sink.Infof("this should be filtered out")
	sink.Errorf("boom: %s", "disk full")
	sink.Close()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	text := string(contents)
	if strings.Contains(text, "filtered out") {
		t.Error("Info-level line should have been filtered at Warning threshold")
	}
	if !strings.Contains(text, "Error: boom: disk full") {
		t.Errorf("expected an Error line with the formatted message, got: %s", text)
	}
}

func TestCloseDrainsQueueBeforeReturning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	sink, err := New(path, "Debug")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i := 0; i < 50; i++ {
		sink.Infof("line %d", i)
	}
	sink.Close()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if got := strings.Count(string(contents), "\n"); got != 50 {
		t.Errorf("expected 50 lines flushed by Close, got %d", got)
	}
}

func TestLevelStringRoundTrip(t *testing.T) {
	for _, l := range []Level{Debug, Info, Warning, Error} {
		if parseLevel(l.String()) != l {
			t.Errorf("parseLevel(%q) did not round-trip", l.String())
		}
	}
}
