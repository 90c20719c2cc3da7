package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerBracketsRunsAndAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Printf("updated priors: %s", "priors.csv")
	if err := log.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "maudup.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"run started", "updated priors: priors.csv", "run finished"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log %q missing %q", data, want)
		}
	}

	// A second run appends to the same file rather than truncating it.
	again, err := New(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if err := again.Close(); err != nil {
		t.Fatalf("close again: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "maudup.log"))
	if err != nil {
		t.Fatalf("reread log: %v", err)
	}
	if strings.Count(string(data), "run started") != 2 {
		t.Fatalf("expected two run markers in %q", data)
	}
}

func TestNilLoggerDiscards(t *testing.T) {
	var log *Logger
	log.Printf("into the void")
	if err := log.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
