package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileName = "maudup.log"

// Logger appends timestamped lines to <dir>/maudup.log so a batch migration
// can be audited after the terminal scrollback is gone. Each process run is
// bracketed by start/finish marker lines, since one log file accumulates
// many runs. All methods are nil-safe: a nil logger silently discards.
type Logger struct {
	file *os.File
}

// New creates (or reuses) the log file inside dir and marks the run start.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	l := &Logger{file: f}
	l.write("--- run started ---")
	return l, nil
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	l.write(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Close marks the run end and releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.write("--- run finished ---")
	return l.file.Close()
}

func (l *Logger) write(line string) {
	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
}
