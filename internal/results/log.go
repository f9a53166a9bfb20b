package results

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// TimeLayout is the timestamp format of a results line.
const TimeLayout = "2006-01-02 15:04:05"

const scoreSep = " - Score: "

// Entry is one completed test session.
type Entry struct {
	At      time.Time
	Correct int
	Total   int
}

// String renders the line written to the log, without the trailing newline.
func (e Entry) String() string {
	return fmt.Sprintf("%s%s%d/%d", e.At.Format(TimeLayout), scoreSep, e.Correct, e.Total)
}

// ParseEntry reads a line produced by Entry.String.
func ParseEntry(line string) (Entry, error) {
	stamp, score, ok := strings.Cut(strings.TrimSpace(line), scoreSep)
	if !ok {
		return Entry{}, fmt.Errorf("parse results line %q: missing score", line)
	}
	at, err := time.ParseInLocation(TimeLayout, stamp, time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("parse results line %q: %w", line, err)
	}
	var e Entry
	if _, err := fmt.Sscanf(score, "%d/%d", &e.Correct, &e.Total); err != nil {
		return Entry{}, fmt.Errorf("parse results line %q: %w", line, err)
	}
	e.At = at
	return e, nil
}

// Log is the append-only results file.
type Log struct {
	path string
}

// NewLog returns a log appending to path. The file is created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file.
func (l *Log) Path() string {
	return l.path
}

// Append writes one line for e, creating the file if needed.
func (l *Log) Append(e Entry) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results log: %w", err)
	}
	if _, err := fmt.Fprintln(f, e.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append results log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close results log: %w", err)
	}
	return nil
}

// Entries returns every parseable line in file order. Lines that do not
// parse (for example bare "c/t" scores from older logs) are skipped.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open results log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := ParseEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results log: %w", err)
	}
	return entries, nil
}
