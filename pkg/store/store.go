// Package store maps journal entries and reflections onto dated files under a
// journal root directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind selects which family of files a path belongs to.
type Kind string

const (
	// KindEntries holds the daily journal files entries are appended to.
	KindEntries Kind = "entries"

	// KindReflections holds the per-day reflection files.
	KindReflections Kind = "reflections"
)

// dateLayout is the date prefix used in every file name.
const dateLayout = "2006-01-02"

// layout describes where files of one kind live.
type layout struct {
	dir    string
	suffix string
}

var layouts = map[Kind]layout{
	KindEntries:     {dir: "daily", suffix: "-journal.md"},
	KindReflections: {dir: "reflections", suffix: "-reflections.md"},
}

// FileUnavailableError reports a file that exists in the layout but could not
// be read: missing, unreadable or not valid UTF-8.
type FileUnavailableError struct {
	Path string
	Err  error
}

func (e *FileUnavailableError) Error() string {
	return fmt.Sprintf("file unavailable %s: %v", e.Path, e.Err)
}

func (e *FileUnavailableError) Unwrap() error {
	return e.Err
}

// ErrInvalidEncoding is wrapped by FileUnavailableError for non-UTF-8 content.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// FileStore is a journal rooted at a directory on disk.
type FileStore struct {
	Root string
}

// New creates a FileStore rooted at root.
func New(root string) *FileStore {
	return &FileStore{Root: root}
}

// Path returns the deterministic file path for kind on the given date. The
// date is taken in its own location.
func (s *FileStore) Path(kind Kind, date time.Time) string {
	l, ok := layouts[kind]
	if !ok {
		l = layout{dir: string(kind), suffix: ".md"}
	}
	return filepath.Join(s.Root, l.dir, date.Format(dateLayout)+l.suffix)
}

// Pattern returns a glob pattern matching every file of kind.
func (s *FileStore) Pattern(kind Kind) string {
	l, ok := layouts[kind]
	if !ok {
		l = layout{dir: string(kind), suffix: ".md"}
	}
	return filepath.Join(s.Root, l.dir, "*"+l.suffix)
}

// DateFromPath recovers the calendar date encoded in a file name, in loc.
func DateFromPath(path string, loc *time.Location) (time.Time, error) {
	base := filepath.Base(path)
	if len(base) < len(dateLayout) {
		return time.Time{}, fmt.Errorf("no date in file name %q", base)
	}
	d, err := time.ParseInLocation(dateLayout, base[:len(dateLayout)], loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("no date in file name %q: %w", base, err)
	}
	return d, nil
}

// Exists reports whether path exists and is a regular file.
func (s *FileStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the content of path. Every failure is a *FileUnavailableError.
func (s *FileStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the journal layout
	if err != nil {
		return "", &FileUnavailableError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileUnavailableError{Path: path, Err: ErrInvalidEncoding}
	}
	return string(data), nil
}

// Append appends text to path, creating the file and its directory if needed.
func (s *FileStore) Append(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // #nosec G304 -- paths come from the journal layout
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// AppendBlock appends text as a separate block: when the file already has
// content that does not end in a blank line, a newline is written first.
func (s *FileStore) AppendBlock(path, text string) error {
	if s.Exists(path) {
		existing, err := s.Read(path)
		if err == nil && existing != "" && !strings.HasSuffix(existing, "\n\n") {
			if strings.HasSuffix(existing, "\n") {
				text = "\n" + text
			} else {
				text = "\n\n" + text
			}
		}
	}
	return s.Append(path, text)
}
