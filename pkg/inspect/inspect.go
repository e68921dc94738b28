// Package inspect checks reflection files for content that discovery would
// skip or resolve through a fallback.
package inspect

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ccollicutt/devjournal/pkg/discovery"
	"github.com/ccollicutt/devjournal/pkg/parser"
	"github.com/ccollicutt/devjournal/pkg/store"
	"github.com/ccollicutt/devjournal/pkg/timezone"
)

// Kind classifies a problem.
type Kind string

const (
	// KindInvalidTimestamp is a header with out-of-range clock fields. The
	// whole file is skipped by discovery.
	KindInvalidTimestamp Kind = "invalid_timestamp"

	// KindUnknownZone is a header whose abbreviation is not in the timezone
	// table and goes through the fallback parse.
	KindUnknownZone Kind = "unknown_zone"

	// KindMalformedHeader is a line that looks like a header but does not
	// match the header format, so it is read as body text.
	KindMalformedHeader Kind = "malformed_header"

	// KindOrphanLine is text before the first header, which belongs to no
	// reflection.
	KindOrphanLine Kind = "orphan_line"

	// KindUnreadable is a file that exists but cannot be read.
	KindUnreadable Kind = "unreadable"
)

// Severity of a problem.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Problem is one finding in a reflection file.
type Problem struct {
	Line     int      `json:"line,omitempty"`
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// FileReport is the result of checking one reflection file.
type FileReport struct {
	Path     string    `json:"path"`
	Date     time.Time `json:"date"`
	Headers  int       `json:"headers"`
	Problems []Problem `json:"problems,omitempty"`
}

// Errors counts the error-severity problems.
func (f *FileReport) Errors() int {
	n := 0
	for _, p := range f.Problems {
		if p.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Result is the outcome of checking a range of days.
type Result struct {
	Files []FileReport `json:"files"`

	// DaysChecked is the number of calendar days looked at, including days
	// without a reflection file.
	DaysChecked int `json:"days_checked"`
}

// Problems returns the total number of problems across all files.
func (r *Result) Problems() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Problems)
	}
	return n
}

// Headers returns the total number of reflection headers.
func (r *Result) Headers() int {
	n := 0
	for _, f := range r.Files {
		n += f.Headers
	}
	return n
}

// Inspector checks the reflection files of a journal.
type Inspector struct {
	store    discovery.Store
	location *time.Location
}

// New creates an Inspector. Days are computed in loc.
func New(s discovery.Store, loc *time.Location) *Inspector {
	if loc == nil {
		loc = time.Local
	}
	return &Inspector{store: s, location: loc}
}

// CheckDays checks the reflection files of the days days ending on the
// calendar day of end. Days without a file are counted but not reported.
func (i *Inspector) CheckDays(ctx context.Context, end time.Time, days int) (*Result, error) {
	if days < 1 {
		days = 1
	}

	y, m, d := end.In(i.location).Date()
	last := time.Date(y, m, d, 0, 0, 0, 0, i.location)

	result := &Result{}
	for n := days - 1; n >= 0; n-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := last.AddDate(0, 0, -n)
		result.DaysChecked++

		path := i.store.Path(store.KindReflections, date)
		if !i.store.Exists(path) {
			continue
		}
		result.Files = append(result.Files, i.CheckFile(path, date))
	}
	return result, nil
}

// CheckPaths checks the given reflection files, taking each file's date from
// its name. Paths that do not exist are ignored.
func (i *Inspector) CheckPaths(ctx context.Context, paths []string) (*Result, error) {
	result := &Result{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !i.store.Exists(path) {
			continue
		}
		result.DaysChecked++

		date, err := store.DateFromPath(path, i.location)
		if err != nil {
			result.Files = append(result.Files, FileReport{
				Path: path,
				Problems: []Problem{{
					Kind:     KindUnreadable,
					Severity: SeverityError,
					Message:  err.Error(),
				}},
			})
			continue
		}
		result.Files = append(result.Files, i.CheckFile(path, date))
	}
	return result, nil
}

// CheckFile checks a single reflection file recorded on date.
func (i *Inspector) CheckFile(path string, date time.Time) FileReport {
	content, err := i.store.Read(path)
	if err != nil {
		return FileReport{
			Path: path,
			Date: date,
			Problems: []Problem{{
				Kind:     KindUnreadable,
				Severity: SeverityError,
				Message:  err.Error(),
			}},
		}
	}

	report := CheckContent(content, date)
	report.Path = path
	return report
}

// CheckContent checks the content of a reflection file recorded on date.
func CheckContent(content string, date time.Time) FileReport {
	report := FileReport{Date: date}
	seenHeader := false

	for n, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r")
		lineNum := n + 1

		if label, ok := parser.HeaderLabel(line); ok {
			seenHeader = true
			report.Headers++
			report.Problems = append(report.Problems, checkHeader(label, date, lineNum)...)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || parser.IsSeparator(line) {
			continue
		}

		if strings.HasPrefix(line, "## ") || strings.HasPrefix(trimmed, "## ") {
			report.Problems = append(report.Problems, Problem{
				Line:     lineNum,
				Kind:     KindMalformedHeader,
				Severity: SeverityWarning,
				Message:  "looks like a header but is not \"## H:MM:SS AM|PM ZONE\"; read as body text",
			})
			continue
		}

		if !seenHeader {
			report.Problems = append(report.Problems, Problem{
				Line:     lineNum,
				Kind:     KindOrphanLine,
				Severity: SeverityWarning,
				Message:  "text before the first header belongs to no reflection",
			})
		}
	}

	return report
}

func checkHeader(label string, date time.Time, lineNum int) []Problem {
	reading, err := parser.SplitLabel(label)
	if err != nil {
		var invalid *parser.InvalidTimestampError
		msg := err.Error()
		if errors.As(err, &invalid) {
			msg = invalid.Error() + "; discovery skips this file"
		}
		return []Problem{{
			Line:     lineNum,
			Kind:     KindInvalidTimestamp,
			Severity: SeverityError,
			Message:  msg,
		}}
	}

	if _, ok := timezone.Lookup(reading.Abbr); ok {
		return nil
	}

	msg := "zone " + reading.Abbr + " is not in the timezone table"
	if ts, err := parser.ParseTimestamp(date, label); err == nil {
		msg += "; resolved by fallback to " + ts.Format(time.RFC3339)
	}
	return []Problem{{
		Line:     lineNum,
		Kind:     KindUnknownZone,
		Severity: SeverityWarning,
		Message:  msg,
	}}
}
