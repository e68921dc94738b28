// Package parser reads reflection files: timestamped blocks of free text
// recorded by the user between commits.
package parser

import (
	"fmt"
	"time"
)

// Reflection is a single reflection block extracted from a reflection file.
type Reflection struct {
	// Timestamp is the absolute instant of the reflection, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// Label is the local time label exactly as written in the header,
	// e.g. "9:36:37 PM EDT".
	Label string `json:"label"`

	// Body holds the non-empty text lines of the block, in file order.
	Body []string `json:"body"`

	// Source is the file the reflection was read from.
	Source string `json:"source,omitempty"`

	// LineNum is the 1-based line number of the header.
	LineNum int `json:"line"`
}

// Window is an inclusive time range [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow creates a window, rejecting one whose start is after its end.
func NewWindow(start, end time.Time) (Window, error) {
	if start.After(end) {
		return Window{}, fmt.Errorf("window start %s is after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Window{Start: start, End: end}, nil
}

// Contains reports whether t lies within the window. Both ends are inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
