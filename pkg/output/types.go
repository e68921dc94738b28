// Package output renders journal entries and reflection discovery reports.
package output

import (
	"time"

	"github.com/ccollicutt/devjournal/pkg/parser"
)

// Report is the result of one discovery run.
type Report struct {
	// Window is the inclusive range that was searched.
	Window parser.Window `json:"window"`

	// Reflections are the reflections found, oldest first.
	Reflections []parser.Reflection `json:"reflections"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about a discovery run.
type Metadata struct {
	// JournalDir is the journal root that was searched.
	JournalDir string `json:"journal_dir,omitempty"`

	// Location is the timezone calendar days were computed in.
	Location string `json:"location,omitempty"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport creates a Report. A nil reflection list is reported as empty.
func NewReport(w parser.Window, reflections []parser.Reflection, meta Metadata) *Report {
	if reflections == nil {
		reflections = []parser.Reflection{}
	}
	return &Report{Window: w, Reflections: reflections, Metadata: meta}
}

// HasReflections returns true if any reflections were found.
func (r *Report) HasReflections() bool {
	return len(r.Reflections) > 0
}
