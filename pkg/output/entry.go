package output

import (
	"strings"
	"time"

	"github.com/ccollicutt/devjournal/pkg/parser"
)

// EntrySeparator closes every journal entry.
var EntrySeparator = strings.Repeat("─", 60)

// EmptySection is written under a narrative heading with no content.
const EmptySection = "_None recorded._"

// entryTimeLayout is the time-only header layout; the date is implied by the
// file the entry is appended to.
const entryTimeLayout = "3:04:05 PM"

// Narrative holds the four prose sections of an entry.
type Narrative struct {
	Summary            string `json:"summary"`
	Dialogue           string `json:"dialogue"`
	TechnicalDecisions string `json:"technical_decisions"`
	Details            string `json:"details"`
}

// Entry is everything needed to render one journal entry.
type Entry struct {
	// Time is the event time.
	Time time.Time

	// ID identifies the event, usually a short commit hash.
	ID string

	// Label is a one-line description of the event.
	Label string

	Narrative   Narrative
	Reflections []parser.Reflection
}

// EntryFormatter renders journal entries as markdown.
type EntryFormatter struct {
	location *time.Location
}

// NewEntryFormatter creates a formatter that prints header times in loc.
// A nil loc uses the event time's own location.
func NewEntryFormatter(loc *time.Location) *EntryFormatter {
	return &EntryFormatter{location: loc}
}

// Format renders e. The output depends only on e and the formatter's location.
func (f *EntryFormatter) Format(e Entry) string {
	at := e.Time
	if f != nil && f.location != nil {
		at = at.In(f.location)
	}

	var sb strings.Builder
	sb.WriteString("### ")
	sb.WriteString(at.Format(entryTimeLayout))
	sb.WriteString(" — Commit ")
	sb.WriteString(e.ID)
	sb.WriteString("\n\n")

	if label := strings.TrimSpace(e.Label); label != "" {
		sb.WriteString("**")
		sb.WriteString(label)
		sb.WriteString("**\n\n")
	}

	writeSection(&sb, "Summary", e.Narrative.Summary)
	writeSection(&sb, "Dialogue", e.Narrative.Dialogue)
	writeSection(&sb, "Technical Decisions", e.Narrative.TechnicalDecisions)
	writeSection(&sb, "Commit Details", e.Narrative.Details)

	if len(e.Reflections) > 0 {
		sb.WriteString("#### Reflections\n\n")
		for _, r := range e.Reflections {
			sb.WriteString("##### ")
			sb.WriteString(r.Label)
			sb.WriteString("\n\n")
			if len(r.Body) > 0 {
				sb.WriteString(strings.Join(r.Body, "\n"))
				sb.WriteString("\n\n")
			}
		}
	}

	sb.WriteString(EntrySeparator)
	sb.WriteString("\n")
	return sb.String()
}

func writeSection(sb *strings.Builder, title, body string) {
	sb.WriteString("#### ")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	body = strings.TrimSpace(body)
	if body == "" {
		body = EmptySection
	}
	sb.WriteString(body)
	sb.WriteString("\n\n")
}
