package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ccollicutt/devjournal/pkg/timezone"
)

// HeaderPattern matches a reflection header and captures its time label.
var HeaderPattern = regexp.MustCompile(`^## (\d{1,2}:\d{2}:\d{2} (?:AM|PM) [A-Z]{3,4})$`)

// SeparatorRune is the character separator lines are made of.
const SeparatorRune = '═'

// Separator is the separator line written after each reflection block.
var Separator = strings.Repeat(string(SeparatorRune), 39)

// IsSeparator reports whether a line consists only of separator characters.
// Indented rules are body text.
func IsSeparator(line string) bool {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return false
	}
	for _, r := range line {
		if r != SeparatorRune {
			return false
		}
	}
	return true
}

// HeaderLabel returns the time label of a header line.
func HeaderLabel(line string) (string, bool) {
	m := HeaderPattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// Extract parses the content of the reflection file for fileDate and returns
// the reflections whose timestamps fall inside w, in file order.
func Extract(content string, fileDate time.Time, w Window) ([]Reflection, error) {
	if content == "" {
		return nil, nil
	}
	return ExtractLines(strings.Split(content, "\n"), fileDate, w)
}

// ExtractLines is Extract over pre-split lines.
//
// Each header closes the open reflection and opens a new one when its
// timestamp is inside the window; otherwise lines up to the next header are
// dropped. Empty lines and separators never become body lines and never
// close a reflection.
func ExtractLines(lines []string, fileDate time.Time, w Window) ([]Reflection, error) {
	var (
		out     []Reflection
		current *Reflection
	)

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")

		if label, ok := HeaderLabel(line); ok {
			if current != nil {
				out = append(out, *current)
				current = nil
			}

			ts, err := ParseTimestamp(fileDate, label)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if w.Contains(ts) {
				current = &Reflection{
					Timestamp: ts,
					Label:     label,
					Body:      []string{},
					LineNum:   i + 1,
				}
			}
			continue
		}

		if current == nil || strings.TrimSpace(line) == "" || IsSeparator(line) {
			continue
		}
		current.Body = append(current.Body, line)
	}

	if current != nil {
		out = append(out, *current)
	}
	return out, nil
}

// BodyEscape is prefixed to body lines that would otherwise read back as a
// header or a separator. It is a markdown escape, so the line still renders as
// written.
const BodyEscape = `\`

// RenderReflection renders one reflection block in the reflection file
// format, with at's local time label as the header.
func RenderReflection(at time.Time, body string) string {
	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(Label(at))
	sb.WriteString("\n\n")
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(body, "\r\n", "\n"), "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		if _, ok := HeaderLabel(line); ok || IsSeparator(line) {
			sb.WriteString(BodyEscape)
		}
		sb.WriteString(line)
	}
	sb.WriteString("\n\n")
	sb.WriteString(Separator)
	sb.WriteString("\n\n")
	return sb.String()
}

// LabelTime returns at in the zone its header label is written in: at's own
// zone when its abbreviation is in the timezone table with the same offset,
// otherwise UTC. Numeric abbreviations (like "+0530") and abbreviations the
// table pins elsewhere (Dublin's summer "IST") therefore fall back to UTC, so a
// label always parses back to the same instant. Reflection files are named by
// the date of the returned time.
func LabelTime(at time.Time) time.Time {
	abbr, offset := at.Zone()
	if loc, ok := timezone.Lookup(abbr); ok {
		if _, tableOffset := at.In(loc).Zone(); tableOffset == offset {
			return at
		}
	}
	return at.UTC()
}

// Label returns the header label for at.
func Label(at time.Time) string {
	return LabelTime(at).Format(LabelLayout)
}
