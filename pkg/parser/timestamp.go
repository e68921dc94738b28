package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ccollicutt/devjournal/pkg/timezone"
)

// LabelLayout is the Go layout of a reflection header's time label.
const LabelLayout = "3:04:05 PM MST"

// nativeLayout is used for the fallback parse of "<date> <label>".
const nativeLayout = "2006-01-02 " + LabelLayout

// InvalidTimestampError reports a header label whose numeric components are
// out of range or whose shape cannot be split.
type InvalidTimestampError struct {
	Label  string
	Reason string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %s", e.Label, e.Reason)
}

// ClockReading is a label split into its components.
type ClockReading struct {
	Hour   int // 0-23
	Minute int
	Second int
	Abbr   string // upper-cased
}

// SplitLabel splits "H:MM:SS AM|PM ZZZ" into a 24-hour clock reading.
func SplitLabel(label string) (ClockReading, error) {
	fields := strings.Fields(label)
	if len(fields) != 3 {
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: "expected \"H:MM:SS AM|PM ZONE\""}
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 3 {
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: "expected H:MM:SS"}
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return ClockReading{}, &InvalidTimestampError{Label: label, Reason: fmt.Sprintf("non-numeric component %q", p)}
		}
		nums[i] = n
	}
	hour12, minute, second := nums[0], nums[1], nums[2]

	switch {
	case hour12 < 1 || hour12 > 12:
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: fmt.Sprintf("hour %d not in [1,12]", hour12)}
	case minute < 0 || minute > 59:
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: fmt.Sprintf("minute %d not in [0,59]", minute)}
	case second < 0 || second > 59:
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: fmt.Sprintf("second %d not in [0,59]", second)}
	}

	var hour int
	switch strings.ToUpper(fields[1]) {
	case "AM":
		hour = hour12 % 12
	case "PM":
		hour = hour12%12 + 12
	default:
		return ClockReading{}, &InvalidTimestampError{Label: label, Reason: fmt.Sprintf("expected AM or PM, got %q", fields[1])}
	}

	return ClockReading{
		Hour:   hour,
		Minute: minute,
		Second: second,
		Abbr:   strings.ToUpper(fields[2]),
	}, nil
}

// ParseTimestamp converts a header label recorded on fileDate to a UTC instant.
//
// Known abbreviations resolve through their IANA zone with the offset in
// effect on that date; in a repeated fall-back hour the abbreviation picks the
// occurrence. Unknown abbreviations fall back to Go's native parse of
// "<date> <label>" and, failing that, to the process's local timezone. Only
// out-of-range components produce an error.
func ParseTimestamp(fileDate time.Time, label string) (time.Time, error) {
	reading, err := SplitLabel(label)
	if err != nil {
		return time.Time{}, err
	}

	if loc, ok := timezone.Lookup(reading.Abbr); ok {
		naive := timezone.Naive(fileDate, reading.Hour, reading.Minute, reading.Second)
		return timezone.ResolveNamed(naive, loc, reading.Abbr), nil
	}

	return fallbackTimestamp(fileDate, label, reading), nil
}

func fallbackTimestamp(fileDate time.Time, label string, reading ClockReading) time.Time {
	native := fileDate.Format("2006-01-02") + " " + strings.Join(strings.Fields(label), " ")
	if t, err := time.Parse(nativeLayout, native); err == nil {
		return t.UTC()
	}

	y, m, d := fileDate.Date()
	return time.Date(y, m, d, reading.Hour, reading.Minute, reading.Second, 0, time.Local).UTC()
}
