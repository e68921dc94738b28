// Package timezone resolves timezone abbreviations to IANA zones and converts
// wall-clock readings in those zones to UTC.
package timezone

import (
	"strings"
	"time"

	// Embedded zone data so resolution does not depend on the host zoneinfo.
	_ "time/tzdata"
)

// Table maps upper-case timezone abbreviations to IANA zone identifiers.
//
// Abbreviations are not globally unique. Where one is ambiguous the table pins
// a single zone: IST is India, CST is US Central, BST is British Summer Time and
// AST is Atlantic.
var Table = map[string]string{
	// North America
	"HST":  "Pacific/Honolulu",
	"AKST": "America/Anchorage",
	"AKDT": "America/Anchorage",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"AST":  "America/Halifax",
	"ADT":  "America/Halifax",
	"NST":  "America/St_Johns",
	"NDT":  "America/St_Johns",

	// Universal
	"UTC": "UTC",
	"GMT": "Etc/GMT",

	// Europe
	"WET":  "Europe/Lisbon",
	"WEST": "Europe/Lisbon",
	"BST":  "Europe/London",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"EET":  "Europe/Athens",
	"EEST": "Europe/Athens",
	"MSK":  "Europe/Moscow",

	// Asia
	"IST": "Asia/Kolkata",
	"PKT": "Asia/Karachi",
	"ICT": "Asia/Bangkok",
	"WIB": "Asia/Jakarta",
	"SGT": "Asia/Singapore",
	"HKT": "Asia/Hong_Kong",
	"PHT": "Asia/Manila",
	"KST": "Asia/Seoul",
	"JST": "Asia/Tokyo",

	// Oceania
	"AWST": "Australia/Perth",
	"ACST": "Australia/Adelaide",
	"ACDT": "Australia/Adelaide",
	"AEST": "Australia/Sydney",
	"AEDT": "Australia/Sydney",
	"NZST": "Pacific/Auckland",
	"NZDT": "Pacific/Auckland",
}

// ZoneName returns the IANA zone for an abbreviation. The lookup is
// case-insensitive. A missing abbreviation is reported with ok=false.
func ZoneName(abbr string) (string, bool) {
	name, ok := Table[strings.ToUpper(strings.TrimSpace(abbr))]
	return name, ok
}

// Lookup returns the location for an abbreviation, or ok=false when the
// abbreviation is not in the table or its zone cannot be loaded.
func Lookup(abbr string) (*time.Location, bool) {
	name, ok := ZoneName(abbr)
	if !ok {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// Naive builds the naive instant for a date and clock reading: the wall-clock
// fields reinterpreted as UTC.
func Naive(date time.Time, hour, minute, second int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, second, 0, time.UTC)
}

// OffsetAt returns the offset of loc from UTC at the given naive instant.
//
// The naive instant is rendered into loc's calendar and clock fields, those
// fields are read back as UTC, and the difference between the two naive
// instants is the offset in effect on that date.
func OffsetAt(naive time.Time, loc *time.Location) time.Duration {
	naive = naive.UTC()
	local := naive.In(loc)
	shifted := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	return shifted.Sub(naive)
}

// Resolve converts a naive wall-clock reading in loc to the true UTC instant.
//
// The first offset is taken at the naive instant, which can sit on the wrong
// side of a DST transition. The offset is then re-read at the corrected
// instant so readings after a transition use the post-transition offset.
func Resolve(naive time.Time, loc *time.Location) time.Time {
	naive = naive.UTC()
	offset := OffsetAt(naive, loc)
	guess := naive.Add(-offset)
	if corrected := OffsetAt(guess, loc); corrected != offset {
		return naive.Add(-corrected)
	}
	return guess
}

// ResolveNamed is Resolve for a reading labelled with abbr. During the
// repeated hour after clocks fall back the same wall clock occurs twice; the
// occurrence whose zone name is abbr wins. When neither occurrence carries abbr
// the result is Resolve's.
func ResolveNamed(naive time.Time, loc *time.Location, abbr string) time.Time {
	resolved := Resolve(naive, loc)
	if zoneName(resolved, loc) == abbr {
		return resolved
	}

	naive = naive.UTC()
	for _, near := range []time.Time{resolved.Add(time.Hour), resolved.Add(-time.Hour)} {
		candidate := naive.Add(-OffsetAt(near, loc))
		if zoneName(candidate, loc) == abbr && sameWallClock(candidate, naive, loc) {
			return candidate
		}
	}
	return resolved
}

func zoneName(t time.Time, loc *time.Location) string {
	name, _ := t.In(loc).Zone()
	return strings.ToUpper(name)
}

// sameWallClock reports whether t reads as the naive clock in loc.
func sameWallClock(t, naive time.Time, loc *time.Location) bool {
	local := t.In(loc)
	return local.Hour() == naive.Hour() && local.Minute() == naive.Minute() &&
		local.Second() == naive.Second() && local.Day() == naive.Day()
}
