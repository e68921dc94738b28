package parser

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTimestamp_KnownAbbreviations(t *testing.T) {
	tests := []struct {
		name     string
		fileDate time.Time
		label    string
		want     time.Time
	}{
		{
			name:     "EDT morning",
			fileDate: date(2024, 6, 1),
			label:    "9:00:00 AM EDT",
			want:     time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "EDT evening",
			fileDate: date(2024, 6, 1),
			label:    "9:36:37 PM EDT",
			want:     time.Date(2024, 6, 2, 1, 36, 37, 0, time.UTC),
		},
		{
			name:     "PST late night crosses into next UTC day",
			fileDate: date(2024, 1, 15),
			label:    "11:05:02 PM PST",
			want:     time.Date(2024, 1, 16, 7, 5, 2, 0, time.UTC),
		},
		{
			name:     "JST morning lands on previous UTC day",
			fileDate: date(2024, 6, 1),
			label:    "7:30:00 AM JST",
			want:     time.Date(2024, 5, 31, 22, 30, 0, 0, time.UTC),
		},
		{
			name:     "12 AM is midnight",
			fileDate: date(2024, 6, 1),
			label:    "12:00:00 AM UTC",
			want:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "12 PM is noon",
			fileDate: date(2024, 6, 1),
			label:    "12:15:00 PM UTC",
			want:     time.Date(2024, 6, 1, 12, 15, 0, 0, time.UTC),
		},
		{
			name:     "EST label in summer uses the date's real offset",
			fileDate: date(2024, 6, 1),
			label:    "9:00:00 AM EST",
			want:     time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "four letter abbreviation",
			fileDate: date(2024, 1, 15),
			label:    "10:00:00 AM AEDT",
			want:     time.Date(2024, 1, 14, 23, 0, 0, 0, time.UTC),
		},
		{
			name:     "after spring forward uses the new offset",
			fileDate: date(2024, 3, 10),
			label:    "3:30:00 AM EDT",
			want:     time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC),
		},
		{
			name:     "after fall back uses the new offset",
			fileDate: date(2024, 11, 3),
			label:    "3:00:00 AM EST",
			want:     time.Date(2024, 11, 3, 8, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.fileDate, tt.label)
			if err != nil {
				t.Fatalf("ParseTimestamp() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp() = %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTimestamp() location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestParseTimestamp_RepeatedFallBackHour(t *testing.T) {
	tests := []struct {
		label string
		want  time.Time
	}{
		{"1:30:00 AM EDT", time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC)},
		{"1:30:00 AM EST", time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)},
		{"1:59:59 AM EST", time.Date(2024, 11, 3, 6, 59, 59, 0, time.UTC)},
		{"1:00:00 AM EDT", time.Date(2024, 11, 3, 5, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseTimestamp(date(2024, 11, 3), tt.label)
			if err != nil {
				t.Fatalf("ParseTimestamp() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_UnknownAbbreviationNativeParse(t *testing.T) {
	got, err := ParseTimestamp(date(2024, 6, 1), "9:00:00 AM XYZ")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}

	want, err := time.Parse("2006-01-02 3:04:05 PM MST", "2024-06-01 9:00:00 AM XYZ")
	if err != nil {
		t.Fatalf("time.Parse() error = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

func TestParseTimestamp_UnknownAbbreviationLocalFallback(t *testing.T) {
	// Four letters not ending in T cannot be parsed natively, so the clock
	// is read in the local timezone.
	got, err := ParseTimestamp(date(2024, 6, 1), "9:00:00 AM ABCD")
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}

	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"hour 13", "13:00:00 PM EDT"},
		{"hour 0", "0:00:00 AM EDT"},
		{"minute 60", "9:60:00 AM EDT"},
		{"second 60", "9:00:60 AM EDT"},
		{"missing zone", "9:00:00 AM"},
		{"bad marker", "9:00:00 XM EDT"},
		{"non numeric", "9:aa:00 AM EDT"},
		{"missing seconds", "9:00 AM EDT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(date(2024, 6, 1), tt.label)
			if err == nil {
				t.Fatal("ParseTimestamp() expected error")
			}
			var invalid *InvalidTimestampError
			if !errors.As(err, &invalid) {
				t.Errorf("ParseTimestamp() error = %T, want *InvalidTimestampError", err)
			}
		})
	}
}

func TestSplitLabel(t *testing.T) {
	got, err := SplitLabel("12:05:09 am pdt")
	if err != nil {
		t.Fatalf("SplitLabel() error = %v", err)
	}
	want := ClockReading{Hour: 0, Minute: 5, Second: 9, Abbr: "PDT"}
	if got != want {
		t.Errorf("SplitLabel() = %+v, want %+v", got, want)
	}
}
