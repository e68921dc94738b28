package parser

import (
	"testing"
	"time"
)

func reflectionAt(ts time.Time, label string) Reflection {
	return Reflection{Timestamp: ts, Label: label, Body: []string{label}}
}

func TestMergeChronological(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	a := []Reflection{
		reflectionAt(base.Add(4*time.Second), "A third"),
		reflectionAt(base, "A first"),
		reflectionAt(base.Add(2*time.Second), "A second"),
	}
	b := []Reflection{
		reflectionAt(base.Add(3*time.Second), "B second"),
		reflectionAt(base.Add(1*time.Second), "B first"),
	}

	merged := MergeChronological(b, a)

	if len(merged) != 5 {
		t.Fatalf("Got %d reflections, want 5", len(merged))
	}

	want := []string{"A first", "B first", "A second", "B second", "A third"}
	for i, label := range want {
		if merged[i].Label != label {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].Label, label)
		}
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Timestamp.Before(merged[i-1].Timestamp) {
			t.Errorf("Reflections not in chronological order at index %d", i)
		}
	}
}

func TestMergeChronological_SameTimestampsKeepScanOrder(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	first := []Reflection{reflectionAt(ts, "file1 block1"), reflectionAt(ts, "file1 block2")}
	second := []Reflection{reflectionAt(ts, "file2 block1")}

	merged := MergeChronological(first, second)

	want := []string{"file1 block1", "file1 block2", "file2 block1"}
	for i, label := range want {
		if merged[i].Label != label {
			t.Errorf("merged[%d] = %q, want %q", i, merged[i].Label, label)
		}
	}
}

func TestMergeChronological_Empty(t *testing.T) {
	merged := MergeChronological()
	if len(merged) != 0 {
		t.Errorf("Got %d reflections, want 0", len(merged))
	}

	merged = MergeChronological(nil, []Reflection{}, nil)
	if len(merged) != 0 {
		t.Errorf("Got %d reflections, want 0", len(merged))
	}
}
