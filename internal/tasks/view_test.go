package tasks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSort_PriorityStable(t *testing.T) {
	in := []Task{
		{ID: "A", Priority: PriorityLow},
		{ID: "B", Priority: PriorityHigh},
		{ID: "C", Priority: PriorityHigh},
		{ID: "D", Priority: PriorityMedium},
	}
	got := Sort(in, SortByPriority)
	if diff := cmp.Diff([]string{"B", "C", "D", "A"}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, ids(in)); diff != "" {
		t.Errorf("input was reordered (-want +got):\n%s", diff)
	}
}

func TestSort_TimeInvalidLast(t *testing.T) {
	in := []Task{
		{ID: "evening", Time: "8:00 PM"},
		{ID: "bad1", Time: "soon"},
		{ID: "noon", Time: "12:00 PM"},
		{ID: "early", Time: "6:00 AM"},
		{ID: "bad2", Time: ""},
		{ID: "late-morning", Time: "11:30 AM"},
		{ID: "same-noon", Time: "12:00"},
	}
	got := Sort(in, SortByTime)
	want := []string{"early", "late-morning", "noon", "same-noon", "evening", "bad1", "bad2"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"8:00 PM", 20 * 60, true},
		{"12:00 AM", 0, true},
		{"12:00 PM", 12 * 60, true},
		{"11:30 am", 11*60 + 30, true},
		{"3PM", 15 * 60, true},
		{"14:45", 14*60 + 45, true},
		{"25:00", 0, false},
		{"later", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseTimeOfDay(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSortMode(t *testing.T) {
	if m, err := ParseSortMode(""); err != nil || m != SortByTime {
		t.Errorf("ParseSortMode(\"\") = (%q, %v)", m, err)
	}
	if _, err := ParseSortMode("alpha"); err == nil {
		t.Error("ParseSortMode(alpha) succeeded")
	}
}
