package reports

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", PeriodWeekly, false},
		{"daily", PeriodDaily, false},
		{"weekly", PeriodWeekly, false},
		{"monthly", PeriodMonthly, false},
		{"yearly", "", true},
		{"Daily", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownPeriod) {
					t.Errorf("ParsePeriod(%q) error = %v, want ErrUnknownPeriod", tc.in, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParsePeriod(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
			}
		})
	}
}

func TestView_Weekly(t *testing.T) {
	v := View(PeriodWeekly)

	want := Metrics{TasksCompleted: 45, ProductivityScore: 78, TimeFocused: "42h", Automations: 84}
	if diff := cmp.Diff(want, v.Metrics); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if len(v.Days) != 7 || v.Days[2].Day != "Wed" || v.Days[2].Productivity != 100 {
		t.Errorf("days = %+v", v.Days)
	}
	if v.Categories != nil || v.Goals != nil {
		t.Error("weekly view carries daily or monthly sections")
	}
	if v.Subtitle != "This week" || len(v.Insights) != 3 {
		t.Errorf("subtitle = %q, insights = %d", v.Subtitle, len(v.Insights))
	}
}

func TestView_Daily(t *testing.T) {
	v := View(PeriodDaily)

	if v.Metrics.TasksCompleted != 8 || v.Metrics.ProductivityScore != 85 || v.Metrics.TimeFocused != "6.5h" {
		t.Errorf("metrics = %+v", v.Metrics)
	}
	want := []CategoryStat{{"Work", 5, 6}, {"Personal", 2, 3}, {"Health", 1, 1}}
	if diff := cmp.Diff(want, v.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if v.Days != nil || v.Goals != nil {
		t.Error("daily view carries weekly or monthly sections")
	}
}

func TestView_MonthlyGoals(t *testing.T) {
	v := View(PeriodMonthly)

	if v.Metrics.TasksCompleted != 87 || v.Metrics.ProductivityScore != 92 {
		t.Errorf("metrics = %+v", v.Metrics)
	}
	want := []Goal{
		{Goal: "Complete 100 tasks", Current: 87, Target: 100, Status: GoalOnTrack, Progress: 87},
		{Goal: "Attend 20 meetings", Current: 18, Target: 20, Status: GoalOnTrack, Progress: 90},
		{Goal: "Finish 5 projects", Current: 3, Target: 5, Status: GoalBehind, Progress: 60},
		{Goal: "Health activities", Current: 12, Target: 10, Status: GoalExceeded, Progress: 100},
	}
	if diff := cmp.Diff(want, v.Goals); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
}

func TestView_DoesNotShareState(t *testing.T) {
	v := View(PeriodMonthly)
	v.Goals[0].Current = 0
	v.Insights[0].Title = "changed"

	again := View(PeriodMonthly)
	if again.Goals[0].Current != 87 || again.Insights[0].Title != "Peak Productivity Hours" {
		t.Error("mutating a view leaked into the next one")
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		current, target, want int
	}{
		{87, 100, 87},
		{12, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{5, 0, 0},
	}
	for _, tc := range tests {
		if got := GoalProgress(tc.current, tc.target); got != tc.want {
			t.Errorf("GoalProgress(%d, %d) = %d, want %d", tc.current, tc.target, got, tc.want)
		}
	}
}
