package reports

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownPeriod is returned by ParsePeriod for anything but daily,
// weekly or monthly.
var ErrUnknownPeriod = errors.New("unknown report period")

// Period selects one of the dashboard's fixed report views.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod maps a query value to a Period. Empty means weekly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodDaily, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPeriod, s)
}

// GoalStatus is the badge shown next to a monthly goal.
type GoalStatus string

const (
	GoalOnTrack  GoalStatus = "on-track"
	GoalBehind   GoalStatus = "behind"
	GoalExceeded GoalStatus = "exceeded"
)

// Metrics are the four headline cards of a period view.
type Metrics struct {
	TasksCompleted    int    `json:"tasks_completed"`
	ProductivityScore int    `json:"productivity_score"`
	TimeFocused       string `json:"time_focused"`
	Automations       int    `json:"automations"`
}

// DayStat is one bar of the weekly chart.
type DayStat struct {
	Day          string `json:"day"`
	Completed    int    `json:"completed"`
	Planned      int    `json:"planned"`
	Productivity int    `json:"productivity"`
}

// CategoryStat is one slice of the daily category chart.
type CategoryStat struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Planned   int    `json:"planned"`
}

// Goal is a monthly target. Progress is capped at 100.
type Goal struct {
	Goal     string     `json:"goal"`
	Current  int        `json:"current"`
	Target   int        `json:"target"`
	Status   GoalStatus `json:"status"`
	Progress int        `json:"progress"`
}

// Insight is a canned recommendation card.
type Insight struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation"`
}

// PeriodView is everything the reports screen shows for one period. Only
// the daily view carries Categories, only the weekly view carries Days and
// only the monthly view carries Goals.
type PeriodView struct {
	Period     Period         `json:"period"`
	Subtitle   string         `json:"subtitle"`
	Metrics    Metrics        `json:"metrics"`
	Days       []DayStat      `json:"days,omitempty"`
	Categories []CategoryStat `json:"categories,omitempty"`
	Goals      []Goal         `json:"goals,omitempty"`
	Insights   []Insight      `json:"insights"`
}

var weeklyStats = []DayStat{
	{"Mon", 8, 10, 80},
	{"Tue", 6, 8, 75},
	{"Wed", 9, 9, 100},
	{"Thu", 7, 11, 64},
	{"Fri", 10, 12, 83},
	{"Sat", 3, 4, 75},
	{"Sun", 2, 3, 67},
}

var dailyCategories = []CategoryStat{
	{"Work", 5, 6},
	{"Personal", 2, 3},
	{"Health", 1, 1},
}

var monthlyGoals = []Goal{
	{Goal: "Complete 100 tasks", Current: 87, Target: 100, Status: GoalOnTrack},
	{Goal: "Attend 20 meetings", Current: 18, Target: 20, Status: GoalOnTrack},
	{Goal: "Finish 5 projects", Current: 3, Target: 5, Status: GoalBehind},
	{Goal: "Health activities", Current: 12, Target: 10, Status: GoalExceeded},
}

var insights = []Insight{
	{
		Type:           "productivity",
		Title:          "Peak Productivity Hours",
		Insight:        "You are most productive between 9 AM - 11 AM with 95% task completion rate.",
		Recommendation: "Schedule important tasks during this time window.",
	},
	{
		Type:           "pattern",
		Title:          "Weekly Pattern",
		Insight:        "Wednesdays show highest productivity (100% completion rate).",
		Recommendation: "Consider scheduling challenging tasks on Wednesdays.",
	},
	{
		Type:           "improvement",
		Title:          "Improvement Area",
		Insight:        "Personal tasks have 67% completion rate vs 85% for work tasks.",
		Recommendation: "Try breaking personal tasks into smaller, manageable chunks.",
	},
}

// View returns the fixed report for p. The figures are sample data and do
// not depend on the task store.
func View(p Period) PeriodView {
	v := PeriodView{Period: p, Insights: append([]Insight(nil), insights...)}

	switch p {
	case PeriodDaily:
		v.Subtitle = "Today"
		v.Metrics = Metrics{TasksCompleted: 8, ProductivityScore: 85, TimeFocused: "6.5h", Automations: 12}
		v.Categories = append([]CategoryStat(nil), dailyCategories...)
	case PeriodMonthly:
		v.Subtitle = "This month"
		v.Metrics = Metrics{TasksCompleted: 87, ProductivityScore: 92, TimeFocused: "168h", Automations: 320}
		v.Goals = make([]Goal, len(monthlyGoals))
		for i, g := range monthlyGoals {
			g.Progress = GoalProgress(g.Current, g.Target)
			v.Goals[i] = g
		}
	default:
		v.Subtitle = "This week"
		completed, score := 0, 0
		for _, d := range weeklyStats {
			completed += d.Completed
			score += d.Productivity
		}
		v.Metrics = Metrics{
			TasksCompleted:    completed,
			ProductivityScore: int(math.Round(float64(score) / float64(len(weeklyStats)))),
			TimeFocused:       "42h",
			Automations:       84,
		}
		v.Days = append([]DayStat(nil), weeklyStats...)
	}
	return v
}

// GoalProgress is current as a rounded percentage of target, capped at 100.
func GoalProgress(current, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(math.Min(float64(current)/float64(target)*100, 100)))
}
