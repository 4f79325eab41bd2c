package tasks

import (
	"strconv"
	"strings"
	"time"
)

// maxCellTasks is how many task titles a calendar cell shows before
// collapsing the rest into an overflow count.
const maxCellTasks = 2

// TasksForDay returns the upcoming tasks whose date string contains day as a
// decimal substring. The match is loose: day 2 also matches
// "Dec 12" and "2025".
func (s *Store) TasksForDay(day int) []Task {
	needle := strconv.Itoa(day)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Task
	for _, t := range s.upcoming {
		if strings.Contains(t.Date, needle) {
			out = append(out, t)
		}
	}
	return out
}

// DayCell is one rendered day of the month grid.
type DayCell struct {
	Day      int    `json:"day"`
	Tasks    []Task `json:"tasks"`
	Overflow int    `json:"overflow"`
}

// NewDayCell truncates ts to the displayed tasks and counts the rest.
func NewDayCell(day int, ts []Task) DayCell {
	c := DayCell{Day: day, Tasks: ts}
	if len(ts) > maxCellTasks {
		c.Tasks = ts[:maxCellTasks]
		c.Overflow = len(ts) - maxCellTasks
	}
	if c.Tasks == nil {
		c.Tasks = []Task{}
	}
	return c
}

// Month is a Sunday-first month grid.
type Month struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Title  string     `json:"title"`
	Blanks int        `json:"blanks"`
	Days   []DayCell  `json:"days"`
}

// MonthGrid lays out the given month: Blanks is the number of empty cells
// before the 1st, then one cell per day populated by TasksForDay.
func (s *Store) MonthGrid(year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	m := Month{
		Year:   first.Year(),
		Month:  first.Month(),
		Title:  first.Format("January 2006"),
		Blanks: int(first.Weekday()),
		Days:   make([]DayCell, 0, days),
	}
	for d := 1; d <= days; d++ {
		m.Days = append(m.Days, NewDayCell(d, s.TasksForDay(d)))
	}
	return m
}
