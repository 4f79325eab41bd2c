package tasks

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// SortMode selects the comparator used by Sort.
type SortMode string

const (
	SortByTime     SortMode = "time"
	SortByPriority SortMode = "priority"
)

// ParseSortMode maps a query value to a SortMode, defaulting to time.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortByTime:
		return SortByTime, nil
	case SortByPriority:
		return SortByPriority, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Sort returns a sorted copy of ts; ts itself is not reordered. Both modes
// are stable. By time, tasks whose time does not parse sort last.
func Sort(ts []Task, mode SortMode) []Task {
	out := slices.Clone(ts)
	switch mode {
	case SortByPriority:
		slices.SortStableFunc(out, func(a, b Task) int {
			return b.Priority.Rank() - a.Priority.Rank()
		})
	default:
		slices.SortStableFunc(out, func(a, b Task) int {
			ma, oka := ParseTimeOfDay(a.Time)
			mb, okb := ParseTimeOfDay(b.Time)
			switch {
			case oka && okb:
				return ma - mb
			case oka:
				return -1
			case okb:
				return 1
			default:
				return 0
			}
		})
	}
	return out
}

var timeLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15:04",
	"15:04:05",
}

// ParseTimeOfDay parses a display time such as "8:00 PM" or "14:30" and
// returns minutes since midnight.
func ParseTimeOfDay(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
