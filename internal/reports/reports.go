// Package reports derives productivity metrics from the task store.
package reports

import (
	"slices"
	"strings"

	"github.com/syntra-ai/syntra/internal/tasks"
)

// Source is the read side of tasks.Store used to build a report.
type Source interface {
	Bucket(b tasks.Bucket) []tasks.Task
}

// Breakdown counts tasks sharing one category or priority.
type Breakdown struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Report is a snapshot of task completion.
type Report struct {
	Total          int                            `json:"total"`
	Completed      int                            `json:"completed"`
	CompletionRate int                            `json:"completion_rate"`
	AssistantMade  int                            `json:"assistant_made"`
	Buckets        map[tasks.Bucket]tasks.Summary `json:"buckets"`
	Categories     []Breakdown                    `json:"categories"`
	Priorities     []Breakdown                    `json:"priorities"`
}

// Build computes a Report over both buckets. CompletionRate is a whole
// percentage rounded down; it is 0 when there are no tasks.
func Build(src Source) Report {
	r := Report{Buckets: make(map[tasks.Bucket]tasks.Summary, 2)}
	cats := map[string]*Breakdown{}
	prios := map[string]*Breakdown{}

	for _, b := range []tasks.Bucket{tasks.BucketToday, tasks.BucketUpcoming} {
		var sum tasks.Summary
		for _, t := range src.Bucket(b) {
			sum.Total++
			if t.Completed {
				sum.Completed++
			}
			if t.Origin == tasks.OriginAssistant {
				r.AssistantMade++
			}
			tally(cats, t.Category, t.Completed)
			tally(prios, string(t.Priority), t.Completed)
		}
		r.Buckets[b] = sum
		r.Total += sum.Total
		r.Completed += sum.Completed
	}
	if r.Total > 0 {
		r.CompletionRate = r.Completed * 100 / r.Total
	}

	r.Categories = sorted(cats, func(a, b Breakdown) int {
		if a.Total != b.Total {
			return b.Total - a.Total
		}
		return strings.Compare(a.Name, b.Name)
	})
	r.Priorities = sorted(prios, func(a, b Breakdown) int {
		return tasks.Priority(b.Name).Rank() - tasks.Priority(a.Name).Rank()
	})
	return r
}

func tally(m map[string]*Breakdown, name string, completed bool) {
	b, ok := m[name]
	if !ok {
		b = &Breakdown{Name: name}
		m[name] = b
	}
	b.Total++
	if completed {
		b.Completed++
	}
}

func sorted(m map[string]*Breakdown, cmp func(a, b Breakdown) int) []Breakdown {
	out := make([]Breakdown, 0, len(m))
	for _, b := range m {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Breakdown) int {
		if c := cmp(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
