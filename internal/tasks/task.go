package tasks

import (
	"errors"
	"time"
)

var (
	// ErrMissingRequired is returned by AddManual when title, date or time is blank.
	ErrMissingRequired = errors.New("title, date and time are required")
	// ErrUnknownDeletion is returned for deletion tokens that were never
	// issued or have already been resolved.
	ErrUnknownDeletion = errors.New("unknown deletion request")
	ErrInvalidPriority = errors.New("invalid priority")
)

// Origin records which path created a task.
type Origin string

const (
	OriginAssistant Origin = "assistant"
	OriginUser      Origin = "user"
)

// Priority is a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting. Unknown priorities rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool { return p.Rank() > 0 }

// Bucket is one of the two fixed task groupings.
type Bucket string

const (
	BucketToday    Bucket = "today"
	BucketUpcoming Bucket = "upcoming"
)

// ParseBucket maps a query value to a Bucket, defaulting to today.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case "", BucketToday:
		return BucketToday, true
	case BucketUpcoming:
		return BucketUpcoming, true
	default:
		return "", false
	}
}

// Task is a scheduled item. Date and Time are free-form display strings.
type Task struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Time      string   `json:"time"`
	Note      string   `json:"note"`
	Completed bool     `json:"completed"`
	Origin    Origin   `json:"origin"`
	Category  string   `json:"category"`
	Location  string   `json:"location,omitempty"`
	Priority  Priority `json:"priority"`
}

// Draft is the caller-supplied part of a new task. Blank fields take
// defaults depending on the add path.
type Draft struct {
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Note     string   `json:"note"`
	Category string   `json:"category"`
	Location string   `json:"location"`
	Priority Priority `json:"priority"`
}

const (
	defaultDate     = "Today"
	defaultTime     = "12:00 PM"
	defaultCategory = "Personal"
)

// dateLayout matches the default string form of a calendar date used to
// route tasks into the today bucket.
const dateLayout = "Mon Jan 02 2006"

// FormatDate renders t the way bucket routing expects today's date.
func FormatDate(t time.Time) string { return t.Format(dateLayout) }

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
