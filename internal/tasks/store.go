package tasks

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the today and upcoming buckets. A task's bucket is decided
// once, when it is added, and never re-evaluated.
type Store struct {
	clock  Clock
	logger *slog.Logger
	newID  func() string

	mu       sync.RWMutex
	today    []Task
	upcoming []Task
	pending  map[string]pendingDeletion
}

// DeletionTTL is how long a deletion token stays valid. Expired tokens are
// treated as unknown and pruned on the next request.
const DeletionTTL = 10 * time.Minute

type pendingDeletion struct {
	id      string
	expires time.Time
}

// NewStore creates an empty Store.
func NewStore(logger *slog.Logger) *Store {
	return NewStoreWithClock(realClock{}, logger)
}

// NewStoreWithClock creates an empty Store with a custom clock (for testing).
func NewStoreWithClock(clock Clock, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		clock:   clock,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
		pending: make(map[string]pendingDeletion),
	}
}

// AddFromAssistant adds a task on behalf of the assistant. It never fails;
// blank fields take the assistant defaults and an unknown priority becomes
// medium.
func (s *Store) AddFromAssistant(d Draft) (Task, Bucket) {
	t := Task{
		Title:    d.Title,
		Date:     orDefault(d.Date, defaultDate),
		Time:     orDefault(d.Time, defaultTime),
		Note:     d.Note,
		Origin:   OriginAssistant,
		Category: orDefault(d.Category, defaultCategory),
		Location: d.Location,
		Priority: d.Priority,
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	return s.add(t)
}

// AddManual adds a user-entered task. Title, date and time must be non-blank.
func (s *Store) AddManual(d Draft) (Task, Bucket, error) {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Date) == "" || strings.TrimSpace(d.Time) == "" {
		return Task{}, "", ErrMissingRequired
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return Task{}, "", fmt.Errorf("%w %q", ErrInvalidPriority, d.Priority)
	}
	t := Task{
		Title:    d.Title,
		Date:     d.Date,
		Time:     d.Time,
		Note:     d.Note,
		Origin:   OriginUser,
		Category: orDefault(d.Category, defaultCategory),
		Location: d.Location,
		Priority: d.Priority,
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	task, bucket := s.add(t)
	return task, bucket, nil
}

// Seed appends tasks into the given bucket as-is, keeping their ids.
func (s *Store) Seed(b Bucket, ts ...Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b == BucketToday {
		s.today = append(s.today, ts...)
	} else {
		s.upcoming = append(s.upcoming, ts...)
	}
}

func (s *Store) add(t Task) (Task, Bucket) {
	t.ID = s.newID()
	b := s.route(t.Date)

	s.mu.Lock()
	if b == BucketToday {
		s.today = append(s.today, t)
	} else {
		s.upcoming = append(s.upcoming, t)
	}
	s.mu.Unlock()

	s.logger.Debug("task added", "id", t.ID, "bucket", b, "origin", t.Origin)
	return t, b
}

func (s *Store) route(date string) Bucket {
	if date == defaultDate || date == FormatDate(s.clock.Now()) {
		return BucketToday
	}
	return BucketUpcoming
}

// Bucket returns a copy of the tasks in b in insertion order.
func (s *Store) Bucket(b Bucket) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(*s.bucketLocked(b))
}

// Get finds a task by id in either bucket.
func (s *Store) Get(id string) (Task, Bucket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range []Bucket{BucketToday, BucketUpcoming} {
		for _, t := range *s.bucketLocked(b) {
			if t.ID == id {
				return t, b, true
			}
		}
	}
	return Task{}, "", false
}

// Toggle flips the completion of task id within bucket b. It reports whether
// the task was found; a miss changes nothing.
func (s *Store) Toggle(b Bucket, id string) bool {
	return s.update(b, id, func(t *Task) { t.Completed = !t.Completed })
}

// EditNote replaces the note of task id within bucket b. A miss changes nothing.
func (s *Store) EditNote(b Bucket, id, note string) bool {
	return s.update(b, id, func(t *Task) { t.Note = note })
}

func (s *Store) update(b Bucket, id string, fn func(*Task)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts := *s.bucketLocked(b)
	for i := range ts {
		if ts[i].ID == id {
			fn(&ts[i])
			return true
		}
	}
	return false
}

// Delete removes id from both buckets. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

func (s *Store) deleteLocked(id string) {
	match := func(t Task) bool { return t.ID == id }
	s.today = slices.DeleteFunc(s.today, match)
	s.upcoming = slices.DeleteFunc(s.upcoming, match)
}

// RequestDelete records a pending deletion of id and returns its token.
// Nothing is removed until ConfirmDelete is called with the token before it
// expires.
func (s *Store) RequestDelete(id string) string {
	token := s.newID()
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, p := range s.pending {
		if !now.Before(p.expires) {
			delete(s.pending, tok)
		}
	}
	s.pending[token] = pendingDeletion{id: id, expires: now.Add(DeletionTTL)}
	return token
}

// ConfirmDelete performs the deletion recorded under token and returns the
// deleted task id.
func (s *Store) ConfirmDelete(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.takePendingLocked(token)
	if !ok {
		return "", ErrUnknownDeletion
	}
	s.deleteLocked(p.id)
	s.logger.Debug("task deleted", "id", p.id)
	return p.id, nil
}

// CancelDelete discards the pending deletion without touching any task.
func (s *Store) CancelDelete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.takePendingLocked(token); !ok {
		return ErrUnknownDeletion
	}
	return nil
}

// takePendingLocked removes token and reports whether it was still live.
func (s *Store) takePendingLocked(token string) (pendingDeletion, bool) {
	p, ok := s.pending[token]
	if !ok {
		return pendingDeletion{}, false
	}
	delete(s.pending, token)
	return p, s.clock.Now().Before(p.expires)
}

// Summary is the completion count for one bucket.
type Summary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%d of %d tasks completed", s.Completed, s.Total)
}

// Completion counts completed tasks in bucket b.
func (s *Store) Completion(b Bucket) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts := *s.bucketLocked(b)
	sum := Summary{Total: len(ts)}
	for _, t := range ts {
		if t.Completed {
			sum.Completed++
		}
	}
	return sum
}

func (s *Store) bucketLocked(b Bucket) *[]Task {
	if b == BucketUpcoming {
		return &s.upcoming
	}
	return &s.today
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
