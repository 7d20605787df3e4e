package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps tasks in process memory. It backs the -mem dry-run
// mode and the tests; semantics match the MySQL store.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	tasks  []Task
}

func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Create(ctx context.Context, userID int64, description string, start, end time.Time) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Task{ID: s.nextID, UserID: userID, Description: description, StartDate: start, EndDate: end}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID int64) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(userID, func(Task) bool { return true }), nil
}

func (s *MemoryStore) ListOverdue(ctx context.Context, userID int64, now time.Time) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(userID, func(t Task) bool { return t.EndDate.Before(now) }), nil
}

func (s *MemoryStore) ListInRange(ctx context.Context, userID int64, rangeStart, rangeEnd time.Time) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(userID, func(t Task) bool {
		return !t.StartDate.After(rangeStart) && !t.EndDate.Before(rangeEnd)
	}), nil
}

func (s *MemoryStore) DeleteNth(ctx context.Context, userID int64, n int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	seen := 0
	for i, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		seen++
		if seen == n {
			idx = i
			break
		}
	}
	if n <= 0 || idx == -1 {
		return Task{}, ErrOutOfRange
	}
	t := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return t, nil
}

// tasks is append-only ordered by id, so a linear pass preserves
// insertion order.
func (s *MemoryStore) filterLocked(userID int64, keep func(Task) bool) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if t.UserID == userID && keep(t) {
			out = append(out, t)
		}
	}
	return out
}
