// Package toast keeps the queue of dismissible notifications shown to a user.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

func (s Severity) Icon() string {
	switch s {
	case Success:
		return "✅"
	case Warning:
		return "⚠️"
	case Error:
		return "❌"
	}
	return "ℹ️"
}

type Toast struct {
	ID        uuid.UUID
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Queue is safe for concurrent use. When full, the oldest toast is evicted.
type Queue struct {
	mu    sync.Mutex
	items []Toast
	limit int
}

const defaultLimit = 5

func NewQueue(limit int) *Queue {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Queue{limit: limit}
}

// Push adds a toast and returns it along with any toast evicted to make room.
func (q *Queue) Push(message string, severity Severity) (Toast, []Toast) {
	t := Toast{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, t)
	var evicted []Toast
	if over := len(q.items) - q.limit; over > 0 {
		evicted = append(evicted, q.items[:over]...)
		q.items = append([]Toast(nil), q.items[over:]...)
	}
	return t, evicted
}

// Remove dismisses the toast with the given id. It reports whether it was
// still queued.
func (q *Queue) Remove(id uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Toast(nil), q.items...)
}
