// Package notify manages transient user-facing messages: time-based ids,
// auto-expiry after a fixed display duration, and explicit dismissal.
package notify

import (
	"sort"
	"sync"
	"time"

	"marquee/models"
)

// Emitter receives every pushed notification. The render sink satisfies it.
type Emitter interface {
	Notification(n models.Notification)
}

type entry struct {
	n     models.Notification
	timer *time.Timer
}

// Queue holds the active notification set. IDs are derived from the push
// time in milliseconds; pushes landing in the same millisecond get the next
// free id so ids stay strictly increasing.
type Queue struct {
	mu       sync.Mutex
	lifetime time.Duration
	active   map[int64]*entry
	lastID   int64
	emitter  Emitter
	now      func() time.Time
}

// NewQueue creates a queue whose notifications auto-expire after lifetime.
func NewQueue(lifetime time.Duration) *Queue {
	return &Queue{
		lifetime: lifetime,
		active:   make(map[int64]*entry),
		now:      time.Now,
	}
}

// SetEmitter attaches the sink that receives pushed notifications.
func (q *Queue) SetEmitter(e Emitter) {
	q.mu.Lock()
	q.emitter = e
	q.mu.Unlock()
}

// Push creates a notification, adds it to the active set and schedules its
// auto-removal.
func (q *Queue) Push(message string, kind models.NotificationKind) models.Notification {
	q.mu.Lock()
	id := q.now().UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	n := models.Notification{
		ID:        id,
		Message:   message,
		Kind:      kind,
		CreatedAt: q.now(),
	}
	e := &entry{n: n}
	e.timer = time.AfterFunc(q.lifetime, func() { q.expire(id) })
	q.active[id] = e
	emitter := q.emitter
	q.mu.Unlock()

	if emitter != nil {
		emitter.Notification(n)
	}
	return n
}

// Dismiss removes a notification immediately, cancelling its expiry timer.
// It reports whether the id was still active.
func (q *Queue) Dismiss(id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.active[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(q.active, id)
	return true
}

// Active returns the current notification set ordered by id.
func (q *Queue) Active() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Notification, 0, len(q.active))
	for _, e := range q.active {
		out = append(out, e.n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Shutdown cancels all pending expiry timers.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, e := range q.active {
		e.timer.Stop()
		delete(q.active, id)
	}
}

// expire runs from the auto-removal timer. A dismissed id may already be
// gone, so existence is checked before removal.
func (q *Queue) expire(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.active[id]; ok {
		delete(q.active, id)
	}
}
