package notify

import (
	"sync"
	"testing"
	"time"

	"marquee/models"
)

type captureEmitter struct {
	mu   sync.Mutex
	seen []models.Notification
}

func (e *captureEmitter) Notification(n models.Notification) {
	e.mu.Lock()
	e.seen = append(e.seen, n)
	e.mu.Unlock()
}

func TestPushAssignsStrictlyIncreasingIDs(t *testing.T) {
	q := NewQueue(time.Hour)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	q.now = func() time.Time { return fixed }

	// Same-millisecond pushes must still get distinct, increasing ids.
	a := q.Push("first", models.KindInfo)
	b := q.Push("second", models.KindInfo)
	c := q.Push("third", models.KindInfo)

	if a.ID != fixed.UnixMilli() {
		t.Fatalf("first id = %d, want %d", a.ID, fixed.UnixMilli())
	}
	if b.ID != a.ID+1 || c.ID != b.ID+1 {
		t.Fatalf("ids not strictly increasing: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

func TestPushEmits(t *testing.T) {
	q := NewQueue(time.Hour)
	em := &captureEmitter{}
	q.SetEmitter(em)

	q.Push("hello", models.KindSuccess)

	if len(em.seen) != 1 || em.seen[0].Message != "hello" || em.seen[0].Kind != models.KindSuccess {
		t.Fatalf("emitter saw %+v", em.seen)
	}
}

func TestAutoExpiry(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Push("transient", models.KindInfo)

	if got := len(q.Active()); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(q.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("notification never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDismiss(t *testing.T) {
	q := NewQueue(time.Hour)
	n := q.Push("dismiss me", models.KindWarning)

	if !q.Dismiss(n.ID) {
		t.Fatal("dismiss of active notification failed")
	}
	if q.Dismiss(n.ID) {
		t.Fatal("second dismiss reported success")
	}
	if got := len(q.Active()); got != 0 {
		t.Fatalf("active = %d after dismiss, want 0", got)
	}
}

func TestDismissedNotificationDoesNotExpireTwice(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	a := q.Push("short lived", models.KindInfo)
	q.Dismiss(a.ID)

	// Push another after dismissal; the first timer firing must not
	// disturb it.
	b := q.Push("survivor", models.KindInfo)
	time.Sleep(10 * time.Millisecond)

	active := q.Active()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("active = %+v, want only the survivor", active)
	}
}

func TestActiveIsOrderedByID(t *testing.T) {
	q := NewQueue(time.Hour)
	q.Push("one", models.KindInfo)
	q.Push("two", models.KindInfo)
	q.Push("three", models.KindInfo)

	active := q.Active()
	if len(active) != 3 {
		t.Fatalf("active = %d, want 3", len(active))
	}
	for i := 1; i < len(active); i++ {
		if active[i-1].ID >= active[i].ID {
			t.Fatalf("active not ordered: %+v", active)
		}
	}
}

func TestShutdownClearsEverything(t *testing.T) {
	q := NewQueue(time.Hour)
	q.Push("one", models.KindInfo)
	q.Push("two", models.KindInfo)

	q.Shutdown()
	if got := len(q.Active()); got != 0 {
		t.Fatalf("active = %d after shutdown, want 0", got)
	}
}
