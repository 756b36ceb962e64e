package search_test

import (
	"sync"
	"testing"
	"time"

	"marquee/services/search"
)

type dispatchRecorder struct {
	mu      sync.Mutex
	queries []string
	hides   int
	notify  chan struct{}
}

func newDispatchRecorder() *dispatchRecorder {
	return &dispatchRecorder{notify: make(chan struct{}, 16)}
}

func (r *dispatchRecorder) dispatch(query string) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

func (r *dispatchRecorder) hide() {
	r.mu.Lock()
	r.hides++
	r.mu.Unlock()
}

func (r *dispatchRecorder) dispatched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func (r *dispatchRecorder) hideCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hides
}

func (r *dispatchRecorder) waitForDispatch(t *testing.T) {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dispatch")
	}
}

func TestOnlyLastInputDispatches(t *testing.T) {
	rec := newDispatchRecorder()
	d := search.NewDispatcher(20*time.Millisecond, rec.dispatch, rec.hide)

	// Rapid typing: every event supersedes the previous timer.
	d.OnInput("mat")
	d.OnInput("matr")
	d.OnInput("matrix")

	rec.waitForDispatch(t)
	time.Sleep(50 * time.Millisecond) // no stragglers

	if got := rec.dispatched(); len(got) != 1 || got[0] != "matrix" {
		t.Fatalf("dispatched = %v, want [matrix]", got)
	}
}

func TestShortQueryCancelsAndHides(t *testing.T) {
	rec := newDispatchRecorder()
	d := search.NewDispatcher(20*time.Millisecond, rec.dispatch, rec.hide)

	d.OnInput("matrix")
	d.OnInput("ma") // backspaced below the threshold

	time.Sleep(60 * time.Millisecond)

	if got := rec.dispatched(); len(got) != 0 {
		t.Fatalf("dispatched = %v, want none", got)
	}
	if rec.hideCount() == 0 {
		t.Fatal("short query did not hide results")
	}
}

func TestQueryIsTrimmedBeforeLengthCheck(t *testing.T) {
	rec := newDispatchRecorder()
	d := search.NewDispatcher(20*time.Millisecond, rec.dispatch, rec.hide)

	d.OnInput("  ab   ") // two runes after trimming
	time.Sleep(60 * time.Millisecond)

	if got := rec.dispatched(); len(got) != 0 {
		t.Fatalf("dispatched = %v, want none", got)
	}
	if rec.hideCount() != 1 {
		t.Fatalf("hide fired %d times, want 1", rec.hideCount())
	}

	d.OnInput("  abc  ")
	rec.waitForDispatch(t)
	if got := rec.dispatched(); len(got) != 1 || got[0] != "abc" {
		t.Fatalf("dispatched = %v, want [abc]", got)
	}
}

func TestCancelDropsPendingDispatch(t *testing.T) {
	rec := newDispatchRecorder()
	d := search.NewDispatcher(20*time.Millisecond, rec.dispatch, rec.hide)

	d.OnInput("matrix")
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := rec.dispatched(); len(got) != 0 {
		t.Fatalf("dispatched after Cancel: %v", got)
	}
}

func TestEachQuietPeriodDispatchesIndependently(t *testing.T) {
	rec := newDispatchRecorder()
	d := search.NewDispatcher(20*time.Millisecond, rec.dispatch, rec.hide)

	d.OnInput("alien")
	rec.waitForDispatch(t)
	d.OnInput("aliens")
	rec.waitForDispatch(t)

	if got := rec.dispatched(); len(got) != 2 || got[0] != "alien" || got[1] != "aliens" {
		t.Fatalf("dispatched = %v, want [alien aliens]", got)
	}
}
