// Package search turns raw keystroke events into at most one query dispatch
// per quiet period, and runs dispatched queries against the cached catalog.
package search

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// minQueryRunes is the shortest trimmed query worth dispatching. Anything at
// or below two runes cancels the pending dispatch and hides results.
const minQueryRunes = 3

// Dispatcher debounces raw input events. Only the timer that survives
// un-superseded fires; cancelled timers never dispatch.
type Dispatcher struct {
	mu       sync.Mutex
	window   time.Duration
	timer    *time.Timer
	gen      uint64
	dispatch func(query string)
	hide     func()
}

// NewDispatcher creates a dispatcher. dispatch runs for the query that
// survives the debounce window; hide signals the display surface to drop any
// visible results.
func NewDispatcher(window time.Duration, dispatch func(query string), hide func()) *Dispatcher {
	return &Dispatcher{
		window:   window,
		dispatch: dispatch,
		hide:     hide,
	}
}

// OnInput handles one raw input event. Each call supersedes any pending
// dispatch; a too-short query additionally signals "hide results".
func (d *Dispatcher) OnInput(raw string) {
	query := strings.TrimSpace(raw)

	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if utf8.RuneCountInString(query) < minQueryRunes {
		hide := d.hide
		d.mu.Unlock()
		if hide != nil {
			hide()
		}
		return
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen, query) })
	d.mu.Unlock()
}

// Cancel drops any pending dispatch, e.g. on teardown.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Dispatcher) fire(gen uint64, query string) {
	d.mu.Lock()
	if gen != d.gen {
		// Superseded after the timer went off but before it got here.
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.dispatch(query)
}
