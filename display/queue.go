// Package display provides the hosts an engine runs in: a raylib window,
// a tcell terminal and a headless raster target.
package display

import "github.com/pthm-cable/vortex/engine"

// FrameQueue holds at most one pending frame callback.
// A new request replaces the pending one, so frames never back up.
type FrameQueue struct {
	nextID    engine.FrameID
	pendingID engine.FrameID
	pending   func()
	running   bool
}

// RequestFrame schedules fn for the next RunPending call.
func (q *FrameQueue) RequestFrame(fn func()) engine.FrameID {
	q.nextID++
	q.pending = fn
	q.pendingID = q.nextID
	return q.nextID
}

// CancelFrame drops the pending callback if id still names it.
// Stale and zero ids are ignored.
func (q *FrameQueue) CancelFrame(id engine.FrameID) {
	if id == 0 || id != q.pendingID {
		return
	}
	q.pending = nil
	q.pendingID = 0
}

// Pending reports whether a callback is waiting.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// RunPending pops and runs the pending callback. Calls made from inside a
// running callback do nothing. Returns true if a callback ran.
func (q *FrameQueue) RunPending() bool {
	if q.running || q.pending == nil {
		return false
	}
	fn := q.pending
	q.pending = nil
	q.pendingID = 0

	q.running = true
	defer func() { q.running = false }()
	fn()
	return true
}

// ResizeListeners is an ordered set of viewport size callbacks.
type ResizeListeners struct {
	nextID int
	fns    []resizeListener
}

type resizeListener struct {
	id int
	fn func(w, h int)
}

// Add registers fn and returns a function that removes it. Removing twice is harmless.
func (l *ResizeListeners) Add(fn func(w, h int)) (remove func()) {
	l.nextID++
	id := l.nextID
	l.fns = append(l.fns, resizeListener{id: id, fn: fn})
	return func() {
		for i, r := range l.fns {
			if r.id == id {
				l.fns = append(l.fns[:i], l.fns[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every listener in registration order.
func (l *ResizeListeners) Notify(w, h int) {
	for _, r := range append([]resizeListener(nil), l.fns...) {
		r.fn(w, h)
	}
}

// Len returns the number of registered listeners.
func (l *ResizeListeners) Len() int {
	return len(l.fns)
}
