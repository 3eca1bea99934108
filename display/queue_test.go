package display

import (
	"testing"

	"github.com/pthm-cable/vortex/engine"
)

func TestFrameQueueRunsOnce(t *testing.T) {
	var q FrameQueue
	calls := 0
	id := q.RequestFrame(func() { calls++ })
	if id == 0 {
		t.Fatal("frame ids must be non-zero")
	}
	if !q.Pending() {
		t.Fatal("request should be pending")
	}

	if !q.RunPending() {
		t.Fatal("RunPending should run the callback")
	}
	if q.RunPending() {
		t.Error("callback should run only once")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestFrameQueueReplaces(t *testing.T) {
	var q FrameQueue
	var got []string
	q.RequestFrame(func() { got = append(got, "first") })
	q.RequestFrame(func() { got = append(got, "second") })
	q.RunPending()

	if len(got) != 1 || got[0] != "second" {
		t.Errorf("ran %v, want only the latest request", got)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	tests := []struct {
		name        string
		cancel      func(q *FrameQueue, first, second engine.FrameID)
		wantPending bool
	}{
		{"current id", func(q *FrameQueue, _, second engine.FrameID) { q.CancelFrame(second) }, false},
		{"stale id", func(q *FrameQueue, first, _ engine.FrameID) { q.CancelFrame(first) }, true},
		{"zero id", func(q *FrameQueue, _, _ engine.FrameID) { q.CancelFrame(0) }, true},
		{"twice", func(q *FrameQueue, _, second engine.FrameID) {
			q.CancelFrame(second)
			q.CancelFrame(second)
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q FrameQueue
			first := q.RequestFrame(func() {})
			second := q.RequestFrame(func() {})
			tt.cancel(&q, first, second)
			if q.Pending() != tt.wantPending {
				t.Errorf("Pending = %v, want %v", q.Pending(), tt.wantPending)
			}
		})
	}
}

func TestFrameQueueNoReentrancy(t *testing.T) {
	var q FrameQueue
	depth := 0
	var fn func()
	fn = func() {
		depth++
		q.RequestFrame(fn)
		if q.RunPending() {
			t.Error("nested RunPending should not run")
		}
	}
	q.RequestFrame(fn)
	q.RunPending()

	if depth != 1 {
		t.Errorf("depth = %d, want 1", depth)
	}
	if !q.Pending() {
		t.Error("request made inside the callback should stay pending")
	}
}

func TestResizeListeners(t *testing.T) {
	var l ResizeListeners
	var order []string
	removeA := l.Add(func(w, h int) { order = append(order, "a") })
	l.Add(func(w, h int) { order = append(order, "b") })

	l.Notify(10, 20)
	removeA()
	removeA()
	l.Notify(10, 20)

	want := []string{"a", "b", "b"}
	if len(order) != len(want) {
		t.Fatalf("calls = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("calls = %v, want %v", order, want)
		}
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}
