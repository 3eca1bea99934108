// Package engine drives the vortex animation: it owns the particle pool, the
// simulation clock and canvas geometry, and ticks them from a host scheduler.
package engine

import "github.com/pthm-cable/vortex/renderer"

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// Scheduler runs a callback once on the next display refresh.
// Callbacks never overlap and requests do not queue: a new request
// replaces the pending one.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Viewport reports the area the engine fills and notifies size changes.
type Viewport interface {
	Size() (w, h int)
	// OnResize registers fn and returns a function that unregisters it.
	OnResize(fn func(w, h int)) (remove func())
}

// Host is the environment an engine is mounted into.
type Host interface {
	Scheduler
	Viewport
	// Context returns the 2D drawing surface, or nil when the host has none.
	Context() renderer.Surface
}
