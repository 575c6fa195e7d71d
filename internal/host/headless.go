package host

import (
	"errors"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/frame"
	"github.com/Faultbox/floating-geometry/internal/surface"
)

// ErrNoContext is returned by Surface when the host has no drawing context.
var ErrNoContext = errors.New("host: 2D drawing context unavailable")

// Headless is an in-memory host. Frames are dispatched explicitly with
// Step, pointer and resize notifications with Move and Resize. It backs
// the snapshot command and the component tests.
type Headless struct {
	Listeners

	surf    surface.Surface
	bounds  Rect
	density float64
	queue   *frame.Queue
}

// NewHeadless creates a host around surf. A nil surf makes Surface fail
// with ErrNoContext.
func NewHeadless(surf surface.Surface, bounds Rect, density float64, clk clock.Clock) *Headless {
	return &Headless{
		surf:    surf,
		bounds:  bounds,
		density: density,
		queue:   frame.NewQueue(clk),
	}
}

// Surface returns the drawing surface.
func (h *Headless) Surface() (surface.Surface, error) {
	if h.surf == nil {
		return nil, ErrNoContext
	}
	return h.surf, nil
}

// Bounds returns the surface rectangle.
func (h *Headless) Bounds() Rect { return h.bounds }

// Density returns the device pixel density.
func (h *Headless) Density() float64 { return h.density }

// Frames returns the frame requester.
func (h *Headless) Frames() frame.Requester { return h.queue }

// Queue returns the underlying frame queue.
func (h *Headless) Queue() *frame.Queue { return h.queue }

// Step dispatches one display refresh and returns the callbacks run.
func (h *Headless) Step() int {
	return h.queue.Dispatch()
}

// Move delivers a pointer notification.
func (h *Headless) Move(clientX, clientY float64) {
	h.EmitPointer(clientX, clientY)
}

// Resize changes the surface rectangle and density and notifies listeners.
func (h *Headless) Resize(bounds Rect, density float64) {
	h.bounds = bounds
	h.density = density
	h.EmitResize(bounds, density)
}
