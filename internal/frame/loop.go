package frame

import "time"

// Loop re-requests a frame after every tick until cancelled.
type Loop struct {
	req       Requester
	tick      Callback
	id        RequestID
	scheduled bool
	cancelled bool
	frames    uint64
}

// Start requests the first frame and returns the running loop.
func Start(req Requester, tick Callback) *Loop {
	l := &Loop{
		req:  req,
		tick: tick,
	}
	l.schedule()
	return l
}

func (l *Loop) schedule() {
	l.id = l.req.RequestFrame(l.run)
	l.scheduled = true
}

func (l *Loop) run(now time.Time) {
	l.scheduled = false
	if l.cancelled {
		return
	}

	l.frames++
	l.tick(now)

	// tick may have cancelled us
	if !l.cancelled {
		l.schedule()
	}
}

// Cancel stops the loop and withdraws the pending request. Safe to call
// more than once and from inside the tick.
func (l *Loop) Cancel() {
	if l == nil || l.cancelled {
		return
	}
	l.cancelled = true
	if l.scheduled {
		l.req.CancelFrame(l.id)
		l.scheduled = false
	}
}

// Active reports whether the loop still schedules frames.
func (l *Loop) Active() bool {
	return l != nil && !l.cancelled
}

// Frames returns the number of ticks run so far.
func (l *Loop) Frames() uint64 {
	if l == nil {
		return 0
	}
	return l.frames
}
