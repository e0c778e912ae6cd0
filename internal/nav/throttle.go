package nav

// FrameThrottle coalesces bursts of events into at most one callback per
// animation frame.
type FrameThrottle struct {
	fn      func()
	pending bool
}

func NewFrameThrottle(fn func()) *FrameThrottle {
	return &FrameThrottle{fn: fn}
}

// Request marks that work is wanted. It reports whether the caller needs to
// schedule a frame; false means one is already scheduled.
func (f *FrameThrottle) Request() bool {
	if f.pending {
		return false
	}
	f.pending = true
	return true
}

// Frame runs the callback if a request is pending.
func (f *FrameThrottle) Frame() {
	if !f.pending {
		return
	}
	f.pending = false
	f.fn()
}

func (f *FrameThrottle) Pending() bool { return f.pending }
