package theme

import "sync"

// Document is the rendering surface a Controller drives.
type Document interface {
	// Apply sets the root class for t.
	Apply(t Theme)
	// Persist stores t as the saved preference.
	Persist(t Theme)
	// AddOverlay inserts the temporary transition overlay.
	AddOverlay() Overlay
	// Animate starts a, calling done once when it finishes or is cancelled.
	// A nil Handle means the animation could not start.
	Animate(a Animation, done func()) Handle
}

type Overlay interface {
	Remove()
}

type Handle interface {
	Cancel()
}

type State int

const (
	Idle State = iota
	InFlight
)

func (s State) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Controller switches themes. At most one transition is in flight; toggling
// during a transition cancels it and applies the new theme immediately.
//
// Every transition gets a generation number. Completion callbacks from a
// superseded generation are ignored.
type Controller struct {
	mu       sync.Mutex
	doc      Document
	strategy Strategy
	viewport Viewport

	theme   Theme
	state   State
	gen     uint64
	anim    Handle
	overlay Overlay
}

// NewController applies initial to doc and returns an idle controller.
func NewController(doc Document, initial Theme, s Strategy, vp Viewport) *Controller {
	if s == nil {
		s = Instant{}
	}
	c := &Controller{doc: doc, strategy: s, viewport: vp, theme: initial}
	doc.Apply(initial)
	return c
}

func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Strategy() Strategy { return c.strategy }

// Set switches to t if it differs from the current theme.
func (c *Controller) Set(t Theme) Theme {
	if c.Theme() == t {
		return t
	}
	return c.Toggle()
}

// Toggle switches to the other theme and returns it.
func (c *Controller) Toggle() Theme {
	c.mu.Lock()
	next := c.theme.Other()

	if c.state == InFlight {
		anim, overlay := c.anim, c.overlay
		c.anim, c.overlay = nil, nil
		c.gen++
		c.state = Idle
		c.apply(next)
		c.mu.Unlock()

		if anim != nil {
			anim.Cancel()
		}
		if overlay != nil {
			overlay.Remove()
		}
		return next
	}

	if c.strategy.Kind() == KindInstant {
		c.apply(next)
		c.mu.Unlock()
		return next
	}

	c.gen++
	gen := c.gen
	c.state = InFlight
	plan := c.strategy.Plan(next, c.viewport)
	if plan.Overlay {
		c.overlay = c.doc.AddOverlay()
	}
	c.apply(next)
	c.mu.Unlock()

	// done may run synchronously, so the lock is not held here.
	handle := c.doc.Animate(plan, func() { c.finish(gen) })

	c.mu.Lock()
	switch {
	case c.gen != gen:
		// Superseded before the handle was recorded.
		c.mu.Unlock()
		if handle != nil {
			handle.Cancel()
		}
	case c.state == InFlight && handle == nil:
		overlay := c.settle()
		c.mu.Unlock()
		if overlay != nil {
			overlay.Remove()
		}
	case c.state == InFlight:
		c.anim = handle
		c.mu.Unlock()
	default:
		c.mu.Unlock()
	}
	return next
}

func (c *Controller) finish(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != InFlight {
		c.mu.Unlock()
		return
	}
	overlay := c.settle()
	c.mu.Unlock()
	if overlay != nil {
		overlay.Remove()
	}
}

// settle returns to Idle and hands back the overlay to remove. Callers hold mu.
func (c *Controller) settle() Overlay {
	overlay := c.overlay
	c.overlay = nil
	c.anim = nil
	c.state = Idle
	return overlay
}

func (c *Controller) apply(t Theme) {
	c.theme = t
	c.doc.Apply(t)
	c.doc.Persist(t)
}
