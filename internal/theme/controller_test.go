package theme

import "testing"

type fakeOverlay struct {
	doc     *fakeDocument
	removed bool
}

func (o *fakeOverlay) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	o.doc.overlays--
}

type fakeAnimation struct {
	done      func()
	cancelled bool
	finished  bool
}

func (a *fakeAnimation) Cancel() {
	if a.cancelled || a.finished {
		return
	}
	a.cancelled = true
	a.done()
}

// finish completes the animation as the browser would.
func (a *fakeAnimation) finish() {
	if a.cancelled || a.finished {
		return
	}
	a.finished = true
	a.done()
}

type fakeDocument struct {
	class     string
	stored    string
	overlays  int
	anims     []*fakeAnimation
	noAnimate bool
	syncDone  bool
}

func (d *fakeDocument) Apply(t Theme)   { d.class = t.RootClass() }
func (d *fakeDocument) Persist(t Theme) { d.stored = string(t) }

func (d *fakeDocument) AddOverlay() Overlay {
	d.overlays++
	return &fakeOverlay{doc: d}
}

func (d *fakeDocument) Animate(a Animation, done func()) Handle {
	if d.noAnimate {
		return nil
	}
	anim := &fakeAnimation{done: done}
	d.anims = append(d.anims, anim)
	if d.syncDone {
		anim.finish()
	}
	return anim
}

func (d *fakeDocument) last() *fakeAnimation { return d.anims[len(d.anims)-1] }

func assertSettled(t *testing.T, c *Controller, d *fakeDocument, want Theme) {
	t.Helper()
	if c.Theme() != want {
		t.Errorf("theme: got %q, want %q", c.Theme(), want)
	}
	if Parse(d.stored) != want {
		t.Errorf("persisted: got %q, want %q", d.stored, want)
	}
	if d.class != want.RootClass() {
		t.Errorf("root class: got %q, want %q", d.class, want.RootClass())
	}
	if d.overlays != 0 {
		t.Errorf("leftover overlays: %d", d.overlays)
	}
	if c.State() != Idle {
		t.Errorf("state: got %v, want idle", c.State())
	}
}

func TestInstantToggle(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Instant{}, Viewport{})

	if got := c.Toggle(); got != Light {
		t.Fatalf("toggle returned %q", got)
	}
	assertSettled(t, c, d, Light)
	if len(d.anims) != 0 {
		t.Error("instant strategy must not animate")
	}
}

func TestRevealCompletes(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Reveal{}, Viewport{Width: 100, Height: 100})

	c.Toggle()
	if c.State() != InFlight {
		t.Fatalf("expected in-flight, got %v", c.State())
	}
	if d.class != "light" {
		t.Error("theme is applied when the transition starts")
	}
	d.last().finish()
	assertSettled(t, c, d, Light)
}

func TestWipeRemovesOverlayOnFinish(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Wipe{}, Viewport{})

	c.Toggle()
	if d.overlays != 1 {
		t.Fatalf("expected one overlay during wipe, got %d", d.overlays)
	}
	d.last().finish()
	assertSettled(t, c, d, Light)
}

func TestRapidToggleCancels(t *testing.T) {
	for _, s := range []Strategy{Reveal{}, Wipe{}} {
		t.Run(string(s.Kind()), func(t *testing.T) {
			d := &fakeDocument{}
			c := NewController(d, Dark, s, Viewport{Width: 10, Height: 10})

			c.Toggle() // dark -> light, animating
			first := d.last()
			c.Toggle() // light -> dark, before the first finishes

			if !first.cancelled {
				t.Error("running animation should be cancelled")
			}
			if len(d.anims) != 1 {
				t.Errorf("second toggle must not start an animation, got %d", len(d.anims))
			}
			assertSettled(t, c, d, Dark)

			// A late completion from the cancelled run changes nothing.
			first.done()
			assertSettled(t, c, d, Dark)
		})
	}
}

func TestManyRapidToggles(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Wipe{}, Viewport{})

	want := Dark
	for i := 0; i < 7; i++ {
		want = c.Toggle()
	}
	for _, a := range d.anims {
		a.finish()
	}
	assertSettled(t, c, d, want)
	if want != Light {
		t.Errorf("seven toggles from dark should end light, got %q", want)
	}
}

func TestStaleCompletionIgnored(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Reveal{}, Viewport{})

	c.Toggle()
	stale := d.last()
	c.Toggle() // cancel, now idle on dark
	c.Toggle() // new reveal to light
	fresh := d.last()

	stale.done()
	if c.State() != InFlight {
		t.Error("stale completion must not end the current transition")
	}
	fresh.finish()
	assertSettled(t, c, d, Light)
}

func TestAnimateUnavailable(t *testing.T) {
	d := &fakeDocument{noAnimate: true}
	c := NewController(d, Dark, Wipe{}, Viewport{})

	c.Toggle()
	assertSettled(t, c, d, Light)
}

func TestSynchronousCompletion(t *testing.T) {
	d := &fakeDocument{syncDone: true}
	c := NewController(d, Light, Wipe{}, Viewport{})

	c.Toggle()
	assertSettled(t, c, d, Dark)
}

func TestSet(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, Instant{}, Viewport{})

	if c.Set(Dark) != Dark || d.stored != "" {
		t.Error("setting the current theme should be a no-op")
	}
	c.Set(Light)
	assertSettled(t, c, d, Light)
}

func TestNilStrategy(t *testing.T) {
	d := &fakeDocument{}
	c := NewController(d, Dark, nil, Viewport{})
	if c.Strategy().Kind() != KindInstant {
		t.Error("nil strategy should default to instant")
	}
}
