// Package nav tracks which page section the visitor is viewing.
//
// Tracker, Scale and FrameThrottle are the reference model for the
// navigation code in web/static/js/site.js. The server seeds the first
// active section from a Tracker and hands the thresholds below to the script,
// which mirrors Update and Click on every scroll frame.
//
// A Tracker is owned by a single event loop and is not safe for concurrent use.
package nav

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Thresholds below are tuned against real scroll measurements; keep them exact.
const (
	// ActivationOffset is the lookahead added to the scroll position when
	// choosing the active section.
	ActivationOffset = 170.0
	// BottomTolerance forces the last section once the page is scrolled to
	// within this distance of the document bottom.
	BottomTolerance = 4.0
	// ArrivalTolerance clears a nav lock once the locked section's top is
	// this close to the viewport top.
	ArrivalTolerance = 28.0
	// LockDuration is how long a clicked target overrides scroll tracking.
	LockDuration = 1200 * time.Millisecond
	// MinScale is the smallest factor the nav pill shrinks to.
	MinScale = 0.84
)

// SectionIDs are the navigable sections in page order.
var SectionIDs = []string{"about", "projects", "experience", "skills", "hobby", "contact"}

// Item is a navigation link.
type Item struct {
	ID    string
	Href  string
	Label string
}

// Items builds nav links for ids, labelling each by its title-cased id.
func Items(ids []string) []Item {
	caser := cases.Title(language.English)
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Href: "#" + id, Label: caser.String(id)}
	}
	return items
}

// Layout is a measurement of the page at one instant.
type Layout struct {
	ScrollY        float64
	ViewportHeight float64
	DocumentHeight float64
	// Offsets maps section id to its offset from the document top. Sections
	// not present in the document are absent.
	Offsets map[string]float64
}

// ViewportTop is the distance from the viewport top to the section top.
func (l Layout) ViewportTop(id string) (float64, bool) {
	off, ok := l.Offsets[id]
	if !ok {
		return 0, false
	}
	return off - l.ScrollY, true
}

func (l Layout) atBottom() bool {
	if l.DocumentHeight <= 0 {
		return false
	}
	return l.DocumentHeight-(l.ScrollY+l.ViewportHeight) <= BottomTolerance
}

// Compute picks the section occupying the activation band, ignoring locks.
func Compute(sections []string, l Layout) string {
	if len(sections) == 0 {
		return ""
	}
	if l.atBottom() {
		return sections[len(sections)-1]
	}
	active := sections[0]
	for _, id := range sections {
		off, ok := l.Offsets[id]
		if !ok {
			continue
		}
		if l.ScrollY+ActivationOffset >= off {
			active = id
		}
	}
	return active
}

// Tracker holds the active section and any nav lock.
type Tracker struct {
	sections  []string
	active    string
	lock      string
	lockUntil time.Time

	// Now is the clock used for lock expiry.
	Now func() time.Time
}

// NewTracker returns a tracker whose active section is the first of sections.
func NewTracker(sections []string) *Tracker {
	t := &Tracker{sections: sections, Now: time.Now}
	if len(sections) > 0 {
		t.active = sections[0]
	}
	return t
}

func (t *Tracker) Active() string { return t.active }

// Locked returns the lock target, if a lock is held.
func (t *Tracker) Locked() (string, bool) {
	t.expire()
	return t.lock, t.lock != ""
}

func (t *Tracker) Known(id string) bool {
	for _, s := range t.sections {
		if s == id {
			return true
		}
	}
	return false
}

// Seed pre-selects the section named by a URL fragment. Unknown fragments
// are ignored.
func (t *Tracker) Seed(hash string) bool {
	id := strings.TrimPrefix(hash, "#")
	if id == "" || !t.Known(id) {
		return false
	}
	t.active = id
	return true
}

// Click records a navigation to href: the target becomes active at once and
// holds until LockDuration passes or the target arrives at the viewport top.
// A second click replaces the lock and restarts its timer.
func (t *Tracker) Click(href string) {
	id := strings.TrimPrefix(href, "#")
	t.lock = id
	t.lockUntil = t.Now().Add(LockDuration)
	t.active = id
}

func (t *Tracker) expire() {
	if t.lock != "" && !t.Now().Before(t.lockUntil) {
		t.lock = ""
	}
}

// Update recomputes the active section from a layout measurement.
func (t *Tracker) Update(l Layout) string {
	t.expire()
	if t.lock != "" {
		top, ok := l.ViewportTop(t.lock)
		switch {
		case !ok:
			t.lock = ""
		case math.Abs(top) <= ArrivalTolerance:
			t.lock = ""
		default:
			t.active = t.lock
			return t.active
		}
	}
	t.active = Compute(t.sections, l)
	return t.active
}

// Scale returns the factor that fits a nav of natural width into available
// width, never below MinScale.
func Scale(available, natural float64) float64 {
	if natural <= 0 || natural <= available {
		return 1
	}
	s := math.Max(MinScale, math.Min(1, available/natural))
	return math.Round(s*1000) / 1000
}
