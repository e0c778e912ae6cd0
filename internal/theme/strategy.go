package theme

import (
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// Easing is shared by every animated transition.
const Easing = "cubic-bezier(0.22, 1, 0.36, 1)"

const (
	RevealDuration = 500 * time.Millisecond
	WipeDuration   = 420 * time.Millisecond
)

// Kind identifies a transition strategy.
type Kind string

const (
	KindInstant Kind = "instant"
	KindReveal  Kind = "reveal"
	KindWipe    Kind = "wipe"
)

// Capabilities are the platform signals the strategy is chosen from.
type Capabilities struct {
	ReducedMotion  bool
	ViewTransition bool
	// MobileWebKit marks iOS Safari, which drops frames on large clip-path
	// animations.
	MobileWebKit bool
}

var (
	iosDevice      = regexp.MustCompile(`iP(hone|ad|od)`)
	webKit         = regexp.MustCompile(`WebKit`)
	iosOtherEngine = regexp.MustCompile(`CriOS|FxiOS|EdgiOS|OPiOS`)
	chromeVersion  = regexp.MustCompile(`(?:Chrome|Edg)/(\d+)`)
	safariVersion  = regexp.MustCompile(`Version/(\d+)[.\d]* .*Safari/`)
)

// IsMobileWebKit reports whether ua is iOS Safari proper.
func IsMobileWebKit(ua string) bool {
	return iosDevice.MatchString(ua) && webKit.MatchString(ua) && !iosOtherEngine.MatchString(ua)
}

// supportsViewTransition guesses native view-transition support from the
// user agent. The browser script still feature-detects before using it.
func supportsViewTransition(ua string) bool {
	if m := chromeVersion.FindStringSubmatch(ua); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v >= 111
	}
	if m := safariVersion.FindStringSubmatch(ua); m != nil {
		v, _ := strconv.Atoi(m[1])
		return v >= 18
	}
	return false
}

// DetectRequest derives capabilities from request headers.
func DetectRequest(r *http.Request) Capabilities {
	ua := r.UserAgent()
	return Capabilities{
		ReducedMotion:  r.Header.Get("Sec-CH-Prefers-Reduced-Motion") == "reduce",
		ViewTransition: supportsViewTransition(ua),
		MobileWebKit:   IsMobileWebKit(ua),
	}
}

// Viewport is the visible area in CSS pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Animation is the plan for one transition. From and To are the keyframe
// values of Property.
type Animation struct {
	Kind     Kind
	Duration time.Duration
	Easing   string
	// Reveal: a circle growing from (OriginX, OriginY) to Radius, in pixels.
	OriginX, OriginY, Radius float64
	Property                 string
	From, To                 string
	// Overlay is set when the transition needs a temporary overlay element.
	Overlay bool
}

// Strategy plans how a theme change is shown.
type Strategy interface {
	Kind() Kind
	Plan(next Theme, vp Viewport) Animation
}

// Resolve selects the strategy once from the platform capabilities.
func Resolve(c Capabilities) Strategy {
	switch {
	case c.ReducedMotion:
		return Instant{}
	case c.MobileWebKit:
		return Wipe{}
	case c.ViewTransition:
		return Reveal{}
	default:
		return Instant{}
	}
}

// Instant applies the theme with no animation.
type Instant struct{}

func (Instant) Kind() Kind { return KindInstant }

func (Instant) Plan(Theme, Viewport) Animation {
	return Animation{Kind: KindInstant}
}

// Reveal is a circular clip reveal through a native view transition,
// anchored top-right for light and bottom-left for dark.
type Reveal struct{}

func (Reveal) Kind() Kind { return KindReveal }

func (Reveal) Plan(next Theme, vp Viewport) Animation {
	a := Animation{
		Kind:     KindReveal,
		Duration: RevealDuration,
		Easing:   Easing,
		Radius:   math.Hypot(vp.Width, vp.Height),
	}
	corner := "0% 100%"
	if next == Light {
		a.OriginX, a.OriginY = vp.Width, 0
		corner = "100% 0%"
	} else {
		a.OriginX, a.OriginY = 0, vp.Height
	}
	// Keyframes are relative to the snapshot box so they hold for any
	// viewport. A radius of 100*sqrt(2)% reaches the opposite corner.
	a.Property = "clip-path"
	a.From = "circle(0% at " + corner + ")"
	a.To = fmt.Sprintf("circle(%.4f%% at %s)", 100*math.Sqrt2, corner)
	return a
}

// Wipe slides a snapshot of the old background diagonally off screen using
// transforms only.
type Wipe struct{}

func (Wipe) Kind() Kind { return KindWipe }

func (Wipe) Plan(Theme, Viewport) Animation {
	return Animation{
		Kind:     KindWipe,
		Duration: WipeDuration,
		Easing:   Easing,
		Property: "transform",
		From:     "translate3d(0,0,0)",
		To:       "translate3d(-112%,112%,0)",
		Overlay:  true,
	}
}
