package server

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sam24eer/portfolio/internal/contact"
	"github.com/sam24eer/portfolio/internal/content"
	"github.com/sam24eer/portfolio/internal/gallery"
	"github.com/sam24eer/portfolio/internal/nav"
	"github.com/sam24eer/portfolio/internal/theme"
)

// Client hints the page asks the browser for.
const acceptCH = "Sec-CH-Viewport-Width, Sec-CH-Prefers-Reduced-Motion"

// image is a resolved image chain ready for rendering.
type image struct {
	Src         template.URL
	Fallbacks   string
	Placeholder template.URL
	Alt         string
	Width       int
	Height      int
}

type lightboxView struct {
	Index       int
	Count       int
	Photo       content.Photo
	Display     string
	Placeholder template.URL
	Prev        int
	Next        int
}

// tuning carries the client-side thresholds to the browser script.
type tuning struct {
	ActivationOffset float64
	BottomTolerance  float64
	ArrivalTolerance float64
	LockMillis       int64
	MinScale         float64
	NarrowBreakpoint int
}

// transitionView is one planned theme animation as site.js plays it.
type transitionView struct {
	Property string `json:"property"`
	From     string `json:"from"`
	To       string `json:"to"`
	Duration int64  `json:"duration"`
	Easing   string `json:"easing"`
	Overlay  bool   `json:"overlay"`
}

// transitionPlans plans the change to each theme with s. Instant changes
// need no plan.
func transitionPlans(s theme.Strategy) map[theme.Theme]transitionView {
	if s.Kind() == theme.KindInstant {
		return nil
	}
	plans := make(map[theme.Theme]transitionView, 2)
	for _, t := range []theme.Theme{theme.Light, theme.Dark} {
		a := s.Plan(t, theme.Viewport{})
		plans[t] = transitionView{
			Property: a.Property,
			From:     a.From,
			To:       a.To,
			Duration: a.Duration.Milliseconds(),
			Easing:   a.Easing,
			Overlay:  a.Overlay,
		}
	}
	return plans
}

type pageData struct {
	Site        *content.Site
	Nav         []nav.Item
	Active      string
	Theme       theme.Theme
	Strategy    theme.Kind
	Transitions map[theme.Theme]transitionView
	Tuning      tuning
	Hero        image
	About       image
	Grid        gallery.Grid
	Slides      []gallery.Slide
	Lightbox    *lightboxView
	MailWeb     string
	Form        contact.Fields
	FormErr     string
	Year        int
}

var clientTuning = tuning{
	ActivationOffset: nav.ActivationOffset,
	BottomTolerance:  nav.BottomTolerance,
	ArrivalTolerance: nav.ArrivalTolerance,
	LockMillis:       nav.LockDuration.Milliseconds(),
	MinScale:         nav.MinScale,
	NarrowBreakpoint: gallery.NarrowBreakpoint,
}

func (s *Server) index(c *gin.Context) {
	s.renderPage(c, http.StatusOK, contact.Fields{}, "")
}

// renderPage renders the whole page for the current request state.
func (s *Server) renderPage(c *gin.Context, status int, form contact.Fields, formErr string) {
	site := s.content.Site()

	tracker := nav.NewTracker(nav.SectionIDs)
	tracker.Seed(c.Query("section"))
	if formErr != "" {
		tracker.Seed("contact")
	}

	strategy := theme.Resolve(theme.DetectRequest(c.Request))
	data := pageData{
		Site:        site,
		Nav:         nav.Items(nav.SectionIDs),
		Active:      tracker.Active(),
		Theme:       requestTheme(c),
		Strategy:    strategy.Kind(),
		Transitions: transitionPlans(strategy),
		Tuning:      clientTuning,
		Hero:        s.resolveImage(site.Hero.Portrait),
		About:       s.resolveImage(site.About.Portrait),
		Grid:        gallery.Layout(site.Photos, viewportWidth(c)),
		Slides:      gallery.Slides(site.Photos),
		MailWeb:     contact.WebComposeURL(s.cfg.MailTo, "", ""),
		Form:        form,
		FormErr:     formErr,
		Year:        time.Now().Year(),
	}

	if i, err := strconv.Atoi(c.Query("photo")); err == nil {
		lb := gallery.NewLightbox(len(site.Photos))
		if lb.Open(i) {
			prev, next := gallery.Neighbors(i, len(site.Photos))
			data.Lightbox = &lightboxView{
				Index:       i,
				Count:       len(site.Photos),
				Photo:       site.Photos[i],
				Display:     gallery.DisplaySrc(site.Photos[i].Src),
				Placeholder: gallery.Placeholder(site.Photos[i]).DataURI(),
				Prev:        prev,
				Next:        next,
			}
			data.Active = "hobby"
			for j, src := range lb.Prefetch(site.Photos) {
				if j == 0 {
					c.Writer.Header().Add("Link", fmt.Sprintf("<%s>; rel=preload; as=image", src))
					continue
				}
				c.Writer.Header().Add("Link", fmt.Sprintf("<%s>; rel=prefetch; as=image", src))
			}
		}
	}

	c.Header("Accept-CH", acceptCH)
	c.Header("Vary", "Cookie, "+acceptCH)
	c.HTML(status, "index.html", data)
}

// requestTheme reads the persisted theme cookie.
func requestTheme(c *gin.Context) theme.Theme {
	v, _ := c.Cookie(theme.StorageKey)
	return theme.Parse(v)
}

// viewportWidth comes from the viewport client hint, or the vw query value
// when the browser does not send hints. Zero means unknown.
func viewportWidth(c *gin.Context) int {
	for _, v := range []string{c.GetHeader("Sec-CH-Viewport-Width"), c.Query("vw")} {
		if w, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

func (s *Server) resolveImage(chain content.ImageChain) image {
	src, rest := chain.Resolve(func(src string) bool {
		_, ok := s.localPath(src)
		return ok
	})
	return image{
		Src:         src,
		Fallbacks:   strings.Join(rest, " "),
		Placeholder: chain.Placeholder.DataURI(),
		Alt:         chain.Alt,
		Width:       chain.Placeholder.Width,
		Height:      chain.Placeholder.Height,
	}
}

// localPath maps a site path onto a regular file under the static directory.
func (s *Server) localPath(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	name := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(clean))
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}
