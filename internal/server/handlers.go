package server

import (
	"errors"
	"log"
	"net/http"
	"os"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/sam24eer/portfolio/internal/contact"
	"github.com/sam24eer/portfolio/internal/nav"
	"github.com/sam24eer/portfolio/internal/store"
	"github.com/sam24eer/portfolio/internal/theme"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// cookieDocument is the server-side theme surface: the root class is
// rendered on the next page load and the preference lives in a cookie.
type cookieDocument struct {
	c     *gin.Context
	class string
}

func (d *cookieDocument) Apply(t theme.Theme) { d.class = t.RootClass() }

func (d *cookieDocument) Persist(t theme.Theme) {
	d.c.SetSameSite(http.SameSiteLaxMode)
	d.c.SetCookie(theme.StorageKey, string(t), themeCookieMaxAge, "/", "", false, false)
}

func (d *cookieDocument) AddOverlay() theme.Overlay { return noOverlay{} }

// Animate never starts anything; there is nothing to animate server side.
func (d *cookieDocument) Animate(theme.Animation, func()) theme.Handle { return nil }

type noOverlay struct{}

func (noOverlay) Remove() {}

// toggleTheme switches the theme cookie. An explicit theme form value sets
// that theme instead of toggling.
func (s *Server) toggleTheme(c *gin.Context) {
	doc := &cookieDocument{c: c}
	ctrl := theme.NewController(doc, requestTheme(c), theme.Instant{}, theme.Viewport{})

	var next theme.Theme
	if v := c.PostForm("theme"); v != "" {
		next = ctrl.Set(theme.Parse(v))
	} else {
		next = ctrl.Toggle()
	}
	s.event(c, store.EventThemeToggle)

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, gin.H{"theme": next, "class": doc.class})
		return
	}
	c.Redirect(http.StatusSeeOther, returnTo(c.PostForm("section")))
}

// returnTo is the page URL that scrolls back to section, when it is one of ours.
func returnTo(section string) string {
	if slices.Contains(nav.SectionIDs, section) {
		return "/#" + section
	}
	return "/"
}

// submitContact hands the message to the visitor's own mail client. Nothing
// is sent from the server.
func (s *Server) submitContact(c *gin.Context) {
	var form contact.Fields
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("[%s] Error binding contact form: %v", c.GetString(requestIDKey), err)
	}
	if err := form.Validate(); err != nil {
		if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.renderPage(c, http.StatusBadRequest, form, "Please fill in your name, email, and message.")
		return
	}

	action := contact.Compose(form, s.cfg.MailTo)

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, gin.H{
			"subject": action.Subject,
			"body":    action.Body,
			"web_url": action.WebURL,
			"mailto":  action.Mailto,
		})
		return
	}

	if c.PostForm("fallback") == "mailto" {
		s.event(c, store.EventContactMailto)
		c.Redirect(http.StatusSeeOther, action.Mailto)
		return
	}
	s.event(c, store.EventContactWeb)
	c.Redirect(http.StatusSeeOther, action.WebURL)
}

// resume streams the resume PDF as a download.
func (s *Server) resume(c *gin.Context) {
	info, err := os.Stat(s.cfg.ResumePath)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[%s] Error reading resume: %v", c.GetString(requestIDKey), err)
		}
		s.event(c, store.EventResumeMissing)
		c.String(http.StatusNotFound, "Resume file not found.")
		return
	}

	s.event(c, store.EventResumeDownload)
	c.Header("Content-Type", "application/pdf")
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.FileAttachment(s.cfg.ResumePath, s.cfg.ResumeName)
}
