// Package server wires the portfolio page, its form endpoints and the admin
// routes onto a gin engine.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sam24eer/portfolio/internal/config"
	"github.com/sam24eer/portfolio/internal/content"
	"github.com/sam24eer/portfolio/internal/store"
	"github.com/sam24eer/portfolio/web"
)

const cleanupInterval = 24 * time.Hour

// Server is the portfolio HTTP server.
type Server struct {
	cfg        *config.Config
	content    *content.Holder
	store      *store.Store
	engine     *gin.Engine
	adminToken string
}

// New builds the server. st may be nil, in which case nothing is tracked and
// the admin routes are not registered.
func New(cfg *config.Config, holder *content.Holder, st *store.Store) (*Server, error) {
	s := &Server{cfg: cfg, content: holder, store: st}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	assets, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static assets: %w", err)
	}

	if st != nil && cfg.AdminEnabled() {
		if s.adminToken, err = store.RandomToken(); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID())
	if st != nil && cfg.TrackVisitors {
		r.Use(s.trackVisits())
	}
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(assets))
	r.Static("/photography", cfg.PhotoDir)

	r.GET("/", s.index)
	r.POST("/theme", s.toggleTheme)
	r.POST("/contact", s.submitContact)
	r.GET("/resume", s.resume)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.adminToken != "" {
		s.setupAdminRoutes(r)
	}
	r.NoRoute(s.publicFile)

	s.engine = r
	return s, nil
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.store != nil {
		go s.cleanupLoop(ctx)
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// cleanupLoop drops expired visit records at startup and once a day after.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		n, err := s.store.Cleanup(ctx)
		switch {
		case err != nil:
			log.Printf("Error cleaning up old visitor data: %v", err)
		case n > 0:
			log.Printf("Privacy cleanup: removed %d visitor records older than 12 months", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// event bumps an analytics counter. Failures are logged and otherwise ignored.
func (s *Server) event(c *gin.Context, name string) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordEvent(c.Request.Context(), name); err != nil {
		log.Printf("[%s] %v", c.GetString(requestIDKey), err)
	}
}

// publicFile serves root-level files such as portraits and the favicon from
// the static directory.
func (s *Server) publicFile(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "Not found.")
		return
	}
	name, ok := s.localPath(c.Request.URL.Path)
	if !ok || strings.HasSuffix(c.Request.URL.Path, "/") {
		c.String(http.StatusNotFound, "Not found.")
		return
	}
	c.File(name)
}

var funcMap = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}
