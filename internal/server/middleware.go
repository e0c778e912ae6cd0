package server

import (
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags every request with an id, reusing a well-formed incoming one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

var untrackedPrefixes = []string{
	"/static/",
	"/photography/",
	"/admin",
	"/healthz",
	"/favicon",
}

// trackVisits records page views with hashed client addresses. Assets, files,
// admin pages and visitors sending Do Not Track are skipped.
func (s *Server) trackVisits() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(reqPath, p) {
				c.Next()
				return
			}
		}
		if path.Ext(reqPath) != "" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		c.Next()

		if c.Request.Method != http.MethodGet || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := s.store.RecordVisit(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(), reqPath); err != nil {
			log.Printf("[%s] Error recording visitor: %v", c.GetString(requestIDKey), err)
		}
	}
}
