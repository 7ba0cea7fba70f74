package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session_token"

	ctxUsername = "username"
	ctxToken    = "session_token"
)

// requireSession resolves the client token against the session store before
// any handler work happens. Missing, unknown, and expired tokens all get the
// same 401 without touching a repository.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {

		token, err := c.Cookie(sessionCookie)
		if err != nil {
			// Authorization header fallback for non-browser clients
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		session, ok := s.sessions.Get(token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(ctxUsername, session.Username)
		c.Set(ctxToken, token)
		c.Next()
	}
}

// noCache marks a response as non-cacheable so clients always see the
// current dataset.
func noCache(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
