package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkotelnikov/invoicehub/internal/server/auth"
)

const (
	sessionCookieName = "session"
	principalKey      = "principal"
	requestIDKey      = "request_id"
)

// requestID attaches a unique id to every request, echoed back in the
// X-Request-Id header and picked up by the request logger.
func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// requireSession gates the invoice routes: a request without a valid
// session cookie is redirected to the login page before any handler runs.
// On success the principal is stored in the gin context.
func (s *HTTPServer) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		p, err := auth.ParseSessionToken(token, s.jwtSecret)
		if err != nil {
			// expired or tampered cookie: drop it and start over
			s.clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func principalFromContext(c *gin.Context) auth.Principal {
	return c.MustGet(principalKey).(auth.Principal)
}

// establishSession issues the session token for p and sets the cookie.
func (s *HTTPServer) establishSession(c *gin.Context, p auth.Principal) error {
	token, err := auth.GenerateSessionToken(p, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(s.sessionTTL.Seconds()), "/", "", false, true)
	return nil
}

func (s *HTTPServer) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
