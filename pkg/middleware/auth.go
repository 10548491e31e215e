package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibetorch/backend/go-services/internal/session"
	"github.com/vibetorch/backend/go-services/pkg/logger"
)

const sessionContextKey = "session"

// CurrentSession returns the session attached by RequireSession, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// RequireSession resolves the caller's principal from the signed session
// cookie and aborts with 401 before any provider I/O when there is none.
func RequireSession(secret string, store *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		id, err := session.Verify(secret, cookie.Value)
		if err != nil {
			logger.Debugf("rejecting session cookie: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		sess := store.Get(c.Request.Context(), id)
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}
