package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibetorch/backend/go-services/internal/config"
	"github.com/vibetorch/backend/go-services/internal/github"
	"github.com/vibetorch/backend/go-services/internal/session"
	"github.com/vibetorch/backend/go-services/pkg/logger"
	"github.com/vibetorch/backend/go-services/pkg/middleware"
)

// GithubCodeRequest is the OAuth callback payload from the frontend.
type GithubCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg      *config.Config
	github   *github.Client
	sessions *session.Manager
}

func NewAuthHandler(cfg *config.Config, gh *github.Client, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{cfg: cfg, github: gh, sessions: sessions}
}

// Register routes under /api/auth. The gate protects /user only; the
// exchange creates the session and logout must stay idempotent without one.
func (h *AuthHandler) Register(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	a := rg.Group("/api/auth")
	a.POST("/github", h.GithubOAuth)
	a.GET("/user", gate, h.CurrentUser)
	a.POST("/logout", h.Logout)
}

// GithubOAuth exchanges the authorization code, persists the session and
// issues the cookie. This is the only response that ever carries the raw
// access token.
func (h *AuthHandler) GithubOAuth(c *gin.Context) {
	var req GithubCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.github.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		var authErr *github.AuthError
		var netErr *github.NetworkError
		switch {
		case errors.As(err, &authErr):
			logger.Warnf("github oauth rejected: %s", authErr.Reason)
			c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Reason})
		case errors.As(err, &netErr):
			logger.Errorf("github oauth transport failure: %v", netErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Network error during GitHub authentication"})
		default:
			logger.Errorf("github oauth failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		}
		return
	}

	sess := &session.Session{
		UserID:      user.ID,
		Login:       user.Login,
		Name:        user.Name,
		Email:       user.Email,
		AvatarURL:   user.AvatarURL,
		AccessToken: token,
		CreatedAt:   time.Now().UTC(),
	}
	id := session.NewID(user.ID)
	h.sessions.Set(c.Request.Context(), id, sess)

	signed, err := session.Sign(h.cfg.Session.Secret, id)
	if err != nil {
		logger.Errorf("failed to sign session cookie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
		return
	}
	session.SetCookie(c.Writer, signed, h.cfg.Session.TTL)

	logger.Infof("github oauth success: user_id=%d login=%s", user.ID, user.Login)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"user":         sess.Principal(),
		"access_token": token,
	})
}

// CurrentUser returns the redacted principal for the active session.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": sess.Principal()})
}

// Logout deletes the session (when the cookie resolves to one) and clears
// the cookie. Always succeeds, even without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if id, verr := session.Verify(h.cfg.Session.Secret, cookie.Value); verr == nil {
			h.sessions.Delete(c.Request.Context(), id)
		}
	}

	session.ClearCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
