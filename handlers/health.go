package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibetorch/backend/go-services/internal/session"
)

// HealthHandler reports liveness plus session-store visibility: the active
// backend's session count and whether Redis was selected at startup.
type HealthHandler struct {
	sessions *session.Manager
}

func NewHealthHandler(sessions *session.Manager) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

func (h *HealthHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/api/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"sessions":        h.sessions.Count(c.Request.Context()),
		"redis_connected": h.sessions.RedisConnected(),
	})
}
