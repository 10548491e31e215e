package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibetorch/backend/go-services/internal/github"
	"github.com/vibetorch/backend/go-services/pkg/logger"
	"github.com/vibetorch/backend/go-services/pkg/middleware"
)

// RepoHandler proxies repository reads to GitHub with the session's token.
type RepoHandler struct {
	github *github.Client
}

func NewRepoHandler(gh *github.Client) *RepoHandler {
	return &RepoHandler{github: gh}
}

// Register routes under /api/github; every route sits behind the gate.
func (h *RepoHandler) Register(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	g := rg.Group("/api/github", gate)
	g.GET("/repositories", h.ListRepositories)
	g.GET("/repositories/:owner/:repo", h.GetRepository)
}

func (h *RepoHandler) ListRepositories(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	repos, err := h.github.ListRepositories(c.Request.Context(), sess.AccessToken)
	if err != nil {
		var authErr *github.AuthError
		var netErr *github.NetworkError
		switch {
		case errors.As(err, &authErr):
			// session exists but carries no token: corrupted, not absent
			logger.Errorf("repository listing without token: user_id=%d", sess.UserID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No access token found"})
		case errors.As(err, &netErr):
			logger.Errorf("repository listing transport failure: %v", netErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Network error while fetching repositories"})
		default:
			logger.Errorf("repository listing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repositories"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"repositories": repos})
}

func (h *RepoHandler) GetRepository(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	owner := c.Param("owner")
	repo := c.Param("repo")

	result, err := h.github.GetRepository(c.Request.Context(), sess.AccessToken, owner, repo)
	if err != nil {
		var authErr *github.AuthError
		var nfErr *github.NotFoundError
		var netErr *github.NetworkError
		switch {
		case errors.As(err, &authErr):
			logger.Errorf("repository fetch without token: user_id=%d", sess.UserID)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No access token found"})
		case errors.As(err, &nfErr):
			c.JSON(http.StatusNotFound, gin.H{"error": "Repository not found"})
		case errors.As(err, &netErr):
			logger.Errorf("repository fetch transport failure: %v", netErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Network error while fetching repository"})
		default:
			logger.Errorf("repository fetch failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch repository"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"repository": result})
}
