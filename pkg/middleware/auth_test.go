package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/vibetorch/backend/go-services/internal/session"
)

const testSecret = "test-secret"

func gatedRouter(t *testing.T, store *session.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/me", RequireSession(testSecret, store), func(c *gin.Context) {
		s := CurrentSession(c)
		require.NotNil(t, s)
		c.JSON(http.StatusOK, gin.H{"login": s.Login})
	})
	return g
}

func TestRequireSession_NoCookie(t *testing.T) {
	g := gatedRouter(t, session.NewManager(nil, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not authenticated")
}

func TestRequireSession_TamperedCookie(t *testing.T) {
	g := gatedRouter(t, session.NewManager(nil, 0))

	token, err := session.Sign("some-other-secret", "session_42_1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_UnknownSession(t *testing.T) {
	g := gatedRouter(t, session.NewManager(nil, 0))

	token, err := session.Sign(testSecret, "session_42_1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_ValidSession(t *testing.T) {
	store := session.NewManager(nil, 0)
	id := "session_42_1"
	store.Set(context.Background(), id, &session.Session{
		UserID:      42,
		Login:       "alice",
		AccessToken: "tok_1",
		CreatedAt:   time.Now().UTC(),
	})
	g := gatedRouter(t, store)

	token, err := session.Sign(testSecret, id)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "alice")
}
