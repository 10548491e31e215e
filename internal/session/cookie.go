package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued after a successful exchange.
const CookieName = "vibetorch_session"

// The cookie carries the session identifier as the "sid" claim of an
// HS256-signed JWT. Expiry is enforced by the store TTL, not the cookie.

// Sign wraps a session identifier in a signed token suitable for the cookie.
func Sign(secret, id string) (string, error) {
	if secret == "" {
		return "", errors.New("session: signing secret not configured")
	}
	claims := jwt.MapClaims{
		"sid": id,
		"iat": time.Now().Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Verify checks the cookie token signature and returns the session
// identifier it carries.
func Verify(secret, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("session: unexpected claims type")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("session: token missing sid claim")
	}
	return sid, nil
}

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
