package session

import (
	"fmt"
	"time"
)

// DefaultTTL is how long a session lives in the durable backend.
// The in-memory fallback does not enforce TTLs.
const DefaultTTL = 24 * time.Hour

// Session binds one authenticated user-agent to a GitHub access token.
// Created after a successful OAuth exchange, deleted on logout, expired
// by Redis after DefaultTTL.
type Session struct {
	UserID      int64     `json:"user_id"`
	Login       string    `json:"login"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email,omitempty"`
	AvatarURL   string    `json:"avatar_url"`
	AccessToken string    `json:"access_token"`
	CreatedAt   time.Time `json:"created_at"`
}

// Principal is the client-visible view of a Session. It carries every
// field except the access token, which must never appear in a response
// body after the initial exchange.
type Principal struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal returns the redacted projection of the session.
func (s *Session) Principal() Principal {
	return Principal{
		UserID:    s.UserID,
		Login:     s.Login,
		Name:      s.Name,
		Email:     s.Email,
		AvatarURL: s.AvatarURL,
		CreatedAt: s.CreatedAt,
	}
}

// NewID mints an opaque session identifier for the given user.
func NewID(userID int64) string {
	return fmt.Sprintf("session_%d_%d", userID, time.Now().UTC().UnixNano())
}
