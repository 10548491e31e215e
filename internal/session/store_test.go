package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		UserID:      42,
		Login:       "alice",
		Name:        "Alice",
		Email:       "alice@example.com",
		AvatarURL:   "http://x/a.png",
		AccessToken: "tok_1",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	s := testSession()
	require.NoError(t, m.Set(ctx, "id1", s, 0))

	got, err := m.Get(ctx, "id1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(42), got.UserID)
	require.Equal(t, "tok_1", got.AccessToken)

	// stored record is a copy, not the caller's pointer
	s.Login = "mallory"
	got2, err := m.Get(ctx, "id1")
	require.NoError(t, err)
	require.Equal(t, "alice", got2.Login)

	n, err := m.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.NoError(t, m.Delete(ctx, "id1"))
	got3, err := m.Get(ctx, "id1")
	require.NoError(t, err)
	require.Nil(t, got3)
}

func TestMemoryStore_GetMiss(t *testing.T) {
	m := NewMemoryStore()
	got, err := m.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestNewID(t *testing.T) {
	id := NewID(42)
	require.True(t, strings.HasPrefix(id, "session_42_"), "unexpected id shape: %s", id)

	id2 := NewID(42)
	require.NotEqual(t, id, id2, "ids for the same user must be unique")
}

func TestPrincipalRedactsAccessToken(t *testing.T) {
	s := testSession()
	p := s.Principal()
	require.Equal(t, s.UserID, p.UserID)
	require.Equal(t, s.Login, p.Login)
	require.Equal(t, s.AvatarURL, p.AvatarURL)
	// Principal has no access token field at all; make sure the JSON
	// never grows one by accident.
	requireNoAccessTokenJSON(t, p)
}
