package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t, stubTokenOK, stubUserOK)

	w := app.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(0), resp["sessions"])
	assert.Equal(t, false, resp["redis_connected"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestHealth_CountsSessions(t *testing.T) {
	app := newTestApp(t, stubTokenOK, stubUserOK)
	loggedIn(t, app, "tok_1")

	w := app.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["sessions"])
}
