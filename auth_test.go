package databoard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := newSessionToken("session-id")
	require.NoError(t, err)

	subject, err := parseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-id", subject)
}

func TestParseSessionToken_RejectsGarbage(t *testing.T) {
	_, err := parseSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = parseSessionToken("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionStore(t *testing.T) {
	sessions := NewSessionStore()

	id := sessions.create("secret1")
	password, ok := sessions.lookup(id)
	require.True(t, ok)
	assert.Equal(t, "secret1", password)

	sessions.drop(id)
	_, ok = sessions.lookup(id)
	assert.False(t, ok)
}

func TestRequireOwner(t *testing.T) {
	sessions := NewSessionStore()
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = passwordFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireOwner(inner, sessions)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/categories", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/categories", nil)
		r.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		token, err := newSessionToken(sessions.create("secret1"))
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, "/v1/categories", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "secret1", seen)
	})

	t.Run("closed session", func(t *testing.T) {
		id := sessions.create("secret1")
		token, err := newSessionToken(id)
		require.NoError(t, err)
		sessions.drop(id)

		r := httptest.NewRequest(http.MethodPost, "/v1/categories", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	sessions := NewSessionStore()
	id := sessions.create("secret1")
	token, err := newSessionToken(id)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodDelete, "/v1/sessions", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	LogoutHandler(sessions).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, ok := sessions.lookup(id)
	assert.False(t, ok)
}
