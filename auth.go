package databoard

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/xid"
)

var signingKey = []byte(os.Getenv("BOARD_SIGNING_KEY"))

var ErrInvalidSession = errors.New("invalid session")

type contextKey string

const passwordContextKey = contextKey("password")

// sessionStore keeps the secret of every open owner session so handlers
// can replay it into Board operations. Sessions live until logout or
// process exit.
type sessionStore struct {
	mu      sync.Mutex
	secrets map[string]string
}

// NewSessionStore returns an empty store for the entrypoint to share
// between LoginHandler and RequireOwner.
func NewSessionStore() *sessionStore {
	return &sessionStore{secrets: map[string]string{}}
}

func (s *sessionStore) create(password string) string {
	id := xid.New().String()
	s.mu.Lock()
	s.secrets[id] = password
	s.mu.Unlock()
	return id
}

func (s *sessionStore) lookup(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	password, ok := s.secrets[id]
	return password, ok
}

func (s *sessionStore) drop(id string) {
	s.mu.Lock()
	delete(s.secrets, id)
	s.mu.Unlock()
}

func newSessionToken(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{Issuer: "databoard", Subject: sessionID})
	return token.SignedString(signingKey)
}

func parseSessionToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// RequireOwner admits only requests carrying a bearer token for an open
// session, and hands the session's board secret to the wrapped handler
// through the request context.
func RequireOwner(h http.Handler, sessions *sessionStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sessionID, err := parseSessionToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		password, ok := sessions.lookup(sessionID)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), passwordContextKey, password)
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

func passwordFromContext(ctx context.Context) string {
	password, _ := ctx.Value(passwordContextKey).(string)
	return password
}

// LogoutHandler closes the session named by the request's bearer token.
func LogoutHandler(sessions *sessionStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sessionID, err := parseSessionToken(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sessions.drop(sessionID)
		w.WriteHeader(http.StatusNoContent)
	})
}
