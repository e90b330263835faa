package app

import (
	"encoding/json"
	"errors"
	"sync"

	"taskdeck/internal/domain"

	"golang.org/x/oauth2"
)

// Session store keys.
const (
	sessionKeyToken = "token"
	sessionKeyUser  = "user"
)

// ErrNotAuthenticated indicates that no session token is available.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthManager owns the current authentication session. It restores the
// session from the store at construction and is the only writer of the
// token and user identity.
type AuthManager struct {
	mu    sync.Mutex
	store domain.SessionStore
	token string
	user  *domain.User
}

// NewAuthManager restores any persisted session from store. A stored token
// authenticates on its own: an unparseable user record is discarded rather
// than blocking token-based authentication.
func NewAuthManager(store domain.SessionStore) *AuthManager {
	m := &AuthManager{store: store}

	token, err := store.Get(sessionKeyToken)
	if err != nil || token == "" {
		return m
	}
	m.token = token

	if raw, err := store.Get(sessionKeyUser); err == nil && raw != "" {
		var u domain.User
		if json.Unmarshal([]byte(raw), &u) == nil {
			m.user = &u
		}
	}
	return m
}

// Login adopts the given token and user unconditionally and persists both.
// The in-memory session is updated even when persistence fails, so the
// returned error only signals that the session will not survive a restart.
func (m *AuthManager) Login(token string, user *domain.User) error {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()

	if err := m.store.Set(sessionKeyToken, token); err != nil {
		return err
	}
	if user == nil {
		return m.store.Remove(sessionKeyUser)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return m.store.Set(sessionKeyUser, string(raw))
}

// Logout clears the persisted and in-memory session. Logging out an already
// unauthenticated session is a no-op on observable state.
func (m *AuthManager) Logout() error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Remove(sessionKeyToken); err != nil {
		return err
	}
	return m.store.Remove(sessionKeyUser)
}

// IsAuthenticated reports whether a session token is held.
func (m *AuthManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Session returns a copy of the current session.
func (m *AuthManager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := domain.Session{Token: m.token}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	return s
}

// TokenSource adapts the manager for credential injection into the
// transport layer. The source reflects the live session: tokens are read at
// request time, never cached.
func (m *AuthManager) TokenSource() oauth2.TokenSource {
	return tokenSource{m}
}

type tokenSource struct {
	m *AuthManager
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	s := t.m.Session()
	if !s.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: s.Token, TokenType: "Bearer"}, nil
}
