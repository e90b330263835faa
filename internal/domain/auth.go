// Package domain contains the core entities and ports of the client.
package domain

import "time"

// User identifies the authenticated account. Beyond identity the client
// treats it as opaque.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the locally held authentication state.
type Session struct {
	Token string
	User  *User
}

// Authenticated reports whether the session carries a token. A session with
// a token but no user record still counts as authenticated.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionStore defines the port for key-value session persistence. Get
// returns the empty string when the key is absent; absence is not an error.
type SessionStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// ConnectivitySource reports host connectivity. Subscribe registers a
// callback for online/offline transitions and returns a cancel function
// that must be safe to call more than once.
type ConnectivitySource interface {
	Online() bool
	Subscribe(fn func(online bool)) (cancel func())
}
