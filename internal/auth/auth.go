// Package auth implements the login and logout actions.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
)

// AuthError is returned when a submitted credential is rejected. Message is
// shown to the user as-is.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "auth: " + e.Message
}

// ErrInvalidPassword is returned by Login on a password mismatch.
var ErrInvalidPassword = &AuthError{Message: "Yanlış parol."}

// ErrNoPassword is returned by New when no admin password is configured.
var ErrNoPassword = errors.New("auth: admin password is not configured")

// Authenticator checks the admin password and writes session cookies.
type Authenticator struct {
	password []byte
	cookies  *session.Writer
	newToken func() string
}

// New creates an Authenticator. The password must be non-empty; there is no
// built-in default.
func New(adminPassword string, cookies *session.Writer) (*Authenticator, error) {
	if adminPassword == "" {
		return nil, ErrNoPassword
	}
	return &Authenticator{
		password: []byte(adminPassword),
		cookies:  cookies,
		newToken: session.NewToken,
	}, nil
}

// Login sets the session token and admin role cookies when password matches.
// On mismatch it returns ErrInvalidPassword and writes nothing.
func (a *Authenticator) Login(w http.ResponseWriter, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), a.password) != 1 {
		return ErrInvalidPassword
	}
	a.cookies.SetLogin(w, a.newToken(), domain.RoleAdmin)
	return nil
}

// Logout removes the token, role and company status cookies.
func (a *Authenticator) Logout(w http.ResponseWriter) {
	a.cookies.Clear(w)
}
