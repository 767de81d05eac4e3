// Package session reads and writes the cookie-backed login session.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
)

const (
	TokenCookieName         = "auth_token"
	RoleCookieName          = "user_role"
	CompanyStatusCookieName = "company_status"
	DefaultTTL              = 24 * time.Hour
)

type contextKey int

const cookiesKey contextKey = iota

// Cookies is the cookie triple the route guard decides on. Empty strings mean
// the cookie was absent.
type Cookies struct {
	Token         string
	Role          string
	CompanyStatus string
}

// HasToken reports whether a session token is present.
func (c Cookies) HasToken() bool {
	return c.Token != ""
}

// RoleValue returns the parsed role.
func (c Cookies) RoleValue() domain.Role {
	return domain.ParseRole(c.Role)
}

// FromRequest extracts the session cookies from r.
func FromRequest(r *http.Request) Cookies {
	return Cookies{
		Token:         cookieValue(r, TokenCookieName),
		Role:          cookieValue(r, RoleCookieName),
		CompanyStatus: cookieValue(r, CompanyStatusCookieName),
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// FromContext returns the cookies stored by Middleware, or reads nothing.
func FromContext(ctx context.Context) Cookies {
	if v, ok := ctx.Value(cookiesKey).(Cookies); ok {
		return v
	}
	return Cookies{}
}

// WithCookies returns a copy of ctx carrying c.
func WithCookies(ctx context.Context, c Cookies) context.Context {
	return context.WithValue(ctx, cookiesKey, c)
}

// Middleware injects the request's session cookies into the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithCookies(r.Context(), FromRequest(r))))
	})
}

// Writer sets and clears session cookies on responses.
type Writer struct {
	Secure bool
	TTL    time.Duration
}

// NewWriter creates a cookie writer. Secure should be true in production.
func NewWriter(secure bool, ttl time.Duration) *Writer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Writer{Secure: secure, TTL: ttl}
}

// NewToken returns a fresh opaque session token.
func NewToken() string {
	return uuid.NewString()
}

// SetLogin writes the token and role cookies for a successful login.
func (cw *Writer) SetLogin(w http.ResponseWriter, token string, role domain.Role) {
	http.SetCookie(w, cw.cookie(TokenCookieName, token, true))
	http.SetCookie(w, cw.cookie(RoleCookieName, string(role), false))
}

// SetCompanyStatus writes the company status cookie.
func (cw *Writer) SetCompanyStatus(w http.ResponseWriter, status string) {
	http.SetCookie(w, cw.cookie(CompanyStatusCookieName, status, false))
}

// Clear expires all session cookies. Safe to call when none are set.
func (cw *Writer) Clear(w http.ResponseWriter) {
	for _, name := range []string{TokenCookieName, RoleCookieName, CompanyStatusCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name == TokenCookieName,
			SameSite: http.SameSiteLaxMode,
			Secure:   cw.Secure,
		})
	}
}

func (cw *Writer) cookie(name, value string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cw.TTL.Seconds()),
		Expires:  time.Now().Add(cw.TTL),
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
		Secure:   cw.Secure,
	}
}
