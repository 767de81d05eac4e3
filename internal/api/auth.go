package api

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/auth"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
)

// AuthHandler serves the admin login and logout actions.
type AuthHandler struct {
	auth *auth.Authenticator
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

// RegisterRoutes registers the auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Error *string `json:"error"`
}

// Login accepts the password as JSON or as a form field.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	password, err := readPassword(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	if err := h.auth.Login(w, password); err != nil {
		var authErr *auth.AuthError
		if errors.As(err, &authErr) {
			msg := authErr.Message
			JSON(w, http.StatusUnauthorized, loginResponse{Error: &msg})
			return
		}
		Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	JSON(w, http.StatusOK, loginResponse{})
}

// Logout clears the session cookies.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.auth.Logout(w)
	w.WriteHeader(http.StatusNoContent)
}

func readPassword(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return "", &bodyError{http.StatusBadRequest, "invalid form body"}
		}
		return r.PostFormValue("password"), nil
	default:
		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Password, nil
	}
}

// RequireRole rejects requests whose session lacks a token (401) or the
// given role (403).
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := session.FromContext(r.Context())
			if !c.HasToken() {
				Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if c.RoleValue() != role {
				Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
