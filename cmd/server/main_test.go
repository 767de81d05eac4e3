package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/activity"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/auth"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/config"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type stubGenerator struct{}

func (stubGenerator) GenerateJSON(context.Context, string, *genai.Schema) (string, error) {
	return `{"language":"English"}`, nil
}

func (stubGenerator) GenerateSpeech(context.Context, string) ([]byte, error) {
	return nil, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	gw, err := gateway.New(stubGenerator{})
	require.NoError(t, err)
	authn, err := auth.New("pw", session.NewWriter(false, time.Hour))
	require.NoError(t, err)

	cfg := &config.Config{AppEnv: "development"}
	return newRouter(cfg, repo, gw, activity.NewRecorder(repo, nil), authn)
}

func TestRouterGuard(t *testing.T) {
	h := testRouter(t)
	token := &http.Cookie{Name: session.TokenCookieName, Value: "tok"}
	admin := &http.Cookie{Name: session.RoleCookieName, Value: "admin"}

	tests := []struct {
		name         string
		path         string
		cookies      []*http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{"admin without session", "/admin/users", nil, http.StatusTemporaryRedirect, "/admin/login"},
		{"admin login page", "/admin/login", nil, http.StatusOK, ""},
		{"admin login when signed in", "/admin/login", []*http.Cookie{token, admin}, http.StatusTemporaryRedirect, "/admin"},
		{"guide without agent role", "/guide", nil, http.StatusTemporaryRedirect, "/login"},
		{"guide pending is never guarded", "/guide/pending", nil, http.StatusOK, ""},
		{"public page", "/", nil, http.StatusOK, ""},
		{"api is not guarded", "/api/languages", nil, http.StatusOK, ""},
		{"heartbeat", "/ping", nil, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestRouterAPI(t *testing.T) {
	h := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/detect-language", http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
