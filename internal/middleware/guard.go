package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/guard"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
)

// Paths the route guard never sees.
var (
	guardSkipPrefixes = []string{"/api/", "/static/", "/assets/", guard.GuidePendingURL + "/"}
	guardSkipExact    = map[string]struct{}{
		"/api":                {},
		"/favicon.ico":        {},
		guard.GuidePendingURL: {},
	}
)

// GuardApplies reports whether path is inside the route guard's matcher scope.
func GuardApplies(path string) bool {
	if _, ok := guardSkipExact[path]; ok {
		return false
	}
	for _, p := range guardSkipPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Guard redirects page requests according to guard.Decide. It reads cookies
// and never writes them.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GuardApplies(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		d := guard.Decide(r.URL.Path, session.FromRequest(r))
		if d.Continue() {
			next.ServeHTTP(w, r)
			return
		}

		slog.Debug("Route guard redirect", "path", r.URL.Path, "to", d.Redirect)
		http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
	})
}
