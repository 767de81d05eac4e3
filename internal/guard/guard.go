// Package guard decides whether a page request may proceed or must be
// redirected, based only on its path and session cookies.
package guard

import (
	"strings"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
)

// Well-known page paths.
const (
	AdminPrefix     = "/admin"
	AdminLoginPath  = "/admin/login"
	AdminHomePath   = "/admin"
	GuidePrefix     = "/guide"
	GuideHomePath   = "/guide"
	GuidePendingURL = "/guide/pending"
	LoginPath       = "/login"
	HomePath        = "/home"
)

var authEntryPaths = map[string]struct{}{
	"/login":          {},
	"/register":       {},
	"/register/user":  {},
	"/register/agent": {},
}

// Decision is the outcome of Decide. A zero Decision means continue.
type Decision struct {
	Redirect string
}

// Continue reports whether the request should reach its handler unchanged.
func (d Decision) Continue() bool {
	return d.Redirect == ""
}

func redirect(to string) Decision {
	return Decision{Redirect: to}
}

// Decide applies the access rules in order; the first match wins.
func Decide(path string, c session.Cookies) Decision {
	role := c.RoleValue()

	if underPrefix(path, AdminPrefix) && path != AdminLoginPath && !c.HasToken() {
		return redirect(AdminLoginPath)
	}

	if path == AdminLoginPath && role == domain.RoleAdmin {
		return redirect(AdminHomePath)
	}

	if underPrefix(path, GuidePrefix) {
		if role != domain.RoleAgent {
			return redirect(LoginPath)
		}
		if c.CompanyStatus != "" && c.CompanyStatus != domain.CompanyStatusActive {
			return redirect(GuidePendingURL)
		}
	}

	if IsAuthEntry(path) && c.HasToken() {
		return redirect(HomeFor(role))
	}

	return Decision{}
}

// HomeFor returns the landing page for a signed-in role.
func HomeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return AdminHomePath
	case domain.RoleAgent:
		return GuideHomePath
	default:
		return HomePath
	}
}

// IsAuthEntry reports whether path is a login or registration page.
func IsAuthEntry(path string) bool {
	_, ok := authEntryPaths[path]
	return ok
}

// underPrefix matches whole path segments, so "/administrator" is not under "/admin".
func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
