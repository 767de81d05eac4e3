package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/store"
)

// AdminHandler serves admin-only endpoints.
type AdminHandler struct {
	repo store.Repository
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(repo store.Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

// RegisterRoutes registers admin routes behind RequireRole(admin).
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.With(RequireRole(domain.RoleAdmin)).Get("/api/admin/activity", h.ListActivity)
}

// ListActivity returns recent gateway activity, newest first.
func (h *AdminHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.repo.ListActivity(r.Context(), limit)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to list activity")
		return
	}
	JSON(w, http.StatusOK, entries)
}
