// AngelaMos | 2026
// handler.go

package notification

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/middleware"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

// Handler covers only the mark-as-read transition. Listing, creating and
// deleting notifications go through the generic resource routes.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes attaches the read transition inside the notifications resource
// block, which already enforces authentication.
func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.RequirePermission(
		rbac.ModuleDashboard, rbac.ActionEdit,
	)).Put("/{id}/read", h.MarkRead)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid id")
		return
	}

	scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

	n, err := h.repo.MarkRead(r.Context(), scope, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "notification")
			return
		}
		slog.Error("failed to mark notification read", "id", id, "error", err)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, n)
}
