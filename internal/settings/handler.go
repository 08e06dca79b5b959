// AngelaMos | 2026
// handler.go

package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/middleware"
)

// Handler exposes per-user notification preferences. Settings are keyed on
// the authenticated user, so no permission gate beyond authentication is
// needed and no user can touch another user's row.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/notification-settings", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "authentication required")
		return
	}

	s, err := h.repo.GetByUser(r.Context(), userID)
	if err != nil {
		slog.Error("failed to load notification settings",
			"user_id", userID,
			"error", err,
		)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, s)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == 0 {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	s, err := h.repo.Update(r.Context(), userID, &req)
	if err != nil {
		slog.Error("failed to update notification settings",
			"user_id", userID,
			"error", err,
		)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, s)
}
