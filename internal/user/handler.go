// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/middleware"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Handler struct {
	service  Service
	validate *validator.Validate
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequirePermission(
			rbac.ModuleUsers, rbac.ActionView,
		)).Get("/", h.List)

		r.With(middleware.RequirePermission(
			rbac.ModuleUsers, rbac.ActionCreate,
		)).Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(middleware.RequireSelfOrAdmin("id")).Get("/", h.Get)
			r.With(middleware.RequireSelfOrAdmin("id")).
				Put("/password", h.ChangePassword)

			r.With(middleware.RequirePermission(
				rbac.ModuleUsers, rbac.ActionEdit,
			)).Put("/", h.Update)

			r.With(middleware.RequirePermission(
				rbac.ModuleUsers, rbac.ActionDelete,
			)).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetIdentity(r.Context())

	users, err := h.service.List(r.Context(), actor)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, users)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	actor := middleware.GetIdentity(r.Context())

	u, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		h.writeServiceError(w, err, "fetch user")
		return
	}

	core.OK(w, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetIdentity(r.Context())

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.writeServiceError(w, err, "create user")
		return
	}

	core.Created(w, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	actor := middleware.GetIdentity(r.Context())

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.writeServiceError(w, err, "update user")
		return
	}

	core.OK(w, u)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	actor := middleware.GetIdentity(r.Context())

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ChangePassword(r.Context(), actor, id, &req); err != nil {
		h.writeServiceError(w, err, "change password")
		return
	}

	core.Message(w, "password updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	actor := middleware.GetIdentity(r.Context())

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.writeServiceError(w, err, "delete user")
		return
	}

	core.Message(w, "user deleted successfully")
}

func (h *Handler) writeServiceError(
	w http.ResponseWriter,
	err error,
	operation string,
) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "user")
	case errors.Is(err, ErrEmailExists):
		core.Conflict(w, "email")
	case errors.Is(err, ErrRoleNotAssignable):
		core.Forbidden(w,
			"you cannot manage a user with an equal or higher role")
	case errors.Is(err, ErrSelfDelete):
		core.BadRequest(w, "you cannot delete your own account")
	default:
		slog.Error("user operation failed",
			"operation", operation,
			"error", err,
		)
		core.InternalServerError(w, err)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
