// AngelaMos | 2026
// handler.go

package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/middleware"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// Extension attaches extra routes inside a named resource's route block,
// for transitions the generic verbs cannot express.
type Extension struct {
	Resource string
	Register func(r chi.Router)
}

// RegisterRoutes mounts one route block per registered resource. Every route
// requires a bearer token; mutations are additionally gated on the
// module/action permission matrix.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	extensions ...Extension,
) {
	for i := range Registry() {
		res := &Registry()[i]

		r.Route("/"+res.Name, func(r chi.Router) {
			r.Use(authenticator)
			if res.SuperAdminOnly {
				r.Use(middleware.RequireSuperAdmin)
			}

			if res.Allows(OpList) {
				r.With(middleware.RequirePermission(
					res.Module, rbac.ActionView,
				)).Get("/", h.list(res))
			}
			if res.Allows(OpGet) {
				r.With(middleware.RequirePermission(
					res.Module, rbac.ActionView,
				)).Get("/{id}", h.getByID(res))
			}
			if res.Allows(OpCreate) {
				r.With(middleware.RequirePermission(
					res.Module, rbac.ActionCreate,
				)).Post("/", h.create(res))
			}
			if res.Allows(OpUpdate) {
				r.With(middleware.RequirePermission(
					res.Module, rbac.ActionEdit,
				)).Put("/{id}", h.update(res))
			}
			if res.Allows(OpDelete) {
				r.With(middleware.RequirePermission(
					res.Module, rbac.ActionDelete,
				)).Delete("/{id}", h.softDelete(res))
			}

			for _, ext := range extensions {
				if ext.Resource == res.Name {
					ext.Register(r)
				}
			}
		})
	}
}

func (h *Handler) list(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

		rows, err := h.engine.List(r.Context(), res, scope)
		if err != nil {
			storageError(w, "fetch", res, err)
			return
		}

		core.OK(w, rows)
	}
}

func (h *Handler) getByID(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

		row, err := h.engine.GetByID(r.Context(), res, scope, id)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, "record")
				return
			}
			storageError(w, "fetch", res, err)
			return
		}

		core.OK(w, row)
	}
}

func (h *Handler) create(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}

		scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

		row, err := h.engine.Create(r.Context(), res, scope, fields)
		if err != nil {
			switch {
			case core.IsAppError(err):
				core.JSONError(w, err)
			case errors.Is(err, core.ErrNoFields):
				core.BadRequest(w, "no fields provided")
			case errors.Is(err, core.ErrDuplicateKey):
				core.Conflict(w, res.Name)
			default:
				storageError(w, "create", res, err)
			}
			return
		}

		core.Created(w, row)
	}
}

func (h *Handler) update(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}

		scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

		row, err := h.engine.Update(r.Context(), res, scope, id, fields)
		if err != nil {
			switch {
			case core.IsAppError(err):
				core.JSONError(w, err)
			case errors.Is(err, core.ErrNoFields):
				core.BadRequest(w, "no fields to update")
			case errors.Is(err, core.ErrNotFound):
				core.NotFound(w, "record")
			case errors.Is(err, core.ErrDuplicateKey):
				core.Conflict(w, res.Name)
			default:
				storageError(w, "update", res, err)
			}
			return
		}

		core.OK(w, row)
	}
}

func (h *Handler) softDelete(res *Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}

		scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

		if err := h.engine.SoftDelete(r.Context(), res, scope, id); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.NotFound(w, "record")
				return
			}
			storageError(w, "delete", res, err)
			return
		}

		core.Message(w, "record deleted successfully")
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

func decodeFields(
	w http.ResponseWriter,
	r *http.Request,
) (map[string]any, bool) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		core.BadRequest(w, "invalid request body")
		return nil, false
	}
	return fields, true
}

// storageError logs the underlying failure with context and surfaces only a
// generic verb+resource message.
func storageError(
	w http.ResponseWriter,
	verb string,
	res *Resource,
	err error,
) {
	slog.Error("resource operation failed",
		"resource", res.Name,
		"operation", verb,
		"error", err,
	)

	core.JSONError(w, core.NewAppError(
		err,
		fmt.Sprintf("failed to %s %s", verb, res.Name),
		http.StatusInternalServerError,
		"STORAGE_FAILURE",
	))
}
