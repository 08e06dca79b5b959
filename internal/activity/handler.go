// AngelaMos | 2026
// handler.go

package activity

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/middleware"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type CreateRequest struct {
	BookingID    int64           `json:"booking_id"           validate:"required,min=1"`
	ActivityType string          `json:"activity_type"        validate:"required,max=100"`
	Description  string          `json:"activity_description" validate:"required"`
	Metadata     json.RawMessage `json:"metadata"`
}

type Handler struct {
	repo     Repository
	validate *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/activities", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequirePermission(
			rbac.ModuleBookings, rbac.ActionView,
		)).Get("/", h.List)

		r.With(middleware.RequirePermission(
			rbac.ModuleBookings, rbac.ActionCreate,
		)).Post("/", h.Create)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scope := rbac.ResolveScope(middleware.GetIdentity(r.Context()))

	var bookingID *int64
	if raw := r.URL.Query().Get("booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			core.BadRequest(w, "invalid booking_id")
			return
		}
		bookingID = &id
	}

	activities, err := h.repo.List(r.Context(), scope, bookingID)
	if err != nil {
		slog.Error("failed to list activities", "error", err)
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, activities)
}

// Create appends one activity record. The actor and tenant are taken from the
// authenticated identity, never from the request body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	record := &Activity{
		TenantID:     identity.TenantID,
		BookingID:    req.BookingID,
		UserID:       identity.UserID,
		ActivityType: req.ActivityType,
		Description:  req.Description,
		Metadata:     req.Metadata,
	}

	if err := h.repo.Create(r.Context(), record); err != nil {
		slog.Error("failed to record activity",
			"booking_id", req.BookingID,
			"error", err,
		)
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, record)
}
