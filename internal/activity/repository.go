// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Repository interface {
	List(
		ctx context.Context,
		scope rbac.Scope,
		bookingID *int64,
	) ([]Activity, error)
	Create(ctx context.Context, activity *Activity) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(
	ctx context.Context,
	scope rbac.Scope,
	bookingID *int64,
) ([]Activity, error) {
	var conditions []string
	var args []any

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		conditions = append(conditions, fmt.Sprintf(
			"operator_id = $%d", len(args)))
	}

	if bookingID != nil {
		args = append(args, *bookingID)
		conditions = append(conditions, fmt.Sprintf(
			"booking_id = $%d", len(args)))
	}

	query := `
		SELECT id, operator_id, booking_id, user_id, activity_type,
		       activity_description, metadata, created_at
		FROM booking_activities`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var activities []Activity
	if err := r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return activities, nil
}

func (r *repository) Create(
	ctx context.Context,
	activity *Activity,
) error {
	query := `
		INSERT INTO booking_activities (
			operator_id, booking_id, user_id, activity_type,
			activity_description, metadata
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		activity.TenantID,
		activity.BookingID,
		activity.UserID,
		activity.ActivityType,
		activity.Description,
		activity.Metadata,
	).Scan(&activity.ID, &activity.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}
