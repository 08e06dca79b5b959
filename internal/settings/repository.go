// AngelaMos | 2026
// repository.go

package settings

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/tourops-backend/internal/core"
)

type Repository interface {
	GetByUser(ctx context.Context, userID int64) (*NotificationSettings, error)
	Update(
		ctx context.Context,
		userID int64,
		req *UpdateRequest,
	) (*NotificationSettings, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const settingsColumns = `
	id, user_id, email_notifications, booking_alerts, payment_alerts,
	task_reminders, marketing_emails, daily_summary, created_at, updated_at`

// GetByUser provisions a defaults row on first access. The insert races
// harmlessly with concurrent first reads: ON CONFLICT DO NOTHING makes it
// idempotent and the unique constraint on user_id guarantees a single row.
func (r *repository) GetByUser(
	ctx context.Context,
	userID int64,
) (*NotificationSettings, error) {
	provision := `
		INSERT INTO notification_settings (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, provision, userID); err != nil {
		return nil, fmt.Errorf("provision notification settings: %w", err)
	}

	query := `SELECT` + settingsColumns + `
		FROM notification_settings
		WHERE user_id = $1`

	var s NotificationSettings
	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		return nil, fmt.Errorf("get notification settings: %w", err)
	}

	return &s, nil
}

// Update applies only the fields present in the request. COALESCE keeps the
// stored value wherever the bound parameter is NULL, so absent and false are
// distinguishable.
func (r *repository) Update(
	ctx context.Context,
	userID int64,
	req *UpdateRequest,
) (*NotificationSettings, error) {
	if _, err := r.GetByUser(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		UPDATE notification_settings
		SET email_notifications = COALESCE($2, email_notifications),
		    booking_alerts      = COALESCE($3, booking_alerts),
		    payment_alerts      = COALESCE($4, payment_alerts),
		    task_reminders      = COALESCE($5, task_reminders),
		    marketing_emails    = COALESCE($6, marketing_emails),
		    daily_summary       = COALESCE($7, daily_summary),
		    updated_at          = NOW()
		WHERE user_id = $1
		RETURNING` + settingsColumns

	var s NotificationSettings
	err := r.db.GetContext(ctx, &s, query,
		userID,
		req.EmailNotifications,
		req.BookingAlerts,
		req.PaymentAlerts,
		req.TaskReminders,
		req.MarketingEmails,
		req.DailySummary,
	)
	if err != nil {
		return nil, fmt.Errorf("update notification settings: %w", err)
	}

	return &s, nil
}
