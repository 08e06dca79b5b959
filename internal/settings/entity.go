// AngelaMos | 2026
// entity.go

package settings

import "time"

// NotificationSettings is one row per user, auto-provisioned with defaults on
// first read.
type NotificationSettings struct {
	ID                 int64     `db:"id"                  json:"id"`
	UserID             int64     `db:"user_id"             json:"user_id"`
	EmailNotifications bool      `db:"email_notifications" json:"email_notifications"`
	BookingAlerts      bool      `db:"booking_alerts"      json:"booking_alerts"`
	PaymentAlerts      bool      `db:"payment_alerts"      json:"payment_alerts"`
	TaskReminders      bool      `db:"task_reminders"      json:"task_reminders"`
	MarketingEmails    bool      `db:"marketing_emails"    json:"marketing_emails"`
	DailySummary       bool      `db:"daily_summary"       json:"daily_summary"`
	CreatedAt          time.Time `db:"created_at"          json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"          json:"updated_at"`
}

// UpdateRequest uses pointers throughout: an absent field leaves the stored
// value alone, which is not the same thing as sending false.
type UpdateRequest struct {
	EmailNotifications *bool `json:"email_notifications"`
	BookingAlerts      *bool `json:"booking_alerts"`
	PaymentAlerts      *bool `json:"payment_alerts"`
	TaskReminders      *bool `json:"task_reminders"`
	MarketingEmails    *bool `json:"marketing_emails"`
	DailySummary       *bool `json:"daily_summary"`
}
