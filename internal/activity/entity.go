// AngelaMos | 2026
// entity.go

package activity

import (
	"encoding/json"
	"time"
)

// Activity is an append-only record of something that happened to a booking.
// There is no update or delete path anywhere: immutability is enforced by
// omission.
type Activity struct {
	ID           int64           `db:"id"            json:"id"`
	TenantID     *int64          `db:"operator_id"   json:"operator_id"`
	BookingID    int64           `db:"booking_id"    json:"booking_id"`
	UserID       int64           `db:"user_id"       json:"user_id"`
	ActivityType string          `db:"activity_type" json:"activity_type"`
	Description  string          `db:"activity_description" json:"activity_description"`
	Metadata     json.RawMessage `db:"metadata"      json:"metadata,omitempty"`
	CreatedAt    time.Time       `db:"created_at"    json:"created_at"`
}
