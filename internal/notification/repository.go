// AngelaMos | 2026
// repository.go

package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Notification struct {
	ID               int64      `db:"id"                json:"id"`
	TenantID         *int64     `db:"operator_id"       json:"operator_id"`
	UserID           *int64     `db:"user_id"           json:"user_id"`
	Title            string     `db:"title"             json:"title"`
	Message          string     `db:"message"           json:"message"`
	NotificationType *string    `db:"notification_type" json:"notification_type"`
	EntityID         *int64     `db:"entity_id"         json:"entity_id"`
	IsRead           bool       `db:"is_read"           json:"is_read"`
	ReadAt           *time.Time `db:"read_at"           json:"read_at"`
	CreatedAt        time.Time  `db:"created_at"        json:"created_at"`
	DeletedAt        *time.Time `db:"deleted_at"        json:"-"`
}

type Repository interface {
	MarkRead(
		ctx context.Context,
		scope rbac.Scope,
		id int64,
	) (*Notification, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// MarkRead flips a notification to read and stamps read_at. Marking an
// already-read notification again is a no-op that still succeeds, so the
// operation is safe to retry.
func (r *repository) MarkRead(
	ctx context.Context,
	scope rbac.Scope,
	id int64,
) (*Notification, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND deleted_at IS NULL`
	args := []any{id}

	if !scope.Unrestricted() {
		args = append(args, scope.TenantID())
		query += fmt.Sprintf(" AND operator_id = $%d", len(args))
	}

	query += `
		RETURNING id, operator_id, user_id, title, message,
		          notification_type, entity_id, is_read, read_at,
		          created_at, deleted_at`

	var n Notification
	err := r.db.GetContext(ctx, &n, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mark notification read: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	return &n, nil
}
