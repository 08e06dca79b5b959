// AngelaMos | 2026
// repository_test.go

package notification

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tourops-backend/internal/core"
	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

func newTestRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		//nolint:errcheck // teardown
		_ = db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func notificationRows(isRead bool) *sqlmock.Rows {
	now := time.Now()
	tenantID := int64(7)
	userID := int64(9)
	return sqlmock.NewRows([]string{
		"id", "operator_id", "user_id", "title", "message",
		"notification_type", "entity_id", "is_read", "read_at",
		"created_at", "deleted_at",
	}).AddRow(
		int64(5), tenantID, userID, "New booking", "Booking #3 created",
		"booking", int64(3), isRead, now, now, nil,
	)
}

func TestMarkReadScopesToTenant(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(
		"UPDATE notifications(.|\n)+SET is_read = TRUE(.|\n)+"+
			"WHERE id = \\$1 AND deleted_at IS NULL AND operator_id = \\$2",
	).
		WithArgs(int64(5), int64(7)).
		WillReturnRows(notificationRows(true))

	n, err := repo.MarkRead(context.Background(), rbac.TenantScope(7), 5)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	require.NotNil(t, n.ReadAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadUnrestrictedSkipsTenantFilter(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(
		"UPDATE notifications(.|\n)+WHERE id = \\$1 AND deleted_at IS NULL",
	).
		WithArgs(int64(5)).
		WillReturnRows(notificationRows(true))

	n, err := repo.MarkRead(
		context.Background(), rbac.UnrestrictedScope(), 5)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadOtherTenantLooksMissing(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("UPDATE notifications").
		WithArgs(int64(5), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.MarkRead(context.Background(), rbac.TenantScope(8), 5)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
