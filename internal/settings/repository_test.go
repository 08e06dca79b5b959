// AngelaMos | 2026
// repository_test.go

package settings

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func settingsRows(userID int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "email_notifications", "booking_alerts",
		"payment_alerts", "task_reminders", "marketing_emails",
		"daily_summary", "created_at", "updated_at",
	}).AddRow(
		int64(1), userID, true, true, true, true, false, false, now, now,
	)
}

func expectProvision(mock sqlmock.Sqlmock, userID int64) {
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO notification_settings (user_id) VALUES ($1)"+
			" ON CONFLICT (user_id) DO NOTHING",
	)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestGetByUserProvisionsDefaults(t *testing.T) {
	repo, mock := newTestRepo(t)

	expectProvision(mock, 7)
	mock.ExpectQuery("SELECT(.|\n)+FROM notification_settings").
		WithArgs(int64(7)).
		WillReturnRows(settingsRows(7))

	s, err := repo.GetByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UserID)
	assert.True(t, s.EmailNotifications)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second read must provision again without error: the insert is a no-op
// once the row exists.
func TestGetByUserIsIdempotent(t *testing.T) {
	repo, mock := newTestRepo(t)

	for range 2 {
		expectProvision(mock, 7)
		mock.ExpectQuery("SELECT(.|\n)+FROM notification_settings").
			WithArgs(int64(7)).
			WillReturnRows(settingsRows(7))
	}

	first, err := repo.GetByUser(context.Background(), 7)
	require.NoError(t, err)

	second, err := repo.GetByUser(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Absent fields must bind as NULL so COALESCE keeps the stored value, while
// an explicit false binds as false and overwrites.
func TestUpdateDistinguishesAbsentFromFalse(t *testing.T) {
	repo, mock := newTestRepo(t)

	expectProvision(mock, 7)
	mock.ExpectQuery("SELECT(.|\n)+FROM notification_settings").
		WithArgs(int64(7)).
		WillReturnRows(settingsRows(7))

	disabled := false
	mock.ExpectQuery("UPDATE notification_settings(.|\n)+COALESCE").
		WithArgs(int64(7), nil, nil, nil, nil, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "email_notifications", "booking_alerts",
			"payment_alerts", "task_reminders", "marketing_emails",
			"daily_summary", "created_at", "updated_at",
		}).AddRow(
			int64(1), int64(7), true, true, true, true, false, false,
			time.Now(), time.Now(),
		))

	s, err := repo.Update(context.Background(), 7, &UpdateRequest{
		MarketingEmails: &disabled,
	})
	require.NoError(t, err)
	assert.False(t, s.MarketingEmails)
	assert.True(t, s.EmailNotifications)

	assert.NoError(t, mock.ExpectationsWereMet())
}
