// AngelaMos | 2026
// repository_test.go

package activity

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func activityRows() *sqlmock.Rows {
	tenantID := int64(7)
	return sqlmock.NewRows([]string{
		"id", "operator_id", "booking_id", "user_id", "activity_type",
		"activity_description", "metadata", "created_at",
	}).AddRow(
		int64(1), tenantID, int64(3), int64(9), "status_change",
		"booking confirmed", []byte(`{"from":"pending"}`), time.Now(),
	)
}

func TestListScopedToTenant(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(
		"SELECT(.|\n)+FROM booking_activities(.|\n)*WHERE operator_id = \\$1" +
			"(.|\n)*ORDER BY created_at DESC",
	).
		WithArgs(int64(7)).
		WillReturnRows(activityRows())

	activities, err := repo.List(
		context.Background(), rbac.TenantScope(7), nil)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "status_change", activities[0].ActivityType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFiltersByBooking(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(
		"SELECT(.|\n)+FROM booking_activities(.|\n)*" +
			"WHERE operator_id = \\$1 AND booking_id = \\$2",
	).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(activityRows())

	bookingID := int64(3)
	activities, err := repo.List(
		context.Background(), rbac.TenantScope(7), &bookingID)
	require.NoError(t, err)
	assert.Len(t, activities, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnrestrictedHasNoTenantFilter(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(
		"SELECT(.|\n)+FROM booking_activities(.|\n)*ORDER BY created_at DESC",
	).
		WillReturnRows(activityRows())

	activities, err := repo.List(
		context.Background(), rbac.UnrestrictedScope(), nil)
	require.NoError(t, err)
	assert.Len(t, activities, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsIDAndTimestamp(t *testing.T) {
	repo, mock := newTestRepo(t)

	tenantID := int64(7)
	record := &Activity{
		TenantID:     &tenantID,
		BookingID:    3,
		UserID:       9,
		ActivityType: "note_added",
		Description:  "called the client",
	}

	mock.ExpectQuery("INSERT INTO booking_activities").
		WithArgs(
			&tenantID, int64(3), int64(9), "note_added",
			"called the client", nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(42), time.Now()))

	err := repo.Create(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, int64(42), record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}
