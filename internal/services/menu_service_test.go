package services

import (
	"testing"

	"qr_dine_backend/internal/models"
	"qr_dine_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuServiceWithMock(t *testing.T) (MenuService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMenuService(repositories.NewMenuRepository(db), db), mock
}

func TestDeleteMenuItemHardDeletesWhenUnreferenced(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM menu_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Delete("m-1", "r-1")

	require.NoError(t, err)
	assert.Equal(t, models.DeleteModeHard, result.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMenuItemSoftDeletesWhenReferencedByOrders(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("UPDATE menu_items SET available = false").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Delete("m-1", "r-1")

	require.NoError(t, err)
	assert.Equal(t, models.DeleteModeSoft, result.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The reference count can be stale by the time the DELETE runs; the
// database's RESTRICT foreign key is the backstop, and the service converts
// that rejection into a soft delete.
func TestDeleteMenuItemFallsBackToSoftDeleteOnForeignKey(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m-1"))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM menu_items").
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectExec("UPDATE menu_items SET available = false").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Delete("m-1", "r-1")

	require.NoError(t, err)
	assert.Equal(t, models.DeleteModeSoft, result.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM menu_items").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Delete("missing", "r-1")

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
