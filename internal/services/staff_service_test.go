package services

import (
	"testing"
	"time"

	"qr_dine_backend/internal/repositories"
	"qr_dine_backend/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newStaffServiceWithMock(t *testing.T) (StaffService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStaffService(repositories.NewStaffRepository(db), db), mock
}

func staffRows(t *testing.T, password string, active bool) *sqlmock.Rows {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "restaurant_id", "name", "username", "password_hash", "role",
		"phone", "permissions", "active", "created_at", "updated_at",
	}).AddRow(
		"s-1", "r-1", "Asha", "asha", string(hash), "waiter",
		nil, []byte(`{}`), active, now, now,
	)
}

func TestStaffLoginIssuesTokenAndStoresItsHash(t *testing.T) {
	utils.InitJWT("test-secret")
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff").
		WillReturnRows(staffRows(t, "correct-horse", true))
	mock.ExpectExec("DELETE FROM staff_sessions WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO staff_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE staff_sessions SET token_hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Login(StaffLoginRequest{
		RestaurantID: "r-1",
		Username:     "asha",
		Password:     "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "s-1", resp.Staff.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A wrong password must fail before any session row is written.
func TestStaffLoginWrongPasswordCreatesNoSession(t *testing.T) {
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff").
		WillReturnRows(staffRows(t, "correct-horse", true))

	_, err := svc.Login(StaffLoginRequest{
		RestaurantID: "r-1",
		Username:     "asha",
		Password:     "battery-staple",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffLoginInactiveAccountRejected(t *testing.T) {
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff").
		WillReturnRows(staffRows(t, "correct-horse", false))

	_, err := svc.Login(StaffLoginRequest{
		RestaurantID: "r-1",
		Username:     "asha",
		Password:     "correct-horse",
	})

	assert.ErrorIs(t, err, ErrStaffInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func sessionRows(staffID, tokenHash string, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "staff_id", "token_hash", "expires_at", "created_at",
	}).AddRow("sess-1", staffID, tokenHash, expiresAt, time.Now())
}

// A token signed with the right key but not the one issued at login must not
// ride an existing session row.
func TestValidateSessionRejectsMismatchedToken(t *testing.T) {
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff_sessions").
		WillReturnRows(sessionRows("s-1", hashToken("issued-token"), time.Now().Add(time.Hour)))

	_, err := svc.ValidateSession("sess-1", "s-1", "some-other-token")

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSessionAcceptsIssuedToken(t *testing.T) {
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff_sessions").
		WillReturnRows(sessionRows("s-1", hashToken("issued-token"), time.Now().Add(time.Hour)))
	mock.ExpectQuery("SELECT (.+) FROM staff").
		WillReturnRows(staffRows(t, "correct-horse", true))

	staff, err := svc.ValidateSession("sess-1", "s-1", "issued-token")

	require.NoError(t, err)
	assert.Equal(t, "s-1", staff.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSessionRejectsExpiredRow(t *testing.T) {
	svc, mock := newStaffServiceWithMock(t)

	mock.ExpectQuery("SELECT (.+) FROM staff_sessions").
		WillReturnRows(sessionRows("s-1", hashToken("issued-token"), time.Now().Add(-time.Minute)))

	_, err := svc.ValidateSession("sess-1", "s-1", "issued-token")

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
