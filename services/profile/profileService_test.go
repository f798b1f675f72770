package profile

import (
	"testing"
	"time"

	profileTypes "room-rescue/types/profile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDb}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return &Service{DB: db}, mock
}

func userRow() *sqlmock.Rows {
	ts := time.Now().Add(-time.Hour)
	return sqlmock.NewRows([]string{"id", "email", "name", "password", "room_no", "is_verified", "roles", "created_at", "updated_at"}).
		AddRow(3, "a@x.com", "Alice", "hash", "B-204", true, []byte(`["STUDENT"]`), ts, ts)
}

func TestUpdateAppliesNonEmptyFields(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "allusers" WHERE email = \$1`).
		WillReturnRows(userRow())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "allusers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := s.Update(profileTypes.UpdateRequest{
		Email:  "a@x.com",
		Name:   "Alicia",
		RoomNo: "C-110",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", resp.Name)
	assert.Equal(t, "C-110", resp.RoomNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBlankFieldKeepsStoredValue(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "allusers" WHERE email = \$1`).
		WillReturnRows(userRow())
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "allusers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := s.Update(profileTypes.UpdateRequest{
		Email: "a@x.com",
		Name:  "Alicia",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alicia", resp.Name)
	assert.Equal(t, "B-204", resp.RoomNo, "blank room number must not clear the stored one")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUnknownUser(t *testing.T) {
	s, mock := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "allusers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	_, err := s.Update(profileTypes.UpdateRequest{Email: "ghost@x.com", Name: "X"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
