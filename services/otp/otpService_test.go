package otp

import (
	"regexp"
	"testing"
	"time"

	otpModel "room-rescue/models/otp"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type fakeMailer struct {
	to   string
	code string
	err  error
}

func (m *fakeMailer) SendOTP(to, code string) error {
	m.to = to
	m.code = code
	return m.err
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock, *fakeMailer) {
	t.Helper()

	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDb}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	mailer := &fakeMailer{}
	return &Service{DB: db, Mailer: mailer}, mock, mailer
}

func TestGenerateCode(t *testing.T) {
	s := &Service{}
	for i := 0; i < 50; i++ {
		code, err := s.GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)
	}
}

func TestIssueSupersedesPreviousCodes(t *testing.T) {
	s, mock, mailer := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "otp_store" WHERE user_email = \$1`).
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "otp_store"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	record, err := s.Issue("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Regexp(t, `^\d{6}$`, record.Code)
	assert.Equal(t, "a@x.com", record.UserEmail)
	assert.Equal(t, record.CreatedAt.Add(otpModel.Validity), record.ExpiresAt)

	assert.Equal(t, "a@x.com", mailer.to)
	assert.Equal(t, record.Code, mailer.code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueSurvivesMailFailure(t *testing.T) {
	s, mock, mailer := newMockService(t)
	mailer.err = assert.AnError

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "otp_store"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "otp_store"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	record, err := s.Issue("a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueRollsBackOnInsertFailure(t *testing.T) {
	s, mock, mailer := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "otp_store"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "otp_store"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	record, err := s.Issue("a@x.com")
	assert.Error(t, err)
	assert.Nil(t, record)
	assert.Empty(t, mailer.to, "mail must not go out when issuance fails")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func otpRows(code string, createdAt, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_email", "otp", "created_at", "expires_at"}).
		AddRow(1, "a@x.com", code, createdAt, expiresAt)
}

func TestValidateConsumesMatchingCode(t *testing.T) {
	s, mock, _ := newMockService(t)

	issued := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "otp_store" WHERE user_email = \$1 ORDER BY created_at DESC`).
		WithArgs("a@x.com", 1).
		WillReturnRows(otpRows("123456", issued, issued.Add(otpModel.Validity)))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "otp_store" WHERE user_email = \$1`).
		WithArgs("a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := s.Validate("a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRejectsMismatch(t *testing.T) {
	s, mock, _ := newMockService(t)

	issued := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "otp_store"`).
		WillReturnRows(otpRows("123456", issued, issued.Add(otpModel.Validity)))

	ok, err := s.Validate("a@x.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRejectsExpiredCode(t *testing.T) {
	s, mock, _ := newMockService(t)

	issued := time.Now().Add(-otpModel.Validity - time.Minute)
	mock.ExpectQuery(`SELECT \* FROM "otp_store"`).
		WillReturnRows(otpRows("123456", issued, issued.Add(otpModel.Validity)))

	ok, err := s.Validate("a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "correct code past its expiry must not validate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateFailsClosedWithoutRecord(t *testing.T) {
	s, mock, _ := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "otp_store"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_email", "otp", "created_at", "expires_at"}))

	ok, err := s.Validate("a@x.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSurfacesStorageErrors(t *testing.T) {
	s, mock, _ := newMockService(t)

	mock.ExpectQuery(`SELECT \* FROM "otp_store"`).
		WillReturnError(assert.AnError)

	ok, err := s.Validate("a@x.com", "123456")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
