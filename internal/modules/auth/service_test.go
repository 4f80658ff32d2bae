package auth

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/jwt"
	"github.com/parathan/blog-core/internal/pkg/mail"
)

// failingMailer points at a closed port so every send errors immediately.
func failingMailer() *mail.Sender {
	return mail.New(mail.Config{
		Enable: true,
		Host:   "127.0.0.1",
		Port:   1,
		From:   "noreply@example.com",
	})
}

func newTestService(t *testing.T, mailer *mail.Sender) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.PasswordResetModel{}))
	return NewService(db, mailer, zap.NewNop(), "http://localhost:5173")
}

func seedUser(t *testing.T, s *Service, email string) *models.UserModel {
	t.Helper()
	user, err := s.Register(&RegisterDTO{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestForgotPasswordSucceedsWhenMailFails(t *testing.T) {
	s := newTestService(t, failingMailer())
	user := seedUser(t, s, "ada@example.com")

	// mail delivery is best-effort; the caller still gets a 200 so the
	// endpoint cannot be used to enumerate accounts
	require.NoError(t, s.ForgotPassword("ada@example.com"))

	var count int64
	require.NoError(t, s.db.Model(&models.PasswordResetModel{}).
		Where("user_id = ? AND used = ?", user.ID, false).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))

	require.NoError(t, s.ForgotPassword("nobody@example.com"))

	var count int64
	require.NoError(t, s.db.Model(&models.PasswordResetModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestForgotPasswordInvalidatesOutstandingTokens(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))
	user := seedUser(t, s, "ada@example.com")

	require.NoError(t, s.ForgotPassword("ada@example.com"))
	require.NoError(t, s.ForgotPassword("ada@example.com"))

	var live int64
	require.NoError(t, s.db.Model(&models.PasswordResetModel{}).
		Where("user_id = ? AND used = ?", user.ID, false).
		Count(&live).Error)
	assert.Equal(t, int64(1), live)

	var total int64
	require.NoError(t, s.db.Model(&models.PasswordResetModel{}).
		Where("user_id = ?", user.ID).
		Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestResetPasswordBadToken(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))
	seedUser(t, s, "ada@example.com")

	err := s.ResetPassword(&ResetPasswordDTO{Token: "not-a-token", Password: "new-password"})
	assert.ErrorIs(t, err, errBadResetToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))
	seedUser(t, s, "ada@example.com")

	_, err := s.Register(&RegisterDTO{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "another-pass",
	})
	assert.ErrorIs(t, err, errEmailTaken)
}

func TestRegisterSurfacesDatabaseErrors(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// a broken connection must not read as "email free"
	_, err = s.Register(&RegisterDTO{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errEmailTaken)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	s := newTestService(t, mail.New(mail.Config{}))
	seeded := seedUser(t, s, "ada@example.com")

	user, token, err := s.Login(&LoginDTO{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}
