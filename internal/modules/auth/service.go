package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/parathan/blog-core/internal/models"
	"github.com/parathan/blog-core/internal/pkg/jwt"
	"github.com/parathan/blog-core/internal/pkg/mail"
)

// TokenTTL is how long a login session stays valid.
const TokenTTL = 2 * time.Hour

const resetTokenTTL = time.Hour

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errEmailTaken    = errors.New("email already registered")
	errBadResetToken = errors.New("invalid or expired reset token")
)

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterDTO struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordDTO struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type Service struct {
	db     *gorm.DB
	mailer *mail.Sender
	log    *zap.Logger
	webURL string
}

func NewService(db *gorm.DB, mailer *mail.Sender, log *zap.Logger, webURL string) *Service {
	return &Service{db: db, mailer: mailer, log: log, webURL: webURL}
}

// Login verifies the credentials and returns the user with a signed token.
// Failed attempts are slowed down to blunt brute forcing.
func (s *Service) Login(dto *LoginDTO) (*models.UserModel, string, error) {
	var user models.UserModel
	if err := s.db.Where("email = ?", dto.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return nil, "", errUserNotFound
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		time.Sleep(3 * time.Second)
		return nil, "", errWrongPassword
	}

	token, err := jwt.Sign(user.ID, user.Email, TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	user := models.UserModel{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Password:  dto.Password,
	}
	return &user, s.db.Create(&user).Error
}

func (s *Service) GetUser(id string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword issues a single-use reset token and mails the link. Unknown
// emails succeed silently so the endpoint does not leak which addresses exist.
func (s *Service) ForgotPassword(email string) error {
	var user models.UserModel
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// outstanding tokens die when a new one is requested
		if err := tx.Model(&models.PasswordResetModel{}).
			Where("user_id = ? AND used = ?", user.ID, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(&models.PasswordResetModel{
			UserID:    user.ID,
			TokenHash: hex.EncodeToString(hash[:]),
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}).Error
	})
	if err != nil {
		return err
	}

	// the reset row is committed; mail delivery is best-effort so the
	// response never leaks whether the address exists
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.webURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, mail.ResetData{ResetURL: resetURL}); err != nil {
		s.log.Warn("password reset mail failed", zap.String("email", user.Email), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *Service) ResetPassword(dto *ResetPasswordDTO) error {
	hash := sha256.Sum256([]byte(dto.Token))
	hashHex := hex.EncodeToString(hash[:])

	var reset models.PasswordResetModel
	err := s.db.Where("token_hash = ? AND used = ? AND expires_at > ?", hashHex, false, time.Now()).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errBadResetToken
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordResetModel{}).
			Where("id = ?", reset.ID).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserModel{}).
			Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error
	})
}
