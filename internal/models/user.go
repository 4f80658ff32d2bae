package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserModel represents a blog owner/admin account.
type UserModel struct {
	Base
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastname"`
	Email      string `json:"email"      gorm:"uniqueIndex;not null"`
	Password   string `json:"-"          gorm:"not null"`
	ProfilePic string `json:"profile_pic"`

	Posts []PostModel `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }

// BeforeCreate hashes the password before the row is first written,
// so callers never persist a plaintext password.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if err := u.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if u.Password != "" && !isBcryptHash(u.Password) {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (s[:4] == "$2a$" || s[:4] == "$2b$" || s[:4] == "$2y$")
}

// PasswordResetModel is a single-use, time-boxed password reset record.
// TokenHash stores sha256 of the raw token; the raw token only ever
// travels in the reset email.
type PasswordResetModel struct {
	Base
	UserID    string     `json:"-"     gorm:"index;not null"`
	User      *UserModel `json:"-"     gorm:"foreignKey:UserID"`
	TokenHash string     `json:"-"     gorm:"uniqueIndex;not null"`
	Used      bool       `json:"used"  gorm:"default:false"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (PasswordResetModel) TableName() string { return "password_resets" }
