package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an account holder. All financial resources reference a user.
type User struct {
	DefaultModel
	Name              string     `json:"name"`
	Email             string     `json:"email" gorm:"uniqueIndex:idx_users_email"`
	PasswordHash      string     `json:"-"`
	ResetTokenHash    string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
}

// BeforeSave normalizes the email address. Lookups always use the
// normalized form, so case or whitespace variations refer to the same user.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	return nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserByEmail returns the user with the given email address.
func UserByEmail(email string) (User, error) {
	var user User
	err := DB.Where(&User{Email: NormalizeEmail(email)}).First(&user).Error
	return user, err
}
