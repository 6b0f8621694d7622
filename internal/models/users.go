package models

import "golang.org/x/crypto/bcrypt"

type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// User is a back-office account allowed to run catalog syncs.
type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(16);not null;default:'staff'"`
}

func (u User) CanSync() bool {
	return u.Role == RoleAdmin || u.Role == RoleStaff
}

// HashPassword turns a plain password into a bcrypt hash.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether pw matches hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
