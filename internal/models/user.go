// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string  `json:"name" gorm:"size:255;not null"`
	Email        string  `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string  `json:"-" gorm:"size:255;not null"`
	Mobile       string  `json:"mobile,omitempty" gorm:"size:20"`
	Address      Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	IsAdmin      bool    `json:"is_admin" gorm:"default:false"`
}

// Address is the saved default shipping address of a user.
type Address = ShippingAddress

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
