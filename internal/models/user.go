package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a customer or administrator of the store.
type User struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string       `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email       string       `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string       `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Permissions []Permission `json:"permissions" gorm:"serializer:json;type:text"`

	// Password-reset state; both nil unless a reset is pending.
	ResetToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetTokenExpiry *time.Time `json:"-"`

	Cart []CartItem `json:"cart,omitempty" gorm:"foreignKey:UserID"`

	gorm.Model `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// HasPermission reports whether the user holds at least one of the needed
// permissions.
func (u *User) HasPermission(needed ...Permission) bool {
	for _, have := range u.Permissions {
		for _, want := range needed {
			if have == want {
				return true
			}
		}
	}
	return false
}
