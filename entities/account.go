package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	Status       string    `gorm:"not null;default:activated" json:"status"`

	User *User `gorm:"foreignKey:AccountID"`
	Timestamp
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	Name        string    `gorm:"not null" json:"name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	PhoneNumber string    `gorm:"uniqueIndex;not null" json:"phone_number"`
	AvatarURL   string    `json:"avatar_url,omitempty"`

	Account *Account `gorm:"foreignKey:AccountID"`
	Timestamp
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
