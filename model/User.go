package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:100;not null"`
	IsEmailVerified bool      `gorm:"default:false"` // flipped once the registration OTP is consumed
	Email           string    `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	Credentials []Credential `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (u *User) BeforeCreate(_ *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
