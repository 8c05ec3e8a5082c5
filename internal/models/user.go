package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName     string `gorm:"size:255;not null" json:"full_name"`
	PhoneNumber  string `gorm:"size:20;not null" json:"phone_number"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:10;default:'user'" json:"role"`

	// Inactive until the email is verified.
	IsActive        bool `gorm:"default:false" json:"-"`
	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`

	// 4-digit codes, cleared once used.
	EmailVerificationToken *string `gorm:"size:4" json:"-"`
	PasswordResetToken     *string `gorm:"size:4" json:"-"`

	AddressLine1 string `gorm:"size:255" json:"-"`
	AddressLine2 string `gorm:"size:255" json:"-"`
	City         string `gorm:"size:100" json:"-"`
	Country      string `gorm:"size:100" json:"-"`
	Postcode     string `gorm:"size:20" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
