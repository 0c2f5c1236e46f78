package models

import "time"

type User struct {
	ID           string      `gorm:"primaryKey"             json:"id"`
	Email        string      `gorm:"unique;not null"        json:"email"`
	Name         string      `gorm:"not null"               json:"name"`
	PasswordHash string      `gorm:"not null"               json:"-"`
	Verified     bool        `gorm:"not null;default:false" json:"verified"`
	Tokens       StringSlice `gorm:"type:text"              json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
}

// VerificationToken holds the bcrypt hash of a mailed one-time secret.
// OwnerID is unique: an owner has at most one pending verification.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	OwnerID   string    `gorm:"uniqueIndex;not null" json:"owner_id"`
	TokenHash string    `gorm:"not null"             json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
