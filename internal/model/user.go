package model

import "time"

// User is the account record. Username always mirrors Email; the front-end
// only ever logs in with the email address.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:128;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"size:128;not null;uniqueIndex" json:"email"`
	FirstName    string     `gorm:"size:64" json:"first_name"`
	LastName     string     `gorm:"size:64" json:"last_name"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	LastLogin    *time.Time `json:"-"`
	DateJoined   time.Time  `gorm:"autoCreateTime" json:"date_joined"`

	Notes   []Note   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
